package assets

import (
	"errors"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if resolver.HasCustomLoader() {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("valid custom path", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if !resolver.HasCustomLoader() {
			t.Error("expected custom loader for valid path")
		}
	})

	t.Run("invalid custom path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_CustomWithFallback(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeAsset(t, base, "styles", "mystyle.css", "/* custom */")
	writeAsset(t, base, "styles", "plain.css", "/* override */")
	writeAsset(t, base, "layouts", "default.html", "<main>{{.Body}}</main>")

	resolver, err := NewAssetResolver(base)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	tests := []struct {
		name    string
		load    func(string) (string, error)
		input   string
		want    string
		wantErr error
	}{
		{name: "custom only style", load: resolver.LoadStyle, input: "mystyle", want: "/* custom */"},
		{name: "custom overrides embedded", load: resolver.LoadStyle, input: "plain", want: "/* override */"},
		{name: "custom layout", load: resolver.LoadLayout, input: "default", want: "<main>{{.Body}}</main>"},
		{name: "missing everywhere", load: resolver.LoadStyle, input: "nonexistent-xyz", wantErr: ErrStyleNotFound},
		{name: "invalid name does not fall back", load: resolver.LoadStyle, input: "a/b", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.load(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("falls back to embedded", func(t *testing.T) {
		t.Parallel()

		embedded, err := LoadStyle(DefaultStyleName)
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		got, err := resolver.LoadStyle(DefaultStyleName)
		if err != nil {
			t.Fatalf("resolver.LoadStyle() error = %v", err)
		}
		if got != embedded {
			t.Error("resolver should return the embedded style when no override exists")
		}
	})
}
