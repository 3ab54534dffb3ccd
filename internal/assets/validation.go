package assets

import "fmt"

const maxNameLen = 64

// ValidateAssetName accepts only short names made of ASCII letters, digits,
// '-' and '_', so a name can never carry a separator or an extension.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case len(name) > maxNameLen:
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidAssetName, maxNameLen)
	}
	for _, c := range name {
		if !isNameRune(c) {
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}

func isNameRune(c rune) bool {
	return c == '-' || c == '_' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
