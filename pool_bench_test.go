//go:build bench

package mobiledoc2md

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
)

// BenchmarkResolvePoolSize benchmarks pool size calculation.
func BenchmarkResolvePoolSize(b *testing.B) {
	workers := []int{0, 1, 2, 4, 8}

	for _, w := range workers {
		b.Run(workerName(w), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				result := ResolvePoolSize(w)
				_ = result
			}
		})
	}
}

func workerName(w int) string {
	if w == 0 {
		return "auto"
	}
	return fmt.Sprintf("%d", w)
}

// BenchmarkRendererPoolAcquireRelease benchmarks the acquire/release cycle.
func BenchmarkRendererPoolAcquireRelease(b *testing.B) {
	for _, size := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			pool, err := NewRendererPool(size)
			if err != nil {
				b.Fatal(err)
			}
			defer pool.Close()

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				r := pool.Acquire()
				pool.Release(r)
			}
		})
	}
}

// benchDocument builds a 0.3 document with n paragraphs of mixed markups.
func benchDocument(n int) []byte {
	var sb strings.Builder
	sb.WriteString(`{"version":"0.3.0","markups":[["b"],["em"],["a",["href","https://example.com"]]],"sections":[`)
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(`[1,"p",[[0,[0],0,"bold "],[0,[1],1,"em"],[0,[2],2," link"],[0,[],0," tail"]]]`)
	}
	sb.WriteString(`]}`)
	return []byte(sb.String())
}

// BenchmarkRender benchmarks rendering documents of increasing size.
func BenchmarkRender(b *testing.B) {
	r, err := NewRenderer()
	if err != nil {
		b.Fatal(err)
	}

	for _, n := range []int{10, 100, 1000} {
		doc := benchDocument(n)
		b.Run(fmt.Sprintf("sections=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(doc)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := r.RenderJSON(context.Background(), doc); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkRendererPoolParallel benchmarks parallel rendering through a pool.
func BenchmarkRendererPoolParallel(b *testing.B) {
	doc := benchDocument(100)

	for _, workers := range []int{1, 2, 4} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			pool, err := NewRendererPool(workers)
			if err != nil {
				b.Fatal(err)
			}
			defer pool.Close()

			b.ReportAllocs()
			b.ResetTimer()

			var wg sync.WaitGroup
			jobs := make(chan struct{})
			for w := 0; w < workers; w++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for range jobs {
						r := pool.Acquire()
						_, _ = r.RenderJSON(context.Background(), doc)
						pool.Release(r)
					}
				}()
			}
			for i := 0; i < b.N; i++ {
				jobs <- struct{}{}
			}
			close(jobs)
			wg.Wait()
		})
	}
}
