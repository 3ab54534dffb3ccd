package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-mobiledoc2md"
	"github.com/alnah/go-mobiledoc2md/internal/fileutil"
)

// RenderResult holds the outcome of a single file render.
type RenderResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// renderBatch renders files concurrently, one renderer per worker.
// Results are returned in job order.
func renderBatch(ctx context.Context, pool Pool, jobs []fileutil.Job, opts *runOptions, now func() time.Time) []RenderResult {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(jobs))

	results := make([]RenderResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			r := pool.Acquire()
			defer pool.Release(r)

			for idx := range queue {
				if err := ctx.Err(); err != nil {
					results[idx] = RenderResult{InputPath: jobs[idx].InputPath, Err: err}
					continue
				}
				results[idx] = renderFile(ctx, r, jobs[idx], opts, now)
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// renderFile renders one file and writes its outputs. Plugin teardown runs
// once the outputs are written.
func renderFile(ctx context.Context, r DocumentRenderer, job fileutil.Job, opts *runOptions, now func() time.Time) RenderResult {
	p := newProgress(opts.logger, now)
	result := RenderResult{InputPath: job.InputPath, OutputPath: job.OutputPath}
	finish := func(err error) RenderResult {
		result.Err = err
		result.Duration = now().Sub(p.start)
		return result
	}

	data, err := os.ReadFile(job.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return finish(fmt.Errorf("%w: %v", ErrReadInput, err))
	}

	doc, err := decodeDocument(data, fileutil.IsYAML(job.InputPath))
	if err != nil {
		return finish(err)
	}

	rendered, err := r.Render(ctx, doc)
	if err != nil {
		return finish(err)
	}
	defer rendered.Teardown()

	if err := writeOutputs(ctx, job.OutputPath, titleFor(job.InputPath), rendered.Result, opts); err != nil {
		return finish(err)
	}

	p.done(now, "rendered", "input", job.InputPath, "output", job.OutputPath)
	return finish(nil)
}

// decodeDocument parses data as YAML or JSON.
func decodeDocument(data []byte, isYAML bool) (mobiledoc2md.Document, error) {
	if isYAML {
		return mobiledoc2md.ParseYAMLDocument(data)
	}
	return mobiledoc2md.ParseDocument(data)
}

// writeOutputs writes the Markdown and, when enabled, its HTML preview.
func writeOutputs(ctx context.Context, path, title, markdown string, opts *runOptions) error {
	if err := fileutil.WriteFile(path, []byte(markdown)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err)
	}

	if opts.preview == nil {
		return nil
	}

	html, err := opts.preview.ToHTML(ctx, title, markdown)
	if err != nil {
		return err
	}
	htmlPath := fileutil.ReplaceExtension(path, ".html")
	if err := fileutil.WriteFile(htmlPath, []byte(html)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, htmlPath, err)
	}
	return nil
}

// summarize logs failures and returns the error for the whole run. A single
// failed file returns its own error so the exit code reflects the cause.
func summarize(results []RenderResult, logger *log.Logger) error {
	var failed []RenderResult
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}

	if len(results) > 1 {
		logger.Info("done", "succeeded", len(results)-len(failed), "failed", len(failed))
	}

	switch len(failed) {
	case 0:
		return nil
	case 1:
		return fmt.Errorf("%s: %w", failed[0].InputPath, failed[0].Err)
	}

	for _, r := range failed {
		logger.Error("render failed", "input", r.InputPath, "err", r.Err)
	}
	return fmt.Errorf("%w: %d of %d", ErrRenderFailed, len(failed), len(results))
}
