package gen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

// fileTask represents a single file generation task.
type fileTask struct {
	name string // output file path (relative to outDir)
	file *jen.File
}

// write renders and writes all files in parallel.
func (g *Generator) write(ctx context.Context, files []fileTask) error {
	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return fmt.Errorf("gen: create output directory: %w", err)
	}
	workers := g.workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for _, f := range files {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return g.writeFile(f)
			}
		})
	}
	return eg.Wait()
}

// writeFile renders one file, formats it with goimports, and writes it.
func (g *Generator) writeFile(f fileTask) error {
	var buf bytes.Buffer
	if err := f.file.Render(&buf); err != nil {
		return fmt.Errorf("gen: render %s: %w", f.name, err)
	}
	fullPath := filepath.Join(g.outDir, f.name)
	formatted, err := imports.Process(fullPath, buf.Bytes(), nil)
	if err != nil {
		// Write the unformatted file for debugging (errors intentionally
		// ignored as we're already in error state).
		debugPath := fullPath + ".error"
		_ = os.WriteFile(debugPath, buf.Bytes(), 0o644)
		return fmt.Errorf("gen: format %s: %w (unformatted written to %s)", f.name, err, debugPath)
	}
	if err := os.WriteFile(fullPath, formatted, 0o644); err != nil {
		return fmt.Errorf("gen: write %s: %w", f.name, err)
	}
	return nil
}
