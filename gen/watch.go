package gen

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/syssam/bakery/schema"
)

// Watch regenerates factories whenever the schema file changes. It
// blocks until the context is canceled. The onGenerate callback, if
// non-nil, observes every regeneration outcome.
func Watch(ctx context.Context, schemaPath, outDir, pkg string, onGenerate func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("gen: watch: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file on save,
	// which drops a watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(schemaPath)); err != nil {
		return fmt.Errorf("gen: watch %s: %w", schemaPath, err)
	}

	regenerate := func() {
		set, err := schema.Load(schemaPath)
		if err == nil {
			err = New(set, outDir).WithPackage(pkg).Generate(ctx)
		}
		if onGenerate != nil {
			onGenerate(err)
		}
	}
	regenerate()

	target := filepath.Clean(schemaPath)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			regenerate()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("gen: watch: %w", err)
		}
	}
}
