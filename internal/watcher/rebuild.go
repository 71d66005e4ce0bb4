package watcher

import (
	"context"
	"path/filepath"
)

// BuildFunc rebuilds from the scenes file at path.
type BuildFunc func(ctx context.Context, path string) error

// RebuildHandler calls build once per batch that touches path and leaves
// it in place. Batches are delivered one at a time, so builds never
// overlap.
func RebuildHandler(path string, build BuildFunc) ChangeHandler {
	target := filepath.Clean(path)
	return func(ctx context.Context, events []ChangeEvent) error {
		var relevant []ChangeEvent
		for _, e := range events {
			if filepath.Clean(e.Path) == target {
				relevant = append(relevant, e)
			}
		}
		if !Changed(relevant) {
			return nil
		}
		return build(ctx, target)
	}
}
