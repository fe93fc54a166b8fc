package driver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"holda/internal/analyze"
)

// DefaultDebounce is how long Watch waits for further changes before
// regenerating.
const DefaultDebounce = 200 * time.Millisecond

// Watch regenerates whenever a Go source file in one of the loaded package
// directories changes. run is called once up front and then after every
// batch of changes; it returns the packages whose directories to watch next.
// Watch returns when ctx is done.
func (d *Driver) Watch(ctx context.Context, debounce time.Duration, run func(context.Context) ([]*analyze.PackageInfo, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watched := map[string]bool{}
	rerun := func() {
		pkgs, err := run(ctx)
		if err != nil {
			d.logger.Error("generation failed", "error", err)
		}

		for _, pkg := range pkgs {
			if pkg.Dir == "" || watched[pkg.Dir] {
				continue
			}

			if err := w.Add(pkg.Dir); err != nil {
				d.logger.Warn("cannot watch directory", "dir", pkg.Dir, "error", err)
				continue
			}

			watched[pkg.Dir] = true
			d.logger.Debug("watching", "dir", pkg.Dir)
		}
	}

	rerun()

	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if !d.relevant(ev) {
				continue
			}

			d.logger.Debug("change", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			if errors.Is(err, fsnotify.ErrEventOverflow) {
				timer.Reset(debounce)
				continue
			}

			d.logger.Warn("watch error", "error", err)
		case <-timer.C:
			rerun()
		}
	}
}

// relevant reports whether an event concerns hand-written Go source.
// Generated files are ignored so writing them does not trigger another run.
func (d *Driver) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}

	name := filepath.Base(ev.Name)
	if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
		return false
	}

	return !d.isGenerated(name)
}

func (d *Driver) isGenerated(name string) bool {
	suffix := d.cfg.Output.Suffix

	return strings.HasSuffix(name, suffix) ||
		strings.HasSuffix(name, strings.TrimSuffix(suffix, ".go")+"_serde.go") ||
		strings.HasSuffix(name, ".unformatted.go")
}
