package prompts

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Reloader periodically rebuilds a loader from the built-in catalog plus a
// directory of overrides, so edited YAML takes effect without a restart.
type Reloader struct {
	loader   *Loader
	dir      string
	interval time.Duration
}

// NewReloader creates a reload worker for dir
func NewReloader(loader *Loader, dir string, interval time.Duration) *Reloader {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &Reloader{
		loader:   loader,
		dir:      dir,
		interval: interval,
	}
}

// Start begins the reload worker in a goroutine
func (r *Reloader) Start(ctx context.Context) {
	go r.run(ctx)
}

func (r *Reloader) run(ctx context.Context) {
	slog.Info("quick action reloader started", "dir", r.dir, "interval", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("quick action reloader stopped")
			return
		case <-ticker.C:
			if err := r.Reload(); err != nil {
				slog.Error("failed to reload quick actions", "error", err, "dir", r.dir)
			}
		}
	}
}

// Reload builds a fresh catalog and swaps it in. On error the current
// catalog is kept.
func (r *Reloader) Reload() error {
	fresh := NewLoader()
	if err := fresh.LoadDefaults(); err != nil {
		return err
	}
	if err := fresh.LoadFromDir(r.dir); err != nil {
		return fmt.Errorf("keeping previous catalog: %w", err)
	}

	r.loader.Replace(fresh)
	slog.Debug("quick actions reloaded", "actions", r.loader.Len())
	return nil
}
