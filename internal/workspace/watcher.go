package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/lhaig/zentype/internal/model"
)

// Update describes one change the watcher applied to the environment
type Update struct {
	Op   string // "replace" or "remove"
	Path string
}

// Watcher keeps an environment in sync with the files under a workspace
// root
type Watcher struct {
	cfg      Config
	env      *model.Environment
	logger   *slog.Logger
	fsw      *fsnotify.Watcher
	onUpdate func(Update)
}

// WatcherOption configures a Watcher
type WatcherOption func(*Watcher)

// WithWatchLogger sets the watcher's logger
func WithWatchLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// OnUpdate registers a callback invoked after every applied change
func OnUpdate(fn func(Update)) WatcherOption {
	return func(w *Watcher) {
		w.onUpdate = fn
	}
}

// NewWatcher starts watching every directory under cfg.Root. Call Run to
// process events.
func NewWatcher(env *model.Environment, cfg Config, opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		cfg:    cfg,
		env:    env,
		logger: slog.Default(),
		fsw:    fsw,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With("component", "watcher")

	if err := w.addTree(cfg.Root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// addTree watches dir and every non-excluded directory below it
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.cfg.Root && skipDir(w.cfg, d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		w.logger.Debug("watching directory", slog.String("dir", path))
		return nil
	})
}

// Run processes file events until ctx is cancelled, then closes the
// underlying watcher
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	w.logger.Info("watching workspace", slog.String("root", w.cfg.Root))
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", slog.String("error", err.Error()))
		}
	}
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	rel, err := filepath.Rel(w.cfg.Root, event.Name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return
	}
	rel = filepath.ToSlash(rel)

	switch {
	case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
		info, err := os.Stat(event.Name)
		if err != nil {
			// gone again before we got to it
			return
		}
		if info.IsDir() {
			if event.Has(fsnotify.Create) && !skipDir(w.cfg, filepath.Base(event.Name)) {
				w.addDir(ctx, event.Name)
			}
			return
		}
		if w.cfg.IsScript(event.Name) {
			w.reparse(ctx, rel)
		}

	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		if w.cfg.IsScript(event.Name) {
			w.remove(rel)
			return
		}
		w.removeTree(rel)
	}
}

// addDir watches a newly created directory and loads the scripts already
// inside it
func (w *Watcher) addDir(ctx context.Context, dir string) {
	if err := w.addTree(dir); err != nil {
		w.logger.Warn("watch new directory failed", slog.String("dir", dir), slog.String("error", err.Error()))
		return
	}
	sub := w.cfg
	sub.Root = dir
	paths, err := Discover(sub)
	if err != nil {
		w.logger.Warn("discover new directory failed", slog.String("dir", dir), slog.String("error", err.Error()))
		return
	}
	for _, p := range paths {
		rel, err := filepath.Rel(w.cfg.Root, filepath.Join(dir, filepath.FromSlash(p)))
		if err != nil {
			continue
		}
		w.reparse(ctx, filepath.ToSlash(rel))
	}
}

func (w *Watcher) reparse(ctx context.Context, rel string) {
	_, span := otel.Tracer(workspaceTracerName).Start(ctx, "workspace.Reparse",
		trace.WithAttributes(attribute.String("workspace.path", rel)),
	)
	defer span.End()

	u, err := ParseFile(w.cfg.Root, rel)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		w.logger.Warn("reparse failed", slog.String("path", rel), slog.String("error", err.Error()))
		return
	}
	w.env.ReplaceUnit(u)
	recordReload("replace")
	w.logger.Debug("unit reparsed",
		slog.String("path", rel),
		slog.Int("errors", u.Diagnostics.ErrorCount()),
	)
	w.notify(Update{Op: "replace", Path: rel})
}

func (w *Watcher) remove(rel string) {
	if err := w.env.RemoveUnit(rel); err != nil {
		if !errors.Is(err, model.ErrUnitNotFound) {
			w.logger.Warn("remove unit failed", slog.String("path", rel), slog.String("error", err.Error()))
		}
		return
	}
	recordReload("remove")
	w.logger.Debug("unit removed", slog.String("path", rel))
	w.notify(Update{Op: "remove", Path: rel})
}

// removeTree drops every unit below a removed directory
func (w *Watcher) removeTree(rel string) {
	prefix := rel + "/"
	sess := w.env.Read()
	var gone []string
	for _, u := range sess.Units() {
		if strings.HasPrefix(u.Path, prefix) {
			gone = append(gone, u.Path)
		}
	}
	sess.Close()
	for _, path := range gone {
		w.remove(path)
	}
}

func (w *Watcher) notify(u Update) {
	if w.onUpdate != nil {
		w.onUpdate(u)
	}
}
