package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/lhaig/zentype/internal/model"
)

const workspaceTracerName = "zentype.workspace"

// Load discovers every script under cfg.Root, parses them concurrently and
// adds the resulting units to env under one write lock. It returns the
// units in path order. A file that cannot be read fails the whole load;
// syntax errors only show up as unit diagnostics. A concurrency below one
// parses one file at a time.
func Load(ctx context.Context, env *model.Environment, cfg Config, logger *slog.Logger) ([]*model.Unit, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "workspace")

	ctx, span := otel.Tracer(workspaceTracerName).Start(ctx, "workspace.Load",
		trace.WithAttributes(
			attribute.String("workspace.root", cfg.Root),
			attribute.Int("workspace.concurrency", cfg.Concurrency),
		),
	)
	defer span.End()

	start := time.Now()
	paths, err := Discover(cfg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("workspace.files", len(paths)))

	units := make([]*model.Unit, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Concurrency, 1))
	for i, rel := range paths {
		i, rel := i, rel
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			u, err := ParseFile(cfg.Root, rel)
			if err != nil {
				return err
			}
			units[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("load workspace %s: %w", cfg.Root, err)
	}

	env.AddUnits(units...)

	withErrors := 0
	for _, u := range units {
		if u.Diagnostics.HasErrors() {
			withErrors++
		}
	}
	span.SetAttributes(attribute.Int("workspace.files_with_errors", withErrors))
	logger.Info("workspace loaded",
		slog.String("root", cfg.Root),
		slog.Int("units", len(units)),
		slog.Int("with_errors", withErrors),
		slog.Duration("elapsed", time.Since(start)),
	)
	return units, nil
}

// ParseFile reads and parses the script at rel, a slash-separated path
// relative to root
func ParseFile(root, rel string) (*model.Unit, error) {
	start := time.Now()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		recordParse("error", time.Since(start))
		return nil, fmt.Errorf("read %s: %w", rel, err)
	}
	u := model.ParseUnit(rel, model.PackageFor(rel), string(data))
	result := "ok"
	if u.Diagnostics.HasErrors() {
		result = "diagnostics"
	}
	recordParse(result, time.Since(start))
	return u, nil
}
