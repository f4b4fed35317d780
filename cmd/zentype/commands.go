package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/lhaig/zentype/internal/ast"
	"github.com/lhaig/zentype/internal/diagnostic"
	"github.com/lhaig/zentype/internal/features"
	"github.com/lhaig/zentype/internal/linter"
	"github.com/lhaig/zentype/internal/model"
	"github.com/lhaig/zentype/internal/workspace"
)

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report syntax errors and lint warnings for every script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			sess := env.Read()
			defer sess.Close()

			out := cmd.OutOrStdout()
			errs, warnings := 0, 0
			for _, u := range sess.Units() {
				diags := diagnostic.NewForFile(u.Path)
				diags.Merge(u.Diagnostics)
				diags.Merge(linter.Lint(sess, u))
				diags.Sort()
				if text := diags.Format(); text != "" {
					fmt.Fprintln(out, text)
				}
				errs += diags.ErrorCount()
				warnings += diags.WarningCount()
			}
			fmt.Fprintf(out, "%d scripts, %d errors, %d warnings\n", len(sess.Units()), errs, warnings)
			if errs > 0 {
				return errCheckFailed
			}
			return nil
		},
	}
}

func (a *app) typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types <file>",
		Short: "Print every declaration of a script with its resolved type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withUnit(cmd.Context(), args[0], func(sess *model.Session, u *model.Unit) error {
				for _, d := range features.Declarations(sess, u) {
					fmt.Fprintln(cmd.OutOrStdout(), d)
				}
				return nil
			})
		},
	}
}

func (a *app) hoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hover <file> <line> <col>",
		Short: "Print the type of the expression at a position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, col, err := parsePosition(args[1], args[2])
			if err != nil {
				return err
			}
			return a.withUnit(cmd.Context(), args[0], func(sess *model.Session, u *model.Unit) error {
				text, ok := features.Hover(sess, u, line, col)
				if !ok {
					return fmt.Errorf("nothing to describe at %d:%d", line, col)
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			})
		},
	}
}

func (a *app) membersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "members <file> <line> <col>",
		Short: "List completions for the member access before a position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, col, err := parsePosition(args[1], args[2])
			if err != nil {
				return err
			}
			return a.withUnit(cmd.Context(), args[0], func(sess *model.Session, u *model.Unit) error {
				members, ok := features.CompleteMembers(sess, u, line, col)
				if !ok {
					return fmt.Errorf("no member access at %d:%d", line, col)
				}
				for _, m := range members {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", m, m.Kind)
				}
				return nil
			})
		},
	}
}

func (a *app) astCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ast <file>",
		Short: "Print the syntax tree of a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rel, err := a.unitPath(args[0])
			if err != nil {
				return err
			}
			u, err := workspace.ParseFile(a.cfg.Root, rel)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), ast.Print(u.File))
			if u.Diagnostics.Count() > 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), u.Diagnostics.Format())
			}
			return nil
		},
	}
}

func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Load the workspace and keep it in sync with file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			env, err := a.load(ctx)
			if err != nil {
				return err
			}
			w, err := workspace.NewWatcher(env, a.cfg,
				workspace.WithWatchLogger(a.logger),
				workspace.OnUpdate(func(u workspace.Update) {
					a.logger.Info("workspace updated", slog.String("op", u.Op), slog.String("path", u.Path))
				}),
			)
			if err != nil {
				return err
			}

			if a.cfg.MetricsAddr != "" {
				srv := a.serveMetrics()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					if err := srv.Shutdown(shutdownCtx); err != nil {
						a.logger.Warn("metrics server shutdown failed", slog.String("error", err.Error()))
					}
				}()
			}
			return w.Run(ctx)
		},
	}
}

// serveMetrics exposes the prometheus registry on the configured address
func (a *app) serveMetrics() *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              a.cfg.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		a.logger.Info("serving metrics", slog.String("address", a.cfg.MetricsAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server failed", slog.String("error", err.Error()))
		}
	}()
	return srv
}

// withUnit loads the workspace and runs fn over the named unit inside one
// read session
func (a *app) withUnit(ctx context.Context, file string, fn func(*model.Session, *model.Unit) error) error {
	rel, err := a.unitPath(file)
	if err != nil {
		return err
	}
	env, err := a.load(ctx)
	if err != nil {
		return err
	}
	sess := env.Read()
	defer sess.Close()
	u, ok := sess.Unit(rel)
	if !ok {
		return fmt.Errorf("%s: %w", rel, model.ErrUnitNotFound)
	}
	return fn(sess, u)
}

func parsePosition(lineArg, colArg string) (int, int, error) {
	line, err := strconv.Atoi(lineArg)
	if err != nil || line < 1 {
		return 0, 0, fmt.Errorf("invalid line %q", lineArg)
	}
	col, err := strconv.Atoi(colArg)
	if err != nil || col < 1 {
		return 0, 0, fmt.Errorf("invalid column %q", colArg)
	}
	return line, col, nil
}
