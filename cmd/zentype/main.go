package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lhaig/zentype/internal/model"
	"github.com/lhaig/zentype/internal/workspace"
)

// errCheckFailed signals a non-zero exit after the findings were printed
var errCheckFailed = errors.New("check failed")

// app carries the flags and the state every command shares
type app struct {
	configPath string
	root       string
	logLevel   string

	cfg    workspace.Config
	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errCheckFailed) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "zentype",
		Short:         "Type resolution for ZenScript workspaces",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./"+workspace.DefaultConfigFile+" when present)")
	root.PersistentFlags().StringVar(&a.root, "root", "", "workspace root, overrides the config")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		a.checkCmd(),
		a.typesCmd(),
		a.hoverCmd(),
		a.membersCmd(),
		a.astCmd(),
		a.watchCmd(),
	)
	return root
}

// setup loads the config, applies flag overrides and installs the logger
func (a *app) setup() error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if a.root != "" {
		cfg.Root = a.root
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)
	return nil
}

func (a *app) loadConfig() (workspace.Config, error) {
	if a.configPath != "" {
		return workspace.LoadConfig(a.configPath)
	}
	if _, err := os.Stat(workspace.DefaultConfigFile); err == nil {
		return workspace.LoadConfig(workspace.DefaultConfigFile)
	}
	return workspace.DefaultConfig(), nil
}

// load builds the environment for the configured workspace
func (a *app) load(ctx context.Context) (*model.Environment, error) {
	env := model.NewEnvironment(a.cfg.Root, model.WithLogger(a.logger))
	if _, err := workspace.Load(ctx, env, a.cfg, a.logger); err != nil {
		return nil, err
	}
	return env, nil
}

// unitPath maps a file argument to the unit path inside the workspace.
// Paths that exist on disk are taken relative to the root; anything else
// is already a unit path.
func (a *app) unitPath(arg string) (string, error) {
	if _, err := os.Stat(arg); err != nil {
		return filepath.ToSlash(filepath.Clean(arg)), nil
	}
	absRoot, err := filepath.Abs(a.cfg.Root)
	if err != nil {
		return "", err
	}
	absFile, err := filepath.Abs(arg)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absRoot, absFile)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%s is outside the workspace root %s", arg, a.cfg.Root)
	}
	return filepath.ToSlash(rel), nil
}
