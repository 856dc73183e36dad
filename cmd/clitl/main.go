package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/vito/clitl/pkg/config"
	"github.com/vito/clitl/pkg/ioctx"
)

// Config holds the global flags
type Config struct {
	Debug       bool
	LogFile     string
	ConfigFile  string
	RenderDebug string
}

// app is the state shared by subcommands once the root command has set up
// logging and loaded the config file.
type app struct {
	flags      Config
	cfg        *config.Config
	configPath string
	closers    []io.Closer
}

func main() {
	rootCmd := newRootCmd()

	// Use fang for styled execution with enhanced features
	ctx := context.Background()
	ctx = ioctx.StdoutToContext(ctx, os.Stdout)
	ctx = ioctx.StderrToContext(ctx, os.Stderr)
	if err := fang.Execute(ctx, rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithCommit("dev"),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "clitl",
		Short: "Animated color gradients for terminal text",
		Long: `clitl renders text with animated, color-cycling effects.

Settings are read from the nearest .clitl.toml (searching upward from the
current directory) or from $XDG_CONFIG_HOME/clitl/config.toml. Flags
override the config file.`,
		Example: `  # Animate text with a rainbow
  clitl gradient rainbow "Hello World!"

  # Slower, flowing the other way
  clitl gradient sunset Hi there -s 150 -d right

  # Every effect at once
  clitl example`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&a.flags.Debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&a.flags.LogFile, "log-file", "", "Path to log file (stderr if not specified)")
	rootCmd.PersistentFlags().StringVar(&a.flags.ConfigFile, "config", "", "Path to config file (searched for if not specified)")
	rootCmd.PersistentFlags().StringVar(&a.flags.RenderDebug, "render-debug", "", "Write per-frame render stats as JSONL to this file")

	rootCmd.AddCommand(
		gradientCmd(a),
		exampleCmd(a),
		listCmd(a),
		configCmd(a),
	)

	return rootCmd
}

func (a *app) setup(ctx context.Context) error {
	// Set up logging. Animations own the terminal, so only warnings and
	// above are shown unless asked for.
	var logDest io.Writer = ioctx.StderrFromContext(ctx)
	if a.flags.LogFile != "" {
		logFile, err := os.Create(a.flags.LogFile)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.closers = append(a.closers, logFile)
		logDest = logFile
	}

	level := slog.LevelWarn
	if a.flags.Debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(logDest, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	if a.flags.ConfigFile != "" {
		cfg, err := config.Load(a.flags.ConfigFile)
		if err != nil {
			return err
		}
		a.cfg, a.configPath = cfg, a.flags.ConfigFile
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		path, cfg, err := config.Find(cwd)
		if err != nil {
			return err
		}
		a.cfg, a.configPath = cfg, path
	}
	slog.Debug("loaded config", "path", a.configPath)
	return nil
}

// renderDebugWriter opens the --render-debug file, or returns nil if it was
// not given.
func (a *app) renderDebugWriter() (io.Writer, error) {
	if a.flags.RenderDebug == "" {
		return nil, nil
	}
	f, err := os.Create(a.flags.RenderDebug)
	if err != nil {
		return nil, fmt.Errorf("open render debug log: %w", err)
	}
	a.closers = append(a.closers, f)
	return f, nil
}

func (a *app) close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
	a.closers = nil
}
