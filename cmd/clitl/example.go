package main

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vito/clitl/pkg/demo"
	"github.com/vito/clitl/pkg/gradient"
	"github.com/vito/clitl/pkg/ioctx"
	"github.com/vito/clitl/pkg/pitui"
	"golang.org/x/sync/errgroup"
)

func exampleCmd(a *app) *cobra.Command {
	var (
		direction string
		duration  time.Duration
		seed      uint64
	)

	cmd := &cobra.Command{
		Use:   "example [text...]",
		Short: "Run every effect side by side",
		Long: `Run several effects at once, each labeled with its name. The effects
wrap onto as many lines as the terminal width needs and are redrawn in
place.

The effects, their order and their speeds come from the [example] section
of the config file.`,
		Example: `  clitl example
  clitl example Build passed
  clitl example --duration 5s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := a.cfg.Example.Text
			if len(args) > 0 {
				text = strings.Join(args, " ")
			}

			cfg, err := demo.ConfigFrom(a.cfg)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("direction") {
				dir, err := gradient.ParseDirection(direction)
				if err != nil {
					return err
				}
				cfg.Options.Direction = dir
			}
			cfg.Options.Seed = seed
			if !cmd.Flags().Changed("seed") {
				cfg.Options.Seed = uint64(time.Now().UnixNano())
			}
			cfg.DebugWriter, err = a.renderDebugWriter()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}
			return runExample(ctx, ioctx.StdoutFromContext(ctx), text, cfg)
		},
	}

	cmd.Flags().StringVarP(&direction, "direction", "d", "left", "Gradient flow direction: left or right")
	cmd.Flags().DurationVar(&duration, "duration", 0, "Stop after this long (0 runs until interrupted)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed for the glitch effect (random if not specified)")

	return cmd
}

// runExample runs the demo on out until ctx is done.
func runExample(ctx context.Context, out io.Writer, text string, cfg demo.Config) error {
	term := pitui.NewProcessTerminal(out)
	loop := gradient.NewLoop()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return loop.Run(ctx)
	})

	d, err := demo.Run(ctx, text, cfg, term, loop)
	if err != nil {
		loop.Close()
		_ = eg.Wait()
		return err
	}

	eg.Go(func() error {
		<-d.Done()
		return nil
	})

	err = eg.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
