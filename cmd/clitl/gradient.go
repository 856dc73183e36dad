package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vito/clitl/pkg/config"
	"github.com/vito/clitl/pkg/gradient"
	"github.com/vito/clitl/pkg/ioctx"
	"github.com/vito/clitl/pkg/pitui"
	"golang.org/x/sync/errgroup"
)

type gradientFlags struct {
	speed     float64
	direction string
	frames    int
	seed      uint64
}

func gradientCmd(a *app) *cobra.Command {
	var flags gradientFlags

	cmd := &cobra.Command{
		Use:   "gradient <effect> [text...]",
		Short: "Animate text with a gradient effect",
		Long: fmt.Sprintf(`Animate text with a gradient effect until interrupted.

Available effects: %s`, strings.Join(gradient.Names(), ", ")),
		Example: `  clitl gradient rainbow
  clitl gradient darkrainbow Build passed --speed 40
  clitl gradient loading Please wait -d right
  clitl gradient glitch SYSTEM FAILURE --frames 50`,
		Args: cobra.MinimumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return gradient.Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			text := a.cfg.Text
			if len(args) > 1 {
				text = strings.Join(args[1:], " ")
			}

			interval := a.cfg.SpeedInterval()
			if cmd.Flags().Changed("speed") {
				interval, err = config.ParseSpeed(flags.speed)
				if err != nil {
					return err
				}
			}

			dirName := a.cfg.Direction
			if cmd.Flags().Changed("direction") {
				dirName = flags.direction
			}
			dir, err := gradient.ParseDirection(dirName)
			if err != nil {
				return err
			}

			opts := gradient.Options{Direction: dir, Seed: flags.seed}
			if !cmd.Flags().Changed("seed") {
				opts.Seed = uint64(time.Now().UnixNano())
			}

			out := ioctx.StdoutFromContext(cmd.Context())
			err = runGradient(cmd.Context(), out, args[0], text, interval, opts, flags.frames)
			if errors.Is(err, gradient.ErrUnknownEffect) {
				return fmt.Errorf("%w\nAvailable effects: %s", err, strings.Join(gradient.Names(), ", "))
			}
			return err
		},
	}

	cmd.Flags().Float64VarP(&flags.speed, "speed", "s", 80, "Delay between frames in milliseconds")
	cmd.Flags().StringVarP(&flags.direction, "direction", "d", "left", "Gradient flow direction: left or right")
	cmd.Flags().IntVar(&flags.frames, "frames", 0, "Stop after this many frames (0 runs until interrupted)")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "Random seed for the glitch effect (random if not specified)")

	return cmd
}

// runGradient animates text on a single line of out until ctx is done or
// frames frames have been shown, then moves to a new line.
func runGradient(ctx context.Context, out io.Writer, name, text string, interval time.Duration, opts gradient.Options, frames int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	term := pitui.NewProcessTerminal(out)
	loop := gradient.NewLoop()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return loop.Run(ctx)
	})

	// Only touched on the loop.
	var shown int

	term.HideCursor()
	anim, err := gradient.Start(name, text, interval, gradient.AnimationOptions{
		Options: opts,
		Loop:    loop,
		OnFrame: func(frame string) {
			if frames > 0 && shown >= frames {
				return
			}
			term.WriteString("\r" + frame)
			shown++
			if frames > 0 && shown == frames {
				cancel()
			}
		},
	})
	if err != nil {
		cancel()
		_ = eg.Wait()
		term.ShowCursor()
		return err
	}
	slog.Debug("animating", "effect", name, "interval", interval, "direction", opts.Direction)

	eg.Go(func() error {
		<-ctx.Done()
		anim.Stop()
		return nil
	})

	err = eg.Wait()
	term.WriteString("\n")
	term.ShowCursor()
	slog.Debug("stopped", "effect", name, "frames", anim.Frames())

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
