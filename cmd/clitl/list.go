package main

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"github.com/vito/clitl/pkg/gradient"
	"github.com/vito/clitl/pkg/ioctx"
	"github.com/vito/clitl/pkg/pitui"
)

var (
	listNameStyle  = lipgloss.NewStyle().Bold(true)
	listTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	listPathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

func listCmd(a *app) *cobra.Command {
	var frame int

	cmd := &cobra.Command{
		Use:   "list [text...]",
		Short: "List the available effects with a preview",
		Example: `  clitl list
  clitl list --frame 120 Preview text`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := a.cfg.Text
			if len(args) > 0 {
				text = strings.Join(args, " ")
			}
			dir, err := a.cfg.DirectionValue()
			if err != nil {
				return err
			}

			names := gradient.Names()
			nameW := 0
			for _, name := range names {
				nameW = max(nameW, lipgloss.Width(name))
			}

			term := pitui.NewProcessTerminal(ioctx.StdoutFromContext(cmd.Context()))
			for _, name := range names {
				effect, err := gradient.Lookup(name, gradient.Options{Direction: dir})
				if err != nil {
					return err
				}
				row := lipgloss.JoinHorizontal(lipgloss.Top,
					listNameStyle.Width(nameW+2).Render(name),
					listTitleStyle.Width(nameW+2).Render(gradient.Title(name)),
					effect.Frame(text, frame),
				)
				term.WriteString(row + "\n")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&frame, "frame", 0, "Frame number to preview")

	return cmd
}

func configCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			term := pitui.NewProcessTerminal(ioctx.StdoutFromContext(cmd.Context()))
			source := "built-in defaults"
			if a.configPath != "" {
				source = a.configPath
			}
			term.WriteString(listPathStyle.Render(fmt.Sprintf("# %s", source)) + "\n")
			term.WriteString(a.cfg.String())
			return nil
		},
	}
}
