package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/cssliner/internal/collapse"
	"github.com/zjrosen/cssliner/internal/highlight"
	"github.com/zjrosen/cssliner/internal/pipeline"
)

var printColor string

var printCmd = &cobra.Command{
	Use:   "print FILE",
	Short: "Write the collapsed stylesheet to stdout",
	Long: `Write the collapsed stylesheet to stdout. With FILE "-" the stylesheet is
read from stdin and the .css extension check is skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runPrint,
}

func init() {
	rootCmd.AddCommand(printCmd)

	printCmd.Flags().StringVar(&printColor, "color", "auto",
		`highlight the output: "auto", "always" or "never"`)
}

func runPrint(cmd *cobra.Command, args []string) error {
	color, err := useColor(cmd.OutOrStdout(), printColor)
	if err != nil {
		return err
	}
	if color {
		if err := applyTheme(cfg.Theme); err != nil {
			return err
		}
	}

	opts := pipeline.Options{StripComments: viper.GetBool("strip_comments")}
	var res pipeline.Result
	if args[0] == "-" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		res = pipeline.Run(string(raw), opts, collapse.New(cfg.MaxDepth))
	} else {
		doc, err := oneShotLoader().Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		res = pipeline.Render(doc.Canonical, opts)
	}

	out := res.Display
	if color {
		out = highlight.Render(res.Spans)
	}
	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}

// useColor resolves the --color flag against w. For "always" the color
// profile is forced so styles render even when w is not a terminal.
func useColor(w io.Writer, mode string) (bool, error) {
	switch mode {
	case "never":
		return false, nil
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
		return true, nil
	case "auto", "":
		return termenv.NewOutput(w).ColorProfile() != termenv.Ascii, nil
	default:
		return false, fmt.Errorf("invalid --color value %q: want auto, always or never", mode)
	}
}
