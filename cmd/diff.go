package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/cssliner/internal/pipeline"
)

var diffCmd = &cobra.Command{
	Use:   "diff FILE",
	Short: "Show a line diff between a stylesheet and its collapsed form",
	Args:  cobra.ExactArgs(1),
	RunE:  runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	doc, err := oneShotLoader().Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(doc.Path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", doc.Path, err)
	}

	collapsed := pipeline.Prepare(doc.Canonical, pipeline.Options{StripComments: viper.GetBool("strip_comments")})
	return writeLineDiff(cmd.OutOrStdout(), string(raw), collapsed)
}

// writeLineDiff writes before→after as whole lines prefixed with "-", "+"
// or " ".
func writeLineDiff(w io.Writer, before, after string) error {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			if _, err := fmt.Fprintf(w, "%s%s\n", prefix, strings.TrimSuffix(line, "\n")); err != nil {
				return err
			}
		}
	}
	return nil
}
