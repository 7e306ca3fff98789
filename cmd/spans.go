package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/cssliner/internal/pipeline"
)

var spansCmd = &cobra.Command{
	Use:   "spans FILE",
	Short: "List the highlighted spans of the collapsed stylesheet",
	Long: `Prints one line per span: the category, a tab, then the span text as a
quoted Go string. Concatenating the unquoted texts gives the displayed text.`,
	Args: cobra.ExactArgs(1),
	RunE: runSpans,
}

func init() {
	rootCmd.AddCommand(spansCmd)
}

func runSpans(cmd *cobra.Command, args []string) error {
	doc, err := oneShotLoader().Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	res := pipeline.Render(doc.Canonical, pipeline.Options{StripComments: viper.GetBool("strip_comments")})
	w := cmd.OutOrStdout()
	for _, s := range res.Spans {
		if _, err := fmt.Fprintf(w, "%s\t%q\n", s.Category, s.Text); err != nil {
			return err
		}
	}
	return nil
}
