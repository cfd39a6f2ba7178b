package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/billdoc-dev/billdoc/internal/render"
)

func newComputeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compute <file>",
		Short: "Validate a document and print its totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.root()
			if err != nil {
				return err
			}
			cfg, err := a.loadConfig(root, true)
			if err != nil {
				return err
			}
			doc, sum, err := a.computeDocument(args[0], cfg)
			if err != nil {
				return err
			}

			number := doc.Number
			if number == "" {
				number = "(unnumbered)"
			}
			v, err := render.NewView(cfg, doc, sum, number)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s (%s mode)\n", v.Title, v.Number, sum.Mode)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			for _, l := range v.Totals {
				fmt.Fprintf(tw, "%s\t%s\t\n", l.Label, l.Value)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(out, sum.AmountInWords)
			return nil
		},
	}
}
