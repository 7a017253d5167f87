package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/TsubasaBE/go-cellformat/numfmt"
)

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <format>",
		Short: "Show how a format string is parsed",
		Long: `Prints every section of a format string with its kind, color and
condition, followed by its tokens.  Ignored tokens are listed as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.eng.Parse(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range f.Parts {
				fmt.Fprintf(out, "section %d %q: %s", p.Index+1, p.Raw, p.Kind)
				if p.Color != numfmt.ColorNone {
					fmt.Fprintf(out, " color=%s", p.Color)
				}
				if p.Condition != nil {
					fmt.Fprintf(out, " condition=%s", p.Condition)
				}
				if p.Locale != nil {
					fmt.Fprintf(out, " currency=%q lcid=%q", p.Locale.Currency, p.Locale.LCID)
				}
				fmt.Fprintln(out)

				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				for _, t := range p.Tokens {
					fmt.Fprintf(tw, "  %d\t%s\t%q\n", t.Pos, t.Type, t.Text)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				for _, u := range p.Unsupported {
					fmt.Fprintf(out, "  unsupported: %s (%s)\n", u.Token, u.Reason)
				}
			}
			return nil
		},
	}
}
