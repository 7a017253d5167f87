package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/TsubasaBE/go-cellformat/styles"
)

func newBuiltinCmd(a *app) *cobra.Command {
	var valueType string
	cmd := &cobra.Command{
		Use:   "builtin [id] [value]",
		Short: "List or apply the built-in formats",
		Long: `Without arguments, lists every built-in numFmtId with its format string.
With an id, prints that format; with an id and a value, applies it.

Examples:
  cellfmt builtin
  cellfmt builtin 14
  cellfmt builtin 14 45367`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tDATE\tFORMAT")
				for _, id := range styles.IDs() {
					s, _ := styles.Lookup(id)
					fmt.Fprintf(tw, "%d\t%t\t%s\n", id, styles.IsDateFormat(id, ""), s)
				}
				return tw.Flush()
			}

			id, err := strconv.Atoi(args[0])
			if err != nil || id < 0 {
				return fmt.Errorf("invalid numFmtId %q", args[0])
			}
			if len(args) == 1 {
				s, ok := styles.Lookup(id)
				if !ok {
					return fmt.Errorf("numFmtId %d is not a built-in format", id)
				}
				fmt.Fprintln(out, s)
				return nil
			}
			v, err := parseValue(args[1], true, valueType)
			if err != nil {
				return err
			}
			res, err := a.eng.ApplyBuiltIn(id, v)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, res.Text)
			return nil
		},
	}
	cmd.Flags().StringVarP(&valueType, "type", "t", "auto", "value type: auto, number, text, bool, blank, date, time")
	return cmd
}
