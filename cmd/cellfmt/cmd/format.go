package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TsubasaBE/go-cellformat/internal/fixture"
	"github.com/TsubasaBE/go-cellformat/numfmt"
)

func newFormatCmd(a *app) *cobra.Command {
	var (
		valueType string
		verbose   bool
	)
	cmd := &cobra.Command{
		Use:   "format <format> [value]",
		Short: "Apply a format string to a value",
		Long: `Applies a number-format string to a single value and prints the
displayed text.  Without a value the cell is blank.

The value type is inferred unless --type is given: numbers, then TRUE/FALSE,
then text.

Examples:
  cellfmt format '#,##0.00' 1234.5
  cellfmt format '0.00;[Red]-0.00' -- -5 --verbose
  cellfmt format 'dddd d mmmm yyyy' 2024-03-16 --type date
  cellfmt format 'h:mm AM/PM' 13:05:00 --type time`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, hasValue := "", len(args) == 2
			if hasValue {
				raw = args[1]
			}
			v, err := parseValue(raw, hasValue, valueType)
			if err != nil {
				return err
			}
			res, err := a.eng.Apply(args[0], v)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !verbose {
				fmt.Fprintln(out, res.Text)
				return nil
			}
			fmt.Fprintf(out, "text:    %q\n", res.Text)
			fmt.Fprintf(out, "color:   %s\n", colorName(res.Color))
			fmt.Fprintf(out, "applies: %t\n", res.Applies)
			fmt.Fprintf(out, "value:   %s %s\n", v.Type(), v)
			return nil
		},
	}
	cmd.Flags().StringVarP(&valueType, "type", "t", "auto", "value type: auto, number, text, bool, blank, date, time")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print color and match details")
	return cmd
}

// parseValue builds a cell value from a command-line argument.  Explicit
// types go through the same conversion as conformance suites.
func parseValue(raw string, present bool, typ string) (numfmt.Value, error) {
	switch strings.ToLower(typ) {
	case "", "auto":
		if !present {
			return numfmt.Blank(), nil
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return numfmt.Number(f), nil
		}
		switch strings.ToUpper(raw) {
		case "TRUE":
			return numfmt.Bool(true), nil
		case "FALSE":
			return numfmt.Bool(false), nil
		}
		return numfmt.Text(raw), nil
	}
	return fixture.Case{Value: raw, Type: typ}.Cell()
}

func colorName(c numfmt.Color) string {
	if c == numfmt.ColorNone {
		return "none"
	}
	return c.String()
}
