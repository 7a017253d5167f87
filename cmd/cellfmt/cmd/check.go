package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TsubasaBE/go-cellformat/internal/fixture"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		categories string
		allColors  string
	)
	cmd := &cobra.Command{
		Use:   "check <suite.yaml>...",
		Short: "Run format conformance suites",
		Long: `Runs every row of each YAML suite through the engine and reports the
rows whose text or color differ from the expected result.

--categories and --all-colors override the flags stored in the suites.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			runner := fixture.NewRunner(a.eng, a.log)
			failed := 0
			for _, path := range args {
				s, err := fixture.LoadFile(path)
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("categories") {
					s.Flags[fixture.FlagCategories] = categories
				}
				if cmd.Flags().Changed("all-colors") {
					s.Flags[fixture.FlagAllColors] = allColors
				}
				rep := runner.Run(s)
				for _, f := range rep.Failures {
					fmt.Fprintf(out, "%s: %s\n", rep.Suite, f)
				}
				fmt.Fprintf(out, "%s: %d rows, %d checks, %d skipped, %d failed\n",
					rep.Suite, rep.Rows, rep.Checks, rep.Skipped, len(rep.Failures))
				failed += len(rep.Failures)
			}
			if failed > 0 {
				return fmt.Errorf("%d checks failed", failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&categories, "categories", "", "comma list of categories to run")
	cmd.Flags().StringVar(&allColors, "all-colors", "", "re-run every row with each color prefix (true/false)")
	return cmd
}
