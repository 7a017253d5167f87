// cellfmt renders spreadsheet cell values with number-format strings from
// the command line.
package main

import (
	"os"

	"github.com/TsubasaBE/go-cellformat/cmd/cellfmt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
