package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/reviewbot/internal/filter"
)

// filterCmd runs the filter pass alone, for inspecting what a run would
// actually send for review.
var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter a unified diff from stdin down to reviewable source files",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			exitCode = ExitError
			return nil
		}
		fmt.Fprint(os.Stdout, filter.Filter(string(data)))
		return nil
	},
}
