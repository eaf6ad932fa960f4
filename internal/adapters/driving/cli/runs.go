package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veldt-labs/winnow-cli/internal/adapters/driven/catalog/sqlite"
	"github.com/veldt-labs/winnow-cli/internal/core/ports/driven"
)

var runsLimit int

// openCatalog opens the run catalog. Tests swap it for a mock.
var openCatalog = func() (driven.ReportStore, error) {
	return sqlite.NewStore("")
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List past cleaning runs",
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "maximum number of runs to show")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, _ []string) error {
	catalog, err := openCatalog()
	if err != nil {
		return fmt.Errorf("opening run catalog: %w", err)
	}
	defer catalog.Close()

	reports, err := catalog.List(context.Background(), runsLimit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}

	if len(reports) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	for i := range reports {
		r := &reports[i]
		cmd.Printf("%s  %s\n", r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.ID)
		cmd.Printf("    %s -> %s\n", r.InputPath, r.OutputPath)
		cmd.Printf("    read %d, dropped %d, malformed %d, written %d\n",
			r.Read, r.Dropped(), r.Malformed, r.Written)
	}
	return nil
}
