package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kuesioner",
		Short: "Tally questionnaire responses stored in a spreadsheet",
		Long: `Tally questionnaire responses stored in a spreadsheet web app.

Commands that read the live sheet need SHEET_ENDPOINT_URL (from the environment
or a .env file). Pass --file to work from an exported .xlsx or .csv instead.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newTallyCmd(),
		newChartCmd(),
		newExportCmd(),
		newReportCmd(),
		newSubmitCmd(),
		newServeCmd(),
	)

	return rootCmd
}
