package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sheetmail/internal/core/domain"
	"github.com/custodia-labs/sheetmail/internal/core/ports/driving"
	"github.com/custodia-labs/sheetmail/internal/logger"
)

var dryRun bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Append new unread messages to the spreadsheet",
	Long: `Performs one ingestion pass: lists unread inbox messages, appends the new
ones as rows, marks them read and records their IDs.

With --dry-run the messages are fetched and decoded and the rows printed,
but nothing is appended, marked or recorded.`,
	RunE: runIngest,
}

func init() {
	addRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "decode and print rows without writing anything")
}

func runIngest(cmd *cobra.Command, _ []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Settings.Validate(); err != nil {
		return err
	}

	report, err := app.Ingestor.Run(cmd.Context(), driving.RunOptions{DryRun: dryRun})
	if err != nil {
		printHint(cmd, err)
		return fmt.Errorf("run failed: %w", err)
	}

	printReport(cmd, report)
	return nil
}

func printReport(cmd *cobra.Command, report *domain.RunReport) {
	switch report.State {
	case domain.RunPersisted:
		cmd.Println(successStyle.Render(fmt.Sprintf("Appended %d rows.", report.Appended)))
	case domain.RunAborted:
		cmd.Println(warningStyle.Render("Not authorised. Run 'sheetmail auth login' after placing client credentials."))
	case domain.RunPreviewed:
		cmd.Println(titleStyle.Render(fmt.Sprintf("%d rows would be appended:", len(report.Rows))))
		width := previewWidth
		if logger.IsVerbose() {
			width = 0
		}
		for _, row := range report.Rows {
			cmd.Println(formatRow(row, width))
		}
	default:
		cmd.Println(mutedStyle.Render("Nothing new to append."))
	}

	cmd.Println(mutedStyle.Render(fmt.Sprintf("run %s: listed %d, skipped %d",
		report.RunID, report.Listed, report.Skipped)))
}

// previewWidth bounds the content column in dry-run output.
// Verbose mode prints the column in full.
const previewWidth = 60

// formatRow joins the cells of row, cutting the last one at width runes.
// A width of 0 keeps it whole.
func formatRow(row []string, width int) string {
	cells := make([]string, len(row))
	copy(cells, row)
	if n := len(cells); n > 0 && width > 0 {
		last := []rune(cells[n-1])
		if len(last) > width {
			cells[n-1] = string(last[:width]) + "..."
		}
	}
	return "  " + strings.Join(cells, " | ")
}
