package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sheetmail/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
)

// Overrides applied on top of the config file.
var (
	flagSpreadsheetID string
	flagRange         string
	flagMaxResults    int64
	flagLedger        string
)

var rootCmd = &cobra.Command{
	Use:   "sheetmail",
	Short: "Copy unread Gmail messages into a Google Sheet",
	Long: `sheetmail lists unread inbox messages, appends sender, subject, date and
body of each new one as a row in a spreadsheet, then marks the message read
and records its ID so it is never appended twice.

Run it on a schedule; each invocation performs one pass. Without a
subcommand it behaves like 'sheetmail run'.

Examples:
  sheetmail config set spreadsheet.id 1AbC...xyz
  sheetmail auth login
  sheetmail run --dry-run
  sheetmail`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: runIngest,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.sheetmail)")
	pf.StringVar(&flagSpreadsheetID, "spreadsheet-id", "", "destination spreadsheet ID")
	pf.StringVar(&flagRange, "range", "", "destination A1 range")
	pf.Int64Var(&flagMaxResults, "max-results", 0, "maximum unread messages listed per run")
	pf.StringVar(&flagLedger, "ledger", "", "ledger backend: json or sqlite")

	addRunFlags(rootCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func currentOptions() Options {
	return Options{
		ConfigDir:     configDir,
		SpreadsheetID: flagSpreadsheetID,
		Range:         flagRange,
		MaxResults:    flagMaxResults,
		LedgerBackend: flagLedger,
	}
}
