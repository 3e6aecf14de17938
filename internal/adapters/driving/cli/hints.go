package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sheetmail/internal/connectors/google"
)

// hintFor suggests a next step for a failure reported by a Google API.
// It returns "" when there is nothing useful to add.
func hintFor(err error) string {
	switch {
	case err == nil:
		return ""
	case google.IsUnauthorized(err):
		return "The stored token was rejected. Run 'sheetmail auth login' to authorise again."
	case google.IsQuotaExceeded(err):
		return "The Google API quota is exhausted. Try again later."
	case google.IsForbidden(err):
		return "Access was refused. Run 'sheetmail auth login' and grant both Gmail and Sheets access, and check the spreadsheet is shared with that account."
	case google.IsRateLimited(err):
		return "Google is rate limiting requests. Try again in a minute."
	case google.IsNotFound(err):
		return "The spreadsheet or range was not found. Check spreadsheet.id and spreadsheet.range with 'sheetmail config show'."
	}
	return ""
}

func printHint(cmd *cobra.Command, err error) {
	if hint := hintFor(err); hint != "" {
		cmd.PrintErrln(warningStyle.Render(hint))
	}
}
