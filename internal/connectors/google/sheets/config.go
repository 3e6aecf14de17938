package sheets

import (
	"github.com/custodia-labs/sheetmail/internal/core/domain"
)

// Config holds Sheets connector configuration.
type Config struct {
	// SpreadsheetID identifies the destination spreadsheet.
	SpreadsheetID string
	// Range is the A1 range new rows are appended after, e.g. "Sheet1!A1".
	Range string
	// ValueInputOption controls how Sheets interprets the values.
	// USER_ENTERED parses them as if typed into the UI, RAW stores them as is.
	ValueInputOption string
}

// ParseConfig extracts connector configuration from the application config.
func ParseConfig(cfg domain.Config) *Config {
	out := &Config{
		SpreadsheetID:    cfg.SpreadsheetID,
		Range:            cfg.Range,
		ValueInputOption: cfg.ValueInputOption,
	}
	if out.Range == "" {
		out.Range = domain.DefaultRange
	}
	if out.ValueInputOption == "" {
		out.ValueInputOption = domain.DefaultValueInputOption
	}
	return out
}
