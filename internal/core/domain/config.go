package domain

import (
	"fmt"
	"path/filepath"
)

// Google OAuth scopes required by a run.
const (
	// ScopeGmailModify allows reading messages and removing the UNREAD label.
	ScopeGmailModify = "https://www.googleapis.com/auth/gmail.modify"
	// ScopeSpreadsheets allows appending rows to spreadsheets.
	ScopeSpreadsheets = "https://www.googleapis.com/auth/spreadsheets"
)

// Defaults applied when the configuration does not set a value.
const (
	DefaultRange             = "Sheet1!A1"
	DefaultValueInputOption  = "USER_ENTERED"
	DefaultQuery             = "is:unread label:INBOX"
	DefaultUser              = "me"
	DefaultMaxResults        = 10
	DefaultRequestsPerSecond = 2.0
	DefaultBurst             = 5
)

// LedgerBackend selects where the processed-ID ledger is persisted.
type LedgerBackend string

const (
	// LedgerBackendJSON stores the ledger as a JSON array in a file.
	LedgerBackendJSON LedgerBackend = "json"
	// LedgerBackendSQLite stores the ledger in a SQLite database.
	LedgerBackendSQLite LedgerBackend = "sqlite"
)

// Config is the explicit configuration for one ingestion run.
type Config struct {
	// SpreadsheetID is the destination spreadsheet. Required.
	SpreadsheetID string
	// Range is the A1 range rows are appended to.
	Range string
	// ValueInputOption controls how the sheet interprets appended values.
	ValueInputOption string

	// Query is the mail search query used to list candidates.
	Query string
	// MaxResults caps how many messages one run lists.
	MaxResults int64
	// User is the mailbox owner, "me" for the authorised user.
	User string

	// Scopes are requested when a new authorisation is needed.
	Scopes []string

	// CredentialsFile is the OAuth client secrets JSON. Needed only for first authorisation.
	CredentialsFile string
	// TokenFile is where the authorised-user token is persisted.
	TokenFile string

	// LedgerBackend selects the ledger store.
	LedgerBackend LedgerBackend
	// LedgerFile is the JSON ledger path.
	LedgerFile string
	// DataDir holds the SQLite ledger database.
	DataDir string

	// RequestsPerSecond paces calls to Google APIs. Zero disables pacing.
	RequestsPerSecond float64
	// Burst is the pacing bucket size.
	Burst int
}

// DefaultConfig returns a configuration rooted at baseDir.
func DefaultConfig(baseDir string) Config {
	return Config{
		Range:             DefaultRange,
		ValueInputOption:  DefaultValueInputOption,
		Query:             DefaultQuery,
		MaxResults:        DefaultMaxResults,
		User:              DefaultUser,
		Scopes:            []string{ScopeGmailModify, ScopeSpreadsheets},
		CredentialsFile:   filepath.Join(baseDir, "credentials", "credentials.json"),
		TokenFile:         filepath.Join(baseDir, "credentials", "token.json"),
		LedgerBackend:     LedgerBackendJSON,
		LedgerFile:        filepath.Join(baseDir, "processed_emails.json"),
		DataDir:           filepath.Join(baseDir, "data"),
		RequestsPerSecond: DefaultRequestsPerSecond,
		Burst:             DefaultBurst,
	}
}

// Validate checks the configuration is usable for a run.
func (c Config) Validate() error {
	if c.SpreadsheetID == "" {
		return fmt.Errorf("%w: spreadsheet id is required", ErrConfigInvalid)
	}
	if c.Range == "" {
		return fmt.Errorf("%w: range is required", ErrConfigInvalid)
	}
	if c.MaxResults < 1 {
		return fmt.Errorf("%w: max results must be at least 1, got %d", ErrConfigInvalid, c.MaxResults)
	}
	if c.TokenFile == "" {
		return fmt.Errorf("%w: token file path is required", ErrConfigInvalid)
	}
	switch c.LedgerBackend {
	case LedgerBackendJSON:
		if c.LedgerFile == "" {
			return fmt.Errorf("%w: ledger file path is required", ErrConfigInvalid)
		}
	case LedgerBackendSQLite:
		if c.DataDir == "" {
			return fmt.Errorf("%w: data directory is required for sqlite ledger", ErrConfigInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown ledger backend %q", ErrConfigInvalid, c.LedgerBackend)
	}
	return nil
}
