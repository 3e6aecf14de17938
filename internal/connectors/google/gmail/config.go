package gmail

import (
	"github.com/custodia-labs/sheetmail/internal/core/domain"
)

// LabelUnread is the system label Gmail uses to flag unread messages.
const LabelUnread = "UNREAD"

// Config holds Gmail connector configuration.
type Config struct {
	// User is the mailbox owner, "me" for the authorised account.
	User string
	// Query is a Gmail search query selecting the messages to ingest.
	Query string
	// MaxResults caps how many message IDs one listing returns.
	MaxResults int64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		User:       domain.DefaultUser,
		Query:      domain.DefaultQuery,
		MaxResults: domain.DefaultMaxResults,
	}
}

// ParseConfig extracts connector configuration from the application config.
// Empty or non-positive values fall back to the defaults.
func ParseConfig(cfg domain.Config) *Config {
	out := DefaultConfig()

	if cfg.User != "" {
		out.User = cfg.User
	}
	if cfg.Query != "" {
		out.Query = cfg.Query
	}
	if cfg.MaxResults > 0 {
		out.MaxResults = cfg.MaxResults
	}

	return out
}
