package driving

import "github.com/custodia-labs/sheetmail/internal/core/domain"

// ConfigService reads and updates the persisted job configuration.
type ConfigService interface {
	// Load returns the effective configuration with defaults applied.
	Load() (domain.Config, error)

	// Set validates and persists a single key.
	Set(key, value string) error

	// Entries returns every known key with its effective value, in display order.
	Entries() ([]ConfigEntry, error)

	// Path returns where the configuration is stored.
	Path() string
}

// ConfigEntry is one key of the effective configuration.
type ConfigEntry struct {
	Key   string
	Value string
}
