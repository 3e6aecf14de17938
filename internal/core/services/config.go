package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/sheetmail/internal/core/domain"
	"github.com/custodia-labs/sheetmail/internal/core/ports/driven"
	"github.com/custodia-labs/sheetmail/internal/core/ports/driving"
)

// Ensure ConfigService implements the interface.
var _ driving.ConfigService = (*ConfigService)(nil)

// Config keys for job configuration storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeySpreadsheetID     = "spreadsheet.id"
	KeyRange             = "spreadsheet.range"
	KeyValueInputOption  = "spreadsheet.value_input_option"
	KeyQuery             = "gmail.query"
	KeyMaxResults        = "gmail.max_results"
	KeyUser              = "gmail.user"
	KeyCredentialsFile   = "paths.credentials"
	KeyTokenFile         = "paths.token"
	KeyLedgerFile        = "paths.ledger"
	KeyDataDir           = "paths.data"
	KeyLedgerBackend     = "ledger.backend"
	KeyScopes            = "auth.scopes"
	KeyRequestsPerSecond = "google.requests_per_second"
	KeyBurst             = "google.burst"
)

type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindFloat
	kindList
	kindBackend
)

// configKeys lists every known key in display order.
var configKeys = []struct {
	key  string
	kind keyKind
}{
	{KeySpreadsheetID, kindString},
	{KeyRange, kindString},
	{KeyValueInputOption, kindString},
	{KeyQuery, kindString},
	{KeyMaxResults, kindInt},
	{KeyUser, kindString},
	{KeyCredentialsFile, kindString},
	{KeyTokenFile, kindString},
	{KeyLedgerFile, kindString},
	{KeyDataDir, kindString},
	{KeyLedgerBackend, kindBackend},
	{KeyScopes, kindList},
	{KeyRequestsPerSecond, kindFloat},
	{KeyBurst, kindInt},
}

// ConfigService maps the flat config store onto domain.Config.
type ConfigService struct {
	store   driven.ConfigStore
	baseDir string
}

// NewConfigService creates a config service. Relative defaults are rooted
// at baseDir.
func NewConfigService(store driven.ConfigStore, baseDir string) *ConfigService {
	return &ConfigService{store: store, baseDir: baseDir}
}

// Load returns the stored configuration over the defaults.
// The result is not validated; callers validate once overrides are applied.
func (s *ConfigService) Load() (domain.Config, error) {
	cfg := domain.DefaultConfig(s.baseDir)

	s.setString(KeySpreadsheetID, &cfg.SpreadsheetID)
	s.setString(KeyRange, &cfg.Range)
	s.setString(KeyValueInputOption, &cfg.ValueInputOption)
	s.setString(KeyQuery, &cfg.Query)
	s.setString(KeyUser, &cfg.User)
	s.setString(KeyCredentialsFile, &cfg.CredentialsFile)
	s.setString(KeyTokenFile, &cfg.TokenFile)
	s.setString(KeyLedgerFile, &cfg.LedgerFile)
	s.setString(KeyDataDir, &cfg.DataDir)

	if _, ok := s.store.Get(KeyMaxResults); ok {
		cfg.MaxResults = int64(s.store.GetInt(KeyMaxResults))
	}
	if _, ok := s.store.Get(KeyBurst); ok {
		cfg.Burst = s.store.GetInt(KeyBurst)
	}
	if _, ok := s.store.Get(KeyRequestsPerSecond); ok {
		cfg.RequestsPerSecond = s.store.GetFloat(KeyRequestsPerSecond)
	}
	if scopes := s.store.GetStringSlice(KeyScopes); len(scopes) > 0 {
		cfg.Scopes = scopes
	}
	if backend := s.store.GetString(KeyLedgerBackend); backend != "" {
		b, err := parseBackend(backend)
		if err != nil {
			return cfg, err
		}
		cfg.LedgerBackend = b
	}

	return cfg, nil
}

// Set parses value according to the key's type and persists it.
func (s *ConfigService) Set(key, value string) error {
	kind, ok := lookupKind(key)
	if !ok {
		return fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}

	var typed any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer: %q", domain.ErrInvalidInput, key, value)
		}
		typed = int64(n)
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number: %q", domain.ErrInvalidInput, key, value)
		}
		typed = f
	case kindList:
		typed = splitList(value)
	case kindBackend:
		b, err := parseBackend(value)
		if err != nil {
			return err
		}
		typed = string(b)
	default:
		typed = value
	}

	if err := s.store.Set(key, typed); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// Entries returns every known key with its effective value.
func (s *ConfigService) Entries() ([]driving.ConfigEntry, error) {
	cfg, err := s.Load()
	if err != nil {
		return nil, err
	}

	values := map[string]string{
		KeySpreadsheetID:     cfg.SpreadsheetID,
		KeyRange:             cfg.Range,
		KeyValueInputOption:  cfg.ValueInputOption,
		KeyQuery:             cfg.Query,
		KeyMaxResults:        strconv.FormatInt(cfg.MaxResults, 10),
		KeyUser:              cfg.User,
		KeyCredentialsFile:   cfg.CredentialsFile,
		KeyTokenFile:         cfg.TokenFile,
		KeyLedgerFile:        cfg.LedgerFile,
		KeyDataDir:           cfg.DataDir,
		KeyLedgerBackend:     string(cfg.LedgerBackend),
		KeyScopes:            strings.Join(cfg.Scopes, ","),
		KeyRequestsPerSecond: strconv.FormatFloat(cfg.RequestsPerSecond, 'f', -1, 64),
		KeyBurst:             strconv.Itoa(cfg.Burst),
	}

	entries := make([]driving.ConfigEntry, 0, len(configKeys))
	for _, k := range configKeys {
		entries = append(entries, driving.ConfigEntry{Key: k.key, Value: values[k.key]})
	}
	return entries, nil
}

// Path returns the backing store path.
func (s *ConfigService) Path() string {
	return s.store.Path()
}

func (s *ConfigService) setString(key string, dst *string) {
	if v := s.store.GetString(key); v != "" {
		*dst = v
	}
}

func lookupKind(key string) (keyKind, bool) {
	for _, k := range configKeys {
		if k.key == key {
			return k.kind, true
		}
	}
	return kindString, false
}

func parseBackend(value string) (domain.LedgerBackend, error) {
	switch b := domain.LedgerBackend(strings.ToLower(strings.TrimSpace(value))); b {
	case domain.LedgerBackendJSON, domain.LedgerBackendSQLite:
		return b, nil
	default:
		return "", fmt.Errorf("%w: ledger backend must be %q or %q, got %q",
			domain.ErrConfigInvalid, domain.LedgerBackendJSON, domain.LedgerBackendSQLite, value)
	}
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
