package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/sheetmail/internal/core/domain"
	"github.com/custodia-labs/sheetmail/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.LedgerStore = (*LedgerStore)(nil)

// LedgerStore persists the processed-ID ledger as a JSON file.
type LedgerStore struct {
	path string
}

// NewLedgerStore creates a ledger store backed by the file at path.
func NewLedgerStore(path string) *LedgerStore {
	return &LedgerStore{path: path}
}

// Path returns the ledger file path.
func (s *LedgerStore) Path() string {
	return s.path
}

// Load reads the ledger. A missing file yields an empty ledger.
func (s *LedgerStore) Load(_ context.Context) (*domain.Ledger, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return domain.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("parsing ledger %s: %w", s.path, err)
	}

	return domain.NewLedger(ids...), nil
}

// Save replaces the ledger file with every ID in the ledger. The data is
// written to a temporary file in the same directory and renamed over the
// ledger, so a failed save leaves the previous ledger intact.
func (s *LedgerStore) Save(_ context.Context, ledger *domain.Ledger) error {
	if ledger == nil {
		return domain.ErrInvalidInput
	}

	data, err := json.Marshal(ledger.IDs())
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating ledger directory: %w", err)
	}

	if err := writeFileAtomic(dir, s.path, data); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}

	return nil
}

func writeFileAtomic(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, ".ledger-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
