package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/custodia-labs/sheetmail/internal/core/domain"
	"github.com/custodia-labs/sheetmail/internal/core/ports/driving"
)

type mockIngestor struct {
	report *domain.RunReport
	err    error
	opts   []driving.RunOptions
}

func (m *mockIngestor) Run(_ context.Context, opts driving.RunOptions) (*domain.RunReport, error) {
	m.opts = append(m.opts, opts)
	return m.report, m.err
}

type mockLedger struct {
	ids []string
	err error
}

func (m *mockLedger) List(context.Context) ([]string, error) { return m.ids, m.err }
func (m *mockLedger) Count(context.Context) (int, error)     { return len(m.ids), m.err }

type mockConfig struct {
	entries []driving.ConfigEntry
	set     map[string]string
	setErr  error
}

func (m *mockConfig) Load() (domain.Config, error) { return domain.DefaultConfig("/base"), nil }

func (m *mockConfig) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.set == nil {
		m.set = map[string]string{}
	}
	m.set[key] = value
	return nil
}

func (m *mockConfig) Entries() ([]driving.ConfigEntry, error) { return m.entries, nil }
func (m *mockConfig) Path() string                            { return "/base/config.toml" }

type mockAuthorizer struct {
	err    error
	logins int
}

func (m *mockAuthorizer) Login(context.Context) error {
	m.logins++
	return m.err
}

func (m *mockAuthorizer) TokenPath() string { return "/base/credentials/token.json" }

// validSettings returns settings that pass validation.
func validSettings() domain.Config {
	cfg := domain.DefaultConfig("/base")
	cfg.SpreadsheetID = "sheet-1"
	return cfg
}

// withApp installs app for the duration of the test and records the
// options the command built it from.
func withApp(t *testing.T, app *App) *[]Options {
	t.Helper()

	var seen []Options
	old := newApp
	newApp = func(opts Options) (*App, error) {
		seen = append(seen, opts)
		return app, nil
	}
	t.Cleanup(func() { newApp = old })
	return &seen
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags()
	t.Cleanup(resetFlags)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags() {
	verbose = false
	configDir = ""
	flagSpreadsheetID = ""
	flagRange = ""
	flagMaxResults = 0
	flagLedger = ""
	dryRun = false
}
