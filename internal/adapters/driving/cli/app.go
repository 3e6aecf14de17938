package cli

import (
	"context"
	"errors"
	"fmt"

	authadapter "github.com/custodia-labs/sheetmail/internal/adapters/driven/auth"
	configfile "github.com/custodia-labs/sheetmail/internal/adapters/driven/config/file"
	ledgerfile "github.com/custodia-labs/sheetmail/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/sheetmail/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sheetmail/internal/adapters/driving/oauth"
	"github.com/custodia-labs/sheetmail/internal/connectors/google/workspace"
	"github.com/custodia-labs/sheetmail/internal/core/domain"
	"github.com/custodia-labs/sheetmail/internal/core/ports/driven"
	"github.com/custodia-labs/sheetmail/internal/core/ports/driving"
	"github.com/custodia-labs/sheetmail/internal/core/services"
	"github.com/custodia-labs/sheetmail/internal/normalisers/message"
)

// Options are the command-line inputs that shape the application.
type Options struct {
	ConfigDir     string
	SpreadsheetID string
	Range         string
	MaxResults    int64
	LedgerBackend string
}

// Authorizer runs the interactive authorisation on demand.
type Authorizer interface {
	Login(ctx context.Context) error
	TokenPath() string
}

// App holds the services commands run against.
type App struct {
	// Settings is the effective configuration after overrides.
	Settings domain.Config

	Config   driving.ConfigService
	Ingestor driving.Ingestor
	Ledger   driving.LedgerService
	Auth     Authorizer

	// Account reports the authorised mailbox without prompting for consent.
	Account func(ctx context.Context) (string, error)

	closers []func() error
}

// Close releases resources held by the app.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// newApp builds the application. Tests replace it.
var newApp = buildApp

func buildApp(opts Options) (*App, error) {
	dir := opts.ConfigDir
	if dir == "" {
		d, err := configfile.DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("resolving config dir: %w", err)
		}
		dir = d
	}

	store, err := configfile.NewConfigStore(dir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	configService := services.NewConfigService(store, dir)

	cfg, err := configService.Load()
	if err != nil {
		return nil, err
	}
	if err := applyOverrides(&cfg, opts); err != nil {
		return nil, err
	}

	app := &App{Settings: cfg, Config: configService}

	ledgerStore, err := openLedger(app, cfg)
	if err != nil {
		return nil, err
	}

	provider := authadapter.NewProvider(authadapter.Options{
		CredentialsFile: cfg.CredentialsFile,
		TokenFile:       cfg.TokenFile,
		Scopes:          cfg.Scopes,
		Consenter:       oauth.NewLoopbackFlow(),
	})
	readOnly := authadapter.NewProvider(authadapter.Options{
		CredentialsFile: cfg.CredentialsFile,
		TokenFile:       cfg.TokenFile,
		Scopes:          cfg.Scopes,
	})

	app.Auth = provider
	app.Ledger = services.NewLedgerService(ledgerStore)
	app.Ingestor = services.NewIngestOrchestrator(
		workspace.NewAuthenticator(provider, cfg),
		ledgerStore,
		message.New(),
	)
	app.Account = func(ctx context.Context) (string, error) {
		session, err := workspace.NewAuthenticator(readOnly, cfg).Authenticate(ctx)
		if err != nil {
			return "", err
		}
		return session.Account(ctx)
	}

	return app, nil
}

func applyOverrides(cfg *domain.Config, opts Options) error {
	if opts.SpreadsheetID != "" {
		cfg.SpreadsheetID = opts.SpreadsheetID
	}
	if opts.Range != "" {
		cfg.Range = opts.Range
	}
	if opts.MaxResults != 0 {
		cfg.MaxResults = opts.MaxResults
	}
	if opts.LedgerBackend != "" {
		backend := domain.LedgerBackend(opts.LedgerBackend)
		if backend != domain.LedgerBackendJSON && backend != domain.LedgerBackendSQLite {
			return fmt.Errorf("%w: --ledger must be %q or %q, got %q",
				domain.ErrConfigInvalid, domain.LedgerBackendJSON, domain.LedgerBackendSQLite, opts.LedgerBackend)
		}
		cfg.LedgerBackend = backend
	}
	return nil
}

func openLedger(app *App, cfg domain.Config) (driven.LedgerStore, error) {
	switch cfg.LedgerBackend {
	case domain.LedgerBackendSQLite:
		store, err := sqlite.NewStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("opening ledger database: %w", err)
		}
		app.closers = append(app.closers, store.Close)
		return store.LedgerStore(), nil
	default:
		return ledgerfile.NewLedgerStore(cfg.LedgerFile), nil
	}
}

// loadApp builds the app from the current flags.
func loadApp() (*App, error) {
	return newApp(currentOptions())
}
