package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/sheetmail/internal/connectors/google"
	"github.com/custodia-labs/sheetmail/internal/core/domain"
	"github.com/custodia-labs/sheetmail/internal/logger"
)

// Consenter obtains a brand new token by asking the user to authorise the
// client described by cfg.
type Consenter interface {
	Consent(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error)
}

// Options configures a Provider.
type Options struct {
	// CredentialsFile is the OAuth client secrets file.
	CredentialsFile string
	// TokenFile is the authorised-user token file.
	TokenFile string
	// Scopes are requested on consent.
	Scopes []string
	// Consenter runs the interactive flow. Nil disables consent, so a
	// missing token always ends in domain.ErrAuthRequired.
	Consenter Consenter
	// Now is the clock used to classify tokens. Defaults to time.Now.
	Now func() time.Time
}

// Provider hands out token sources for the authorised user, running the
// token state machine on each call.
type Provider struct {
	credentialsFile string
	tokens          *TokenFile
	scopes          []string
	consenter       Consenter
	now             func() time.Time
}

// NewProvider creates a credential provider.
func NewProvider(opts Options) *Provider {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	scopes := opts.Scopes
	if len(scopes) == 0 {
		scopes = []string{domain.ScopeGmailModify, domain.ScopeSpreadsheets}
	}
	return &Provider{
		credentialsFile: opts.CredentialsFile,
		tokens:          NewTokenFile(opts.TokenFile),
		scopes:          scopes,
		consenter:       opts.Consenter,
		now:             now,
	}
}

// TokenSource returns a token source for API calls. Tokens refreshed later
// through the source are written back to the token file.
func (p *Provider) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	stored, err := p.tokens.Read()
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	var tok *domain.OAuthToken
	if stored != nil {
		tok = &stored.Token
	}

	state := domain.ClassifyToken(tok, p.now())
	logger.Debug("stored token state: %s", state)

	switch state {
	case domain.TokenValid:
		return p.useValid(ctx, stored)
	case domain.TokenExpiredRefreshable:
		return p.refresh(ctx, stored)
	case domain.TokenExpiredNonRefreshable:
		ts, err := p.consent(ctx, stored)
		if errors.Is(err, domain.ErrAuthRequired) {
			return nil, fmt.Errorf("%w: %w", domain.ErrAuthExpired, err)
		}
		return ts, err
	case domain.TokenNone:
		return p.consent(ctx, stored)
	default:
		return nil, fmt.Errorf("unhandled token state %s", state)
	}
}

// Login forces the consent flow and stores the resulting token.
func (p *Provider) Login(ctx context.Context) error {
	_, err := p.consent(ctx, nil)
	return err
}

// TokenPath returns the token file path.
func (p *Provider) TokenPath() string {
	return p.tokens.Path()
}

func (p *Provider) useValid(ctx context.Context, stored *StoredToken) (oauth2.TokenSource, error) {
	cfg := p.refreshConfig(stored)
	if cfg == nil {
		// Nothing to refresh with, the token is used until it expires.
		return oauth2.StaticTokenSource(toOAuth2(stored.Token)), nil
	}
	return p.persisting(ctx, cfg, stored), nil
}

func (p *Provider) refresh(ctx context.Context, stored *StoredToken) (oauth2.TokenSource, error) {
	cfg := p.refreshConfig(stored)
	if cfg == nil {
		logger.Debug("stored token has no client details, falling back to consent")
		return p.consent(ctx, stored)
	}

	expired := toOAuth2(stored.Token)
	expired.Expiry = p.now().Add(-time.Minute)
	fresh, err := cfg.TokenSource(ctx, expired).Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTokenRefreshFailed, err)
	}

	stored.Token = fromOAuth2(fresh, stored.Token, p.scopes)
	if err := p.tokens.Write(stored); err != nil {
		return nil, err
	}
	logger.Debug("refreshed access token, expires %s", stored.Token.Expiry.Format(time.RFC3339))

	return p.persisting(ctx, cfg, stored), nil
}

func (p *Provider) consent(ctx context.Context, previous *StoredToken) (oauth2.TokenSource, error) {
	cfg, err := LoadClientSecrets(p.credentialsFile, p.scopes)
	if err != nil {
		return nil, err
	}
	if p.consenter == nil {
		return nil, fmt.Errorf("%w: interactive consent is not available", domain.ErrAuthRequired)
	}

	tok, err := p.consenter.Consent(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("consent: %w", err)
	}

	var prev domain.OAuthToken
	if previous != nil {
		prev = previous.Token
	}
	stored := &StoredToken{
		Token:        fromOAuth2(tok, prev, p.scopes),
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURI:     cfg.Endpoint.TokenURL,
	}
	if err := p.tokens.Write(stored); err != nil {
		return nil, err
	}
	logger.Debug("stored new token at %s", p.tokens.Path())

	return p.persisting(ctx, cfg, stored), nil
}

// refreshConfig returns a client config able to refresh stored, preferring
// the client details in the token file over the client secrets file.
// Returns nil when neither is available.
func (p *Provider) refreshConfig(stored *StoredToken) *oauth2.Config {
	if !stored.Token.HasRefreshToken() {
		return nil
	}
	if stored.CanRefresh() {
		return configFromStored(stored, p.scopes)
	}
	cfg, err := LoadClientSecrets(p.credentialsFile, p.scopes)
	if err != nil {
		logger.Debug("no client secrets for refresh: %v", err)
		return nil
	}
	stored.ClientID = cfg.ClientID
	stored.ClientSecret = cfg.ClientSecret
	stored.TokenURI = cfg.Endpoint.TokenURL
	return cfg
}

// persisting wraps the library token source so tokens refreshed mid-run are
// written back to the token file.
func (p *Provider) persisting(ctx context.Context, cfg *oauth2.Config, stored *StoredToken) oauth2.TokenSource {
	current := toOAuth2(stored.Token)
	base := cfg.TokenSource(ctx, current)
	return google.NewPersistingTokenSource(base, current, func(tok *oauth2.Token) error {
		stored.Token = fromOAuth2(tok, stored.Token, p.scopes)
		return p.tokens.Write(stored)
	})
}
