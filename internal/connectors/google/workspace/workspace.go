// Package workspace ties credentials to the Gmail and Sheets connectors,
// producing an authenticated session for a run.
package workspace

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"

	"github.com/custodia-labs/sheetmail/internal/connectors/google"
	"github.com/custodia-labs/sheetmail/internal/connectors/google/gmail"
	"github.com/custodia-labs/sheetmail/internal/connectors/google/sheets"
	"github.com/custodia-labs/sheetmail/internal/core/domain"
	"github.com/custodia-labs/sheetmail/internal/core/ports/driven"
)

// Verify interface compliance.
var (
	_ driven.Authenticator = (*Authenticator)(nil)
	_ driven.Session       = (*Session)(nil)
)

// TokenSourceProvider yields a token source for the authorised user.
type TokenSourceProvider interface {
	TokenSource(ctx context.Context) (oauth2.TokenSource, error)
}

// Authenticator creates Google sessions from a token source provider.
type Authenticator struct {
	tokens TokenSourceProvider
	cfg    domain.Config
	opts   []option.ClientOption
}

// NewAuthenticator creates an authenticator. opts are passed to every API
// client it builds.
func NewAuthenticator(tokens TokenSourceProvider, cfg domain.Config, opts ...option.ClientOption) *Authenticator {
	return &Authenticator{tokens: tokens, cfg: cfg, opts: opts}
}

// Authenticate obtains credentials and returns a session.
func (a *Authenticator) Authenticate(ctx context.Context) (driven.Session, error) {
	ts, err := a.tokens.TokenSource(ctx)
	if err != nil {
		return nil, err
	}
	return NewSession(ts, a.cfg, a.opts...), nil
}

// Session builds Gmail and Sheets clients sharing one token source.
type Session struct {
	ts   oauth2.TokenSource
	cfg  domain.Config
	opts []option.ClientOption

	gmailLimiter  *google.RateLimiter
	sheetsLimiter *google.RateLimiter
	source        *gmail.Source
}

// NewSession creates a session. Gmail calls are paced by the configured
// rate; Sheets calls use the service default.
func NewSession(ts oauth2.TokenSource, cfg domain.Config, opts ...option.ClientOption) *Session {
	return &Session{
		ts:   ts,
		cfg:  cfg,
		opts: opts,
		gmailLimiter: google.NewRateLimiterWithConfig(google.RateLimitConfig{
			RequestsPerSecond: cfg.RequestsPerSecond,
			BurstSize:         cfg.Burst,
		}),
		sheetsLimiter: google.NewRateLimiter(google.ServiceSheets),
	}
}

// MessageSource returns the Gmail message source.
func (s *Session) MessageSource(ctx context.Context) (driven.MessageSource, error) {
	return s.gmailSource(ctx)
}

// RowSink returns the Sheets row sink.
func (s *Session) RowSink(ctx context.Context) (driven.RowSink, error) {
	svc, err := google.NewSheetsService(ctx, s.ts, s.opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets client: %w", err)
	}
	return sheets.NewSink(svc, sheets.ParseConfig(s.cfg), s.sheetsLimiter), nil
}

// Account returns the mailbox owner's address.
func (s *Session) Account(ctx context.Context) (string, error) {
	src, err := s.gmailSource(ctx)
	if err != nil {
		return "", err
	}
	return src.Profile(ctx)
}

func (s *Session) gmailSource(ctx context.Context) (*gmail.Source, error) {
	if s.source != nil {
		return s.source, nil
	}
	svc, err := google.NewGmailService(ctx, s.ts, s.opts...)
	if err != nil {
		return nil, fmt.Errorf("creating gmail client: %w", err)
	}
	s.source = gmail.NewSource(svc, gmail.ParseConfig(s.cfg), s.gmailLimiter)
	return s.source, nil
}
