package google

import (
	"sync"

	"golang.org/x/oauth2"
)

// TokenSaver persists a token that was freshly obtained or refreshed.
type TokenSaver func(tok *oauth2.Token) error

// persistingTokenSource calls save whenever the wrapped source hands out a
// token whose access token differs from the last one seen.
type persistingTokenSource struct {
	mu   sync.Mutex
	base oauth2.TokenSource
	last string
	save TokenSaver
}

// NewPersistingTokenSource wraps base so refreshed tokens are written back
// through save. initial is the token the caller already holds, it is not saved again.
// A save failure is returned as a token error, which fails the API call.
func NewPersistingTokenSource(base oauth2.TokenSource, initial *oauth2.Token, save TokenSaver) oauth2.TokenSource {
	ts := &persistingTokenSource{base: base, save: save}
	if initial != nil {
		ts.last = initial.AccessToken
	}
	return ts
}

// Token implements oauth2.TokenSource.
func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tok, err := p.base.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != p.last {
		if err := p.save(tok); err != nil {
			return nil, err
		}
		p.last = tok.AccessToken
	}
	return tok, nil
}
