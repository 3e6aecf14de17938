package domain

import "time"

// ExpiryDelta is how early a token is treated as expired, so it is not
// sent moments before the provider rejects it.
const ExpiryDelta = 10 * time.Second

// OAuthToken stores the OAuth tokens for the single authorised user.
type OAuthToken struct {
	// AccessToken is the bearer token for API access.
	AccessToken string `json:"access_token"`
	// RefreshToken is used to obtain new access tokens.
	RefreshToken string `json:"refresh_token,omitempty"`
	// TokenType is typically "Bearer".
	TokenType string `json:"token_type"`
	// Expiry is when the access token expires. Zero means unknown.
	Expiry time.Time `json:"expiry,omitempty"`
	// Scopes are the scopes the token was granted for.
	Scopes []string `json:"scopes,omitempty"`
}

// IsExpired returns true if the access token has expired at now.
// A token with no expiry never expires.
func (t *OAuthToken) IsExpired(now time.Time) bool {
	if t.Expiry.IsZero() {
		return false
	}
	return !now.Before(t.Expiry.Add(-ExpiryDelta))
}

// HasRefreshToken returns true if a refresh token is available.
func (t *OAuthToken) HasRefreshToken() bool {
	return t != nil && t.RefreshToken != ""
}

// TokenState is where a stored token sits in its lifecycle.
// Each state has exactly one handler in the credential store.
type TokenState int

const (
	// TokenNone means there is no stored token.
	TokenNone TokenState = iota
	// TokenExpiredRefreshable means the access token is unusable but a refresh token exists.
	TokenExpiredRefreshable
	// TokenExpiredNonRefreshable means the access token is unusable and cannot be refreshed.
	TokenExpiredNonRefreshable
	// TokenValid means the access token can be used as is.
	TokenValid
)

// String returns the state name.
func (s TokenState) String() string {
	switch s {
	case TokenNone:
		return "none"
	case TokenExpiredRefreshable:
		return "expired_refreshable"
	case TokenExpiredNonRefreshable:
		return "expired_non_refreshable"
	case TokenValid:
		return "valid"
	default:
		return "unknown"
	}
}

// ClassifyToken determines the lifecycle state of tok at now.
// A token carrying only a refresh token is treated as refreshable.
func ClassifyToken(tok *OAuthToken, now time.Time) TokenState {
	if tok == nil || (tok.AccessToken == "" && tok.RefreshToken == "") {
		return TokenNone
	}
	if tok.AccessToken != "" && !tok.IsExpired(now) {
		return TokenValid
	}
	if tok.HasRefreshToken() {
		return TokenExpiredRefreshable
	}
	return TokenExpiredNonRefreshable
}
