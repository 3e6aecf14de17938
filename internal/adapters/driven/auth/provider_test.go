package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/sheetmail/internal/core/domain"
)

var fixedNow = time.Date(2024, 9, 3, 10, 30, 0, 0, time.UTC)

// mockConsenter records consent requests and returns a canned token.
type mockConsenter struct {
	token *oauth2.Token
	err   error
	calls int
	cfg   *oauth2.Config
}

func (m *mockConsenter) Consent(_ context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	m.calls++
	m.cfg = cfg
	return m.token, m.err
}

// fakeTokenEndpoint answers refresh_token grants with a new access token.
func fakeTokenEndpoint(t *testing.T, status int) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Token has been expired or revoked."}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "refreshed-access",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func writeClientSecrets(t *testing.T, dir, tokenURL string) string {
	t.Helper()
	path := filepath.Join(dir, "credentials.json")
	content := fmt.Sprintf(`{"installed":{
		"client_id":"secrets-client",
		"client_secret":"secrets-secret",
		"auth_uri":"https://accounts.google.com/o/oauth2/auth",
		"token_uri":%q,
		"redirect_uris":["http://localhost"]
	}}`, tokenURL)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func writeToken(t *testing.T, path string, stored *StoredToken) {
	t.Helper()
	require.NoError(t, NewTokenFile(path).Write(stored))
}

func TestProvider_NoTokenNoSecrets_AuthRequired(t *testing.T) {
	dir := t.TempDir()
	consenter := &mockConsenter{}
	p := NewProvider(Options{
		CredentialsFile: filepath.Join(dir, "credentials.json"),
		TokenFile:       filepath.Join(dir, "token.json"),
		Consenter:       consenter,
		Now:             func() time.Time { return fixedNow },
	})

	ts, err := p.TokenSource(context.Background())
	assert.Nil(t, ts)
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.Zero(t, consenter.calls)
	assert.NoFileExists(t, filepath.Join(dir, "token.json"))
}

func TestProvider_ValidToken(t *testing.T) {
	dir := t.TempDir()
	tokenPath := filepath.Join(dir, "token.json")
	writeToken(t, tokenPath, &StoredToken{
		Token: domain.OAuthToken{AccessToken: "still-good", Expiry: fixedNow.Add(time.Hour)},
	})

	p := NewProvider(Options{TokenFile: tokenPath, Now: func() time.Time { return fixedNow }})

	ts, err := p.TokenSource(context.Background())
	require.NoError(t, err)
	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "still-good", tok.AccessToken)
}

func TestProvider_ExpiredRefreshable_RefreshesAndPersists(t *testing.T) {
	srv, calls := fakeTokenEndpoint(t, http.StatusOK)
	dir := t.TempDir()
	tokenPath := filepath.Join(dir, "token.json")
	writeToken(t, tokenPath, &StoredToken{
		Token: domain.OAuthToken{
			AccessToken:  "stale",
			RefreshToken: "refresh-1",
			Expiry:       fixedNow.Add(-time.Hour),
		},
		ClientID:     "cid",
		ClientSecret: "secret",
		TokenURI:     srv.URL,
	})

	p := NewProvider(Options{
		CredentialsFile: filepath.Join(dir, "missing.json"),
		TokenFile:       tokenPath,
		Now:             func() time.Time { return fixedNow },
	})

	ts, err := p.TokenSource(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))

	stored, err := NewTokenFile(tokenPath).Read()
	require.NoError(t, err)
	assert.Equal(t, "refreshed-access", stored.Token.AccessToken)
	assert.Equal(t, "refresh-1", stored.Token.RefreshToken, "refresh token survives when not rotated")
	assert.Equal(t, srv.URL, stored.TokenURI)

	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "refreshed-access", tok.AccessToken)
}

func TestProvider_ExpiredRefreshable_UsesClientSecretsWhenTokenLacksClient(t *testing.T) {
	srv, calls := fakeTokenEndpoint(t, http.StatusOK)
	dir := t.TempDir()
	tokenPath := filepath.Join(dir, "token.json")
	writeToken(t, tokenPath, &StoredToken{
		Token: domain.OAuthToken{AccessToken: "stale", RefreshToken: "r", Expiry: fixedNow.Add(-time.Hour)},
	})

	p := NewProvider(Options{
		CredentialsFile: writeClientSecrets(t, dir, srv.URL),
		TokenFile:       tokenPath,
		Now:             func() time.Time { return fixedNow },
	})

	_, err := p.TokenSource(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))

	stored, err := NewTokenFile(tokenPath).Read()
	require.NoError(t, err)
	assert.Equal(t, "secrets-client", stored.ClientID)
	assert.Equal(t, "refreshed-access", stored.Token.AccessToken)
}

func TestProvider_RefreshFailure(t *testing.T) {
	srv, _ := fakeTokenEndpoint(t, http.StatusBadRequest)
	dir := t.TempDir()
	tokenPath := filepath.Join(dir, "token.json")
	writeToken(t, tokenPath, &StoredToken{
		Token:        domain.OAuthToken{AccessToken: "stale", RefreshToken: "revoked", Expiry: fixedNow.Add(-time.Hour)},
		ClientID:     "cid",
		ClientSecret: "secret",
		TokenURI:     srv.URL,
	})

	p := NewProvider(Options{TokenFile: tokenPath, Now: func() time.Time { return fixedNow }})

	_, err := p.TokenSource(context.Background())
	assert.ErrorIs(t, err, domain.ErrTokenRefreshFailed)

	stored, err := NewTokenFile(tokenPath).Read()
	require.NoError(t, err)
	assert.Equal(t, "stale", stored.Token.AccessToken, "token file untouched on failure")
}

func TestProvider_ExpiredNonRefreshable_RunsConsent(t *testing.T) {
	dir := t.TempDir()
	tokenPath := filepath.Join(dir, "token.json")
	writeToken(t, tokenPath, &StoredToken{
		Token: domain.OAuthToken{AccessToken: "stale", Expiry: fixedNow.Add(-time.Hour)},
	})

	consenter := &mockConsenter{token: &oauth2.Token{
		AccessToken:  "fresh",
		RefreshToken: "fresh-refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour),
	}}
	p := NewProvider(Options{
		CredentialsFile: writeClientSecrets(t, dir, "https://oauth2.googleapis.com/token"),
		TokenFile:       tokenPath,
		Consenter:       consenter,
		Now:             func() time.Time { return fixedNow },
	})

	ts, err := p.TokenSource(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, consenter.calls)
	assert.Equal(t, "secrets-client", consenter.cfg.ClientID)
	assert.Equal(t, []string{domain.ScopeGmailModify, domain.ScopeSpreadsheets}, consenter.cfg.Scopes)

	stored, err := NewTokenFile(tokenPath).Read()
	require.NoError(t, err)
	assert.Equal(t, "fresh", stored.Token.AccessToken)
	assert.Equal(t, "fresh-refresh", stored.Token.RefreshToken)
	assert.Equal(t, "secrets-client", stored.ClientID)
	assert.Equal(t, "secrets-secret", stored.ClientSecret)
	assert.Equal(t, []string{domain.ScopeGmailModify, domain.ScopeSpreadsheets}, stored.Token.Scopes)

	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok.AccessToken)
}

func TestProvider_ExpiredNonRefreshable_NoSecrets(t *testing.T) {
	dir := t.TempDir()
	tokenPath := filepath.Join(dir, "token.json")
	writeToken(t, tokenPath, &StoredToken{
		Token: domain.OAuthToken{AccessToken: "stale", Expiry: fixedNow.Add(-time.Hour)},
	})

	p := NewProvider(Options{
		CredentialsFile: filepath.Join(dir, "missing.json"),
		TokenFile:       tokenPath,
		Consenter:       &mockConsenter{},
		Now:             func() time.Time { return fixedNow },
	})

	_, err := p.TokenSource(context.Background())
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.ErrorIs(t, err, domain.ErrAuthExpired)
}

func TestProvider_SecretsButNoConsenter(t *testing.T) {
	dir := t.TempDir()
	p := NewProvider(Options{
		CredentialsFile: writeClientSecrets(t, dir, "https://oauth2.googleapis.com/token"),
		TokenFile:       filepath.Join(dir, "token.json"),
	})

	_, err := p.TokenSource(context.Background())
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestProvider_ConsentFailure(t *testing.T) {
	dir := t.TempDir()
	p := NewProvider(Options{
		CredentialsFile: writeClientSecrets(t, dir, "https://oauth2.googleapis.com/token"),
		TokenFile:       filepath.Join(dir, "token.json"),
		Consenter:       &mockConsenter{err: errors.New("user closed the window")},
	})

	_, err := p.TokenSource(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "consent: user closed the window")
	assert.NoFileExists(t, filepath.Join(dir, "token.json"))
}

func TestProvider_CorruptTokenFile(t *testing.T) {
	dir := t.TempDir()
	tokenPath := filepath.Join(dir, "token.json")
	require.NoError(t, os.WriteFile(tokenPath, []byte("{"), 0600))

	p := NewProvider(Options{TokenFile: tokenPath})
	_, err := p.TokenSource(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrAuthRequired)
}

func TestProvider_Login(t *testing.T) {
	dir := t.TempDir()
	tokenPath := filepath.Join(dir, "token.json")
	// Even a valid token is replaced on explicit login.
	writeToken(t, tokenPath, &StoredToken{Token: domain.OAuthToken{AccessToken: "old", Expiry: fixedNow.Add(time.Hour)}})

	consenter := &mockConsenter{token: &oauth2.Token{AccessToken: "new", RefreshToken: "r"}}
	p := NewProvider(Options{
		CredentialsFile: writeClientSecrets(t, dir, "https://oauth2.googleapis.com/token"),
		TokenFile:       tokenPath,
		Consenter:       consenter,
	})

	require.NoError(t, p.Login(context.Background()))
	assert.Equal(t, 1, consenter.calls)
	assert.Equal(t, tokenPath, p.TokenPath())

	stored, err := NewTokenFile(tokenPath).Read()
	require.NoError(t, err)
	assert.Equal(t, "new", stored.Token.AccessToken)
}

func TestLoadClientSecrets(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadClientSecrets("", nil)
	assert.ErrorIs(t, err, domain.ErrAuthRequired)

	_, err = LoadClientSecrets(filepath.Join(dir, "nope.json"), nil)
	assert.ErrorIs(t, err, domain.ErrAuthRequired)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"neither":{}}`), 0600))
	_, err = LoadClientSecrets(bad, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrAuthRequired)

	cfg, err := LoadClientSecrets(writeClientSecrets(t, dir, "https://example.com/token"), []string{"s"})
	require.NoError(t, err)
	assert.Equal(t, "secrets-client", cfg.ClientID)
	assert.Equal(t, "https://example.com/token", cfg.Endpoint.TokenURL)
	assert.Equal(t, []string{"s"}, cfg.Scopes)
}
