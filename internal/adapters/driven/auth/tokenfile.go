package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/custodia-labs/sheetmail/internal/core/domain"
)

// StoredToken is the content of the token file: the token itself plus the
// OAuth client it was issued to, which is what a refresh needs.
type StoredToken struct {
	Token        domain.OAuthToken
	ClientID     string
	ClientSecret string
	TokenURI     string
}

// CanRefresh reports whether the stored client details are enough to refresh.
func (s *StoredToken) CanRefresh() bool {
	return s != nil && s.Token.HasRefreshToken() && s.ClientID != "" && s.ClientSecret != ""
}

// authorizedUser is the "authorized_user" JSON layout written by Google's
// client libraries, so token files can be shared with them.
type authorizedUser struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refresh_token,omitempty"`
	TokenURI     string   `json:"token_uri,omitempty"`
	ClientID     string   `json:"client_id,omitempty"`
	ClientSecret string   `json:"client_secret,omitempty"`
	Scopes       []string `json:"scopes,omitempty"`
	Expiry       string   `json:"expiry,omitempty"`
	Type         string   `json:"type,omitempty"`
}

// TokenFile reads and writes the authorised-user token file.
type TokenFile struct {
	path string
	now  func() time.Time
}

// NewTokenFile creates a token file handle for path.
func NewTokenFile(path string) *TokenFile {
	return &TokenFile{path: path, now: time.Now}
}

// Path returns the token file path.
func (f *TokenFile) Path() string {
	return f.path
}

// Read loads the token file. A missing file returns domain.ErrNotFound.
func (f *TokenFile) Read() (*StoredToken, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}

	var au authorizedUser
	if err := json.Unmarshal(data, &au); err != nil {
		return nil, fmt.Errorf("parsing token file %s: %w", f.path, err)
	}

	stored := &StoredToken{
		Token: domain.OAuthToken{
			AccessToken:  au.Token,
			RefreshToken: au.RefreshToken,
			TokenType:    "Bearer",
			Scopes:       au.Scopes,
		},
		ClientID:     au.ClientID,
		ClientSecret: au.ClientSecret,
		TokenURI:     au.TokenURI,
	}

	if au.Expiry != "" {
		expiry, err := time.Parse(time.RFC3339Nano, au.Expiry)
		if err != nil {
			return nil, fmt.Errorf("parsing token expiry %q: %w", au.Expiry, err)
		}
		stored.Token.Expiry = expiry
	}

	return stored, nil
}

// Write replaces the token file with stored.
func (f *TokenFile) Write(stored *StoredToken) error {
	if stored == nil {
		return domain.ErrInvalidInput
	}

	au := authorizedUser{
		Token:        stored.Token.AccessToken,
		RefreshToken: stored.Token.RefreshToken,
		TokenURI:     stored.TokenURI,
		ClientID:     stored.ClientID,
		ClientSecret: stored.ClientSecret,
		Scopes:       stored.Token.Scopes,
		Type:         "authorized_user",
	}
	if au.TokenURI == "" {
		au.TokenURI = google.Endpoint.TokenURL
	}
	if !stored.Token.Expiry.IsZero() {
		au.Expiry = stored.Token.Expiry.UTC().Format(time.RFC3339)
	}

	data, err := json.MarshalIndent(au, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}

// toOAuth2 converts a domain token to the oauth2 library type.
func toOAuth2(tok domain.OAuthToken) *oauth2.Token {
	tokenType := tok.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return &oauth2.Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tokenType,
		Expiry:       tok.Expiry,
	}
}

// fromOAuth2 converts an oauth2 token back, keeping scopes and the previous
// refresh token when the endpoint did not issue a new one.
func fromOAuth2(tok *oauth2.Token, previous domain.OAuthToken, scopes []string) domain.OAuthToken {
	out := domain.OAuthToken{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry,
		Scopes:       scopes,
	}
	if out.RefreshToken == "" {
		out.RefreshToken = previous.RefreshToken
	}
	if len(out.Scopes) == 0 {
		out.Scopes = previous.Scopes
	}
	return out
}
