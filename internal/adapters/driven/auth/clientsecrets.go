package auth

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/custodia-labs/sheetmail/internal/core/domain"
)

// LoadClientSecrets reads an OAuth client secrets file downloaded from the
// Google Cloud console ("installed" or "web" application).
// A missing file returns an error wrapping domain.ErrAuthRequired.
func LoadClientSecrets(path string, scopes []string) (*oauth2.Config, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: no client secrets file configured", domain.ErrAuthRequired)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: client secrets file %s not found", domain.ErrAuthRequired, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading client secrets: %w", err)
	}

	cfg, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parsing client secrets %s: %w", path, err)
	}
	return cfg, nil
}

// configFromStored builds a refresh-capable client config from the client
// details saved alongside the token.
func configFromStored(stored *StoredToken, scopes []string) *oauth2.Config {
	endpoint := google.Endpoint
	if stored.TokenURI != "" {
		endpoint.TokenURL = stored.TokenURI
	}
	return &oauth2.Config{
		ClientID:     stored.ClientID,
		ClientSecret: stored.ClientSecret,
		Endpoint:     endpoint,
		Scopes:       scopes,
	}
}
