package google

import (
	"context"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// NewGmailService creates a Gmail API service using the provided TokenSource.
// Extra options are appended, so tests can redirect the endpoint.
func NewGmailService(ctx context.Context, ts oauth2.TokenSource, opts ...option.ClientOption) (*gmail.Service, error) {
	return gmail.NewService(ctx, append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)...)
}

// NewSheetsService creates a Google Sheets API service using the provided TokenSource.
func NewSheetsService(ctx context.Context, ts oauth2.TokenSource, opts ...option.ClientOption) (*sheets.Service, error) {
	return sheets.NewService(ctx, append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)...)
}
