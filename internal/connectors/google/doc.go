// Package google provides shared infrastructure for the Google API connectors.
//
// This package contains common utilities used by the gmail and sheets
// connectors including:
//   - Service factories for creating Gmail and Sheets API clients
//   - A persisting TokenSource that writes refreshed tokens back to disk
//   - Error handling for common Google API errors (401, 403, 404, 429)
//   - Client-side request pacing to stay within Google API quotas
//
// # Usage
//
// Each connector uses this package to create authenticated API clients:
//
//	svc, err := google.NewGmailService(ctx, ts)
//	svc, err := google.NewSheetsService(ctx, ts)
//
// # OAuth2 Scopes
//
// A run needs these scopes:
//   - https://www.googleapis.com/auth/gmail.modify (restricted)
//   - https://www.googleapis.com/auth/spreadsheets (sensitive)
//
// For user-created internal apps, restricted scopes don't require verification.
package google
