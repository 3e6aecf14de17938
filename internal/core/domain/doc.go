// Package domain defines the core business entities for sheetmail.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawMessage: A message payload as returned by the mail provider
//   - EmailRecord: A decoded message ready to become a spreadsheet row
//   - Ledger: The set of message IDs already emitted
//   - OAuthToken / TokenState: Stored credentials and their lifecycle state
//   - Config: Explicit run configuration
//   - RunReport: The outcome of one ingestion run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
