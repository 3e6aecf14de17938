// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Authenticator: Establishes an authorised Session (Credential Store)
//   - Session: Builds API clients from an authorised identity
//   - MessageSource: Lists, fetches and marks messages read
//   - RowSink: Appends rows to the destination spreadsheet
//   - MessageDecoder: Turns a RawMessage into an EmailRecord
//   - LedgerStore: Processed-ID ledger persistence
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
