// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//
// A typical config.toml:
//
//	[spreadsheet]
//	id = "1AbC..."
//	range = "Sheet1!A1"
//
//	[gmail]
//	max_results = 10
//
//	[ledger]
//	backend = "json"
package file
