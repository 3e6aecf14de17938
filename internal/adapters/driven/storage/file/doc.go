// Package file provides file-backed implementations of driven port interfaces.
//
// The ledger is stored as a JSON array of message ID strings, in the order
// the IDs were first processed:
//
//	["18f1a2b3c4d5e6f7", "18f1a2b3c4d5e6f8"]
//
// A missing file is an empty ledger. Saving replaces the whole file.
package file
