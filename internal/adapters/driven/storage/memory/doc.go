// Package memory provides in-memory implementations of driven port
// interfaces for tests.
package memory
