// Command sheetmail copies unread Gmail messages into a Google Sheet.
package main

import (
	"os"

	"github.com/custodia-labs/sheetmail/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
