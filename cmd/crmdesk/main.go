// Command crmdesk picks message recipients from a contact directory.
package main

import (
	"os"

	"github.com/leadline/crmdesk/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
