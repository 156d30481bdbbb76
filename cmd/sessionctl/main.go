// Command sessionctl administers the session store: schema bootstrap,
// inspection and removal of sessions.
package main

import (
	"os"

	"github.com/dmitrymomot/sessionstore/cmd/sessionctl/app"
)

func main() {
	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
