// Command beadsync syncs tracker issues into a local issue store.
package main

import (
	"os"

	"github.com/agentstation/beadsync/cmd/beadsync/app"
)

// Set with -ldflags at release time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	cli, err := app.New(version, commit, date, builtBy)
	app.ExitOnError(err)

	ctx, stop := app.Context()
	err = cli.Execute(ctx, os.Args[1:])
	stop()
	app.ExitOnError(err)
}
