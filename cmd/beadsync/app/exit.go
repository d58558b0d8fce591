package app

import (
	"fmt"
	"os"

	"github.com/agentstation/beadsync/pkg/errors"
)

// Process exit statuses.
const (
	ExitError       = 1
	ExitConfigError = 2 // missing credentials, bad config file, unknown source
	ExitFetchError  = 3 // tracker unreachable or refused; store untouched
)

// ExitCode maps err to an exit status. Joined errors count as a fetch
// failure if any part is one.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.IsConfigError(err):
		return ExitConfigError
	case errors.IsFetchError(err):
		return ExitFetchError
	}
	return ExitError
}

// ExitOnError prints err and exits with ExitCode(err). It returns if err is nil.
func ExitOnError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(ExitCode(err))
}
