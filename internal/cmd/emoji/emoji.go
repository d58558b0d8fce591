// Package emoji provides symbol constants for CLI output.
package emoji

// Symbol constants give commands a consistent visual language.
const (
	// Success marks a completed run or a configured tracker.
	Success = "✓"

	// Error marks a failed run or missing credentials.
	Error = "✗"

	// Warning marks partial success, such as skipped issues.
	Warning = "!"

	// DryRun marks output of a run that wrote nothing.
	DryRun = "~"
)
