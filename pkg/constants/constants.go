// Package constants provides shared constants used throughout the beadsync codebase.
// This includes timeouts, limits, file permissions, store layout, and other values
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to tracker APIs
	DefaultHTTPTimeout = 30 * time.Second

	// SourceFetchTimeout bounds a complete paginated fetch from a single tracker
	SourceFetchTimeout = 5 * time.Minute

	// SyncTimeout is the timeout for a whole sync run
	SyncTimeout = 10 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for sensitive files such as .env.local (rw-------)
	SecureFilePermissions = 0600
)

// Store layout constants
const (
	// DefaultStoreDir is the store directory used when none is configured
	DefaultStoreDir = ".beads"

	// IssuesFile holds one local record per line
	IssuesFile = "issues.jsonl"

	// MetadataFile holds the provenance of the last sync run
	MetadataFile = "metadata.json"

	// AuditLogFile is the optional append-only log of sync runs
	AuditLogFile = "sync-log.jsonl"

	// LockFile guards the store against concurrent sync runs
	LockFile = ".sync.lock"
)

// Limit constants define various limits and capacities
const (
	// DefaultPageSize is the number of issues requested per page from trackers
	DefaultPageSize = 100

	// MaxPages caps pagination so a misbehaving tracker cannot loop forever
	MaxPages = 1000

	// MaxConcurrentSources is the maximum number of trackers fetched concurrently
	MaxConcurrentSources = 4

	// MaxErrorBodyLength truncates tracker error bodies carried in APIError messages
	MaxErrorBodyLength = 512

	// MaxStoreLineSize is the largest single record line accepted when loading the store
	MaxStoreLineSize = 4 * 1024 * 1024
)

// Identifier constants
const (
	// DefaultSlugLength is the default maximum length of derived slugs
	DefaultSlugLength = 50

	// LocalIDPrefix prefixes every locally assigned record id
	LocalIDPrefix = "bd-"

	// MinLocalIDLength is the number of hash characters in a fresh local id
	MinLocalIDLength = 4

	// MaxLocalIDLength is the longest hash suffix tried before giving up on collisions
	MaxLocalIDLength = 32
)

// Rate limiting constants
const (
	// DefaultRateLimit is the default requests per minute for trackers without specific limits
	DefaultRateLimit = 120

	// BurstSize is the token bucket burst size for rate limiting
	BurstSize = 10
)

// Logging constants
const (
	// LogRotationSizeMB is the maximum size of a log file before rotation
	LogRotationSizeMB = 10

	// LogRotationAgeDays is the maximum age of rotated log files
	LogRotationAgeDays = 7

	// LogRotationBackups is the maximum number of old log files to retain
	LogRotationBackups = 5
)
