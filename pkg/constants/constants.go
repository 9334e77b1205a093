// Package constants provides shared constants used throughout the woosync
// codebase. This includes timeouts, limits, and file permissions that
// should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application.
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the
	// catalog API.
	DefaultHTTPTimeout = 30 * time.Second

	// ProductUploadTimeout is the timeout for product create/update calls,
	// which carry larger payloads than taxonomy calls.
	ProductUploadTimeout = 60 * time.Second

	// ImportTimeout is the timeout for an entire import run.
	ImportTimeout = 2 * time.Hour
)

// Pacing constants control how gently the importer treats the remote API.
const (
	// DefaultPacingDelay is the minimum interval between consecutive
	// remote-mutating calls.
	DefaultPacingDelay = 2 * time.Second
)

// Limit constants define various limits and capacities.
const (
	// DefaultPageSize is the default number of items per page when listing
	// remote categories and attributes.
	DefaultPageSize = 100

	// MaxPageSize is the maximum page size the WooCommerce API accepts.
	MaxPageSize = 100
)

// File permission constants define standard Unix file permissions.
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x).
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--).
	FilePermissions = 0644
)
