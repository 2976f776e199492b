// Package version exposes the CRM release version, embedded at build
// time from the VERSION file next to this package.
package version

import (
	_ "embed"
)

//go:embed VERSION
var version string

// Get returns the release version string, e.g. "v0.3.1".
func Get() string {
	return version
}
