package common

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version returns the build version embedded from the VERSION file.
func Version() string {
	return strings.TrimSpace(version)
}

// ServerName is the name reported in the Server header and the user agent of
// the service.
func ServerName() string {
	return "plancompare/" + Version()
}
