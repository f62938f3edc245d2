// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// version.go — build-time version metadata injected via -ldflags and exposed
// through Version(); the utfgrid CLI prints it.

package mapcache

// Build-time variables injected via -ldflags.
// Defaults represent an unversioned local development build.
//
//	BuildDate format : YYYY.MM.DD-HHMM  (24-hour clock)
//	BuildEnv  values : dev | qa | prod
var (
	// Set by: -ldflags "-X 'github.com/fblackburn/mapcache.BuildDate=2026.10.15-0900'"
	BuildDate = "0000.00.00-0000"

	// Set by: -ldflags "-X 'github.com/fblackburn/mapcache.BuildEnv=prod'"
	BuildEnv = "dev"
)

// Version returns the full version string in the form "YYYY.MM.DD-HHMM-env".
func Version() string {
	return BuildDate + "-" + BuildEnv
}
