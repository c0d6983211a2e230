// Package settings provides build metadata, runtime configuration, and
// context helpers used across the gridctl CLI and library packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "gridctl"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds configuration settings for a single execution of the application.
// It includes options for logging, input resolution, output formatting,
// and error handling behavior.
type Run struct {
	MinLogLevel int8
	Input       InputSettings
	IsQuiet     bool
	NoColor     bool
	ExitOnError bool
}

// InputSettings describes where the record collection comes from for one run:
// a file path given on the command line, or piped stdin.
type InputSettings struct {
	FromStdin bool
	Path      string
}

// NewCliParams initializes and returns a pointer to a Run struct with default
// CLI parameters: logging level 0, color output enabled, and exit-on-error set.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		IsQuiet:     false,
		NoColor:     false,
		ExitOnError: true,
	}
}
