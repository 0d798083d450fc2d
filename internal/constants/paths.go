// Package constants contains file and directory names shared across lintrc.
package constants

const (
	// AppName is used for XDG directory paths.
	AppName = "lintrc"

	// LogFilename is the rotated log file written under the XDG data directory.
	LogFilename = "lintrc.log"

	// DefaultConfigFilename is the file written by "lintrc init".
	DefaultConfigFilename = ".lintrc.yml"
)

// ConfigFilenames are tried in order in each directory during discovery.
var ConfigFilenames = []string{
	".lintrc.yml",
	".lintrc.yaml",
	".lintrc.json",
	".lintrc.toml",
}
