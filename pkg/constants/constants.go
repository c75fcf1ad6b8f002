// Package constants provides shared constants used throughout the depsync codebase.
// This includes default paths, marker names, file permissions, and the fixed
// values used when comparing and rendering dependency declarations.
package constants

// Path constants
const (
	// DefaultBuildFile is the build script synchronized when none is configured
	DefaultBuildFile = "build.gradle.kts"

	// DefaultCatalogFile is the version catalog synchronized when none is configured
	DefaultCatalogFile = "gradle/libs.versions.toml"

	// DefaultConfigName is the base name of the optional config file (.depsync.yaml)
	DefaultConfigName = ".depsync"

	// EnvPrefix is prepended to environment variables read by the CLI
	EnvPrefix = "DEPSYNC"
)

// Build script constants
const (
	// DefaultMarker is the configuration name whose declarations are managed
	DefaultMarker = "dependencySync"
)

// Catalog constants
const (
	// VersionsTable is the catalog table holding shared version definitions
	VersionsTable = "versions"

	// LibrariesTable is the catalog table holding library entries
	LibrariesTable = "libraries"
)

// Version constants
const (
	// SemVerSize is the number of dot separated components kept for comparison.
	// "1.0.0.RELEASE" compares as "1.0.0".
	SemVerSize = 3
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Exit codes returned by the CLI
const (
	// ExitDrift is returned by `depsync check` when the files are out of sync
	ExitDrift = 2
)
