package constants_test

import (
	"fmt"
	"path/filepath"

	"github.com/agentstation/depsync/pkg/constants"
)

// Example demonstrates resolving the default file locations against a project root
func Example() {
	root := "/work/app"

	fmt.Println(filepath.Join(root, constants.DefaultBuildFile))
	fmt.Println(filepath.Join(root, constants.DefaultCatalogFile))
	fmt.Printf("marker: %s\n", constants.DefaultMarker)
	// Output:
	// /work/app/build.gradle.kts
	// /work/app/gradle/libs.versions.toml
	// marker: dependencySync
}

// Example_permissions demonstrates the file permission constants
func Example_permissions() {
	fmt.Printf("dir %o, file %o\n", constants.DirPermissions, constants.FilePermissions)
	// Output:
	// dir 755, file 644
}
