package regstore

import (
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// TestOnlyRegstorePackageImportsDrivers ensures that only this package wires
// concrete store drivers. Other packages must depend on the core.Store
// contract instead of importing driver packages directly.
func TestOnlyRegstorePackageImportsDrivers(t *testing.T) {
	driverPrefixes := []string{
		"gcdashboard/internal/regstore/dynamo",
		"gcdashboard/internal/regstore/postgres",
		"gcdashboard/internal/regstore/sqlite",
		"gcdashboard/internal/regstore/memory",
	}
	allowedPrefix := "gcdashboard/internal/regstore"

	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports, Tests: true}
	pkgs, err := packages.Load(cfg, "gcdashboard/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	seen := make(map[string]struct{})

	for _, pkg := range pkgs {
		// Covers the package itself plus its test variants and the driver
		// subpackages, whose paths all share the regstore prefix.
		if strings.HasPrefix(pkg.PkgPath, allowedPrefix) {
			continue
		}
		for importPath := range pkg.Imports {
			if isDriverPath(importPath, driverPrefixes) {
				pos := filepath.Join(pkg.PkgPath, "...")
				seen[pos+": "+importPath] = struct{}{}
			}
		}
	}

	if len(seen) > 0 {
		violations := make([]string, 0, len(seen))
		for v := range seen {
			violations = append(violations, v)
		}
		sort.Strings(violations)
		for _, v := range violations {
			t.Errorf("forbidden import of store driver package: %s", v)
		}
		t.Fatalf("found %d forbidden imports of store driver packages", len(violations))
	}
}

func isDriverPath(importPath string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if importPath == prefix || strings.HasPrefix(importPath, prefix+"/") {
			return true
		}
	}
	return false
}
