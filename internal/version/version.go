package version

import (
	"os"
	"path/filepath"
	"strings"
)

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/dotbash/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/dotbash/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/dotbash/internal/version.Date={{.Date}}
)

// VersionFileName is the project-local version file consulted when the
// binary was built without ldflags (e.g. a plain `go build` from a checkout).
const VersionFileName = "VERSION"

// String returns the effective version: the ldflags-injected value when
// present, otherwise the contents of a VERSION file in the dotfiles root or
// the current directory, otherwise "unknown".
func String() string {
	if Version != "" && Version != "dev" {
		return Version
	}

	candidates := []string{VersionFileName}
	if root := os.Getenv("DOTBASH_ROOT"); root != "" {
		candidates = append(candidates, filepath.Join(root, VersionFileName))
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			return v
		}
	}

	return "unknown"
}
