// Package paths provides centralized path handling for dotbash.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotbash/pkg/errors"
)

// Environment variable names
const (
	// EnvDotfilesRoot is the primary environment variable for the dotfiles
	// payload location
	EnvDotfilesRoot = "DOTBASH_ROOT"

	// EnvDataDir overrides the XDG data directory for dotbash
	EnvDataDir = "DOTBASH_DATA_DIR"

	// EnvCommonCore overrides the collaborator library directory
	EnvCommonCore = "DOTBASH_COMMON_CORE"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed directory and file names.
// IMPORTANT: These constants define dotbash's on-disk layout and are NOT
// user-configurable. Installed shell files source each other through these
// paths, so they must remain consistent across installations.
const (
	// DotbashDirName is the directory name for dotbash-specific files
	DotbashDirName = "dotbash"

	// ConfigScriptsDirName is the home subdirectory that receives
	// config-class scripts; the installed bashrc sources files from it
	ConfigScriptsDirName = ".bash.d"

	// CollabDirName is the default home subdirectory holding the shared
	// common-core shell library
	CollabDirName = ".common-core"

	// CollabEntryName is the collaborator's entry-point file
	CollabEntryName = "common_core.sh"

	// OverrideFileNames are the manifest override files looked up in the
	// dotfiles root, in priority order
	OverrideFileTOML       = "dotbash.toml"
	OverrideFileHiddenTOML = ".dotbash.toml"
	OverrideFileYAML       = "dotbash.yaml"

	// LogFileName is the name of the log file
	LogFileName = "dotbash.log"
)

// Paths provides centralized path management for dotbash
type Paths interface {
	HomeDir() string
	ConfigDir() string
	DataDir() string
	CacheDir() string
	StateDir() string
	LogFilePath() string
	DotfilesRoot() string
	UsedFallback() bool
	SourcePath(name string) string
	CollabDir() string
	CollabEntryPath() string
}

type paths struct {
	homeDir      string
	dotfilesRoot string
	collabDir    string
	xdgData      string
	xdgCache     string
	xdgState     string

	// usedFallback indicates if we fell back to cwd (for warning display)
	usedFallback bool
}

// New creates a new Paths instance with the given dotfiles root.
// If dotfilesRoot is empty, it will be determined from environment variables,
// the enclosing git repository, or the current directory.
//
// A missing HOME is not an error here: preflight owns that diagnostic, and
// commands that bypass preflight (help, version) must still be able to
// construct a Paths.
func New(dotfilesRoot string) (Paths, error) {
	p := &paths{}

	p.homeDir = os.Getenv(EnvHome)

	if dotfilesRoot == "" {
		root, usedFallback, err := findDotfilesRoot()
		if err != nil {
			return nil, err
		}
		p.dotfilesRoot = root
		p.usedFallback = usedFallback
	} else {
		p.dotfilesRoot = expandHome(dotfilesRoot)
	}

	absRoot, err := filepath.Abs(p.dotfilesRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for dotfiles root")
	}
	p.dotfilesRoot = absRoot

	if collabDir := os.Getenv(EnvCommonCore); collabDir != "" {
		p.collabDir = expandHome(collabDir)
	} else {
		p.collabDir = filepath.Join(p.homeDir, CollabDirName)
	}

	p.setupXDGDirs()

	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		p.xdgData = expandHome(dataDir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, DotbashDirName)
	}

	p.xdgCache = filepath.Join(xdg.CacheHome, DotbashDirName)

	// State directory - XDG doesn't provide StateHome, so we check manually
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, DotbashDirName)
	} else {
		p.xdgState = filepath.Join(p.homeDir, ".local", "state", DotbashDirName)
	}
}

// findDotfilesRoot determines the dotfiles root using the following priority:
// 1. DOTBASH_ROOT environment variable (if set)
// 2. Git repository root (found via 'git rev-parse --show-toplevel')
// 3. Current working directory (fallback, flagged for a warning)
func findDotfilesRoot() (string, bool, error) {
	if root := os.Getenv(EnvDotfilesRoot); root != "" {
		return expandHome(root), false, nil
	}

	gitRoot, err := findGitRoot()
	if err == nil && gitRoot != "" {
		return gitRoot, false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}

	return cwd, true, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")

	output, err := cmd.Output()
	if err != nil {
		// Git command failed - not in a git repo or git not installed
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}

	return gitRoot, nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// HomeDir returns the user's home directory, possibly empty when HOME is
// unset (preflight reports that case)
func (p *paths) HomeDir() string {
	return p.homeDir
}

// ConfigDir returns the directory receiving config-class scripts
func (p *paths) ConfigDir() string {
	return filepath.Join(p.homeDir, ConfigScriptsDirName)
}

// DataDir returns the XDG data directory for dotbash
func (p *paths) DataDir() string {
	return p.xdgData
}

// CacheDir returns the XDG cache directory for dotbash
func (p *paths) CacheDir() string {
	return p.xdgCache
}

// StateDir returns the XDG state directory for dotbash
func (p *paths) StateDir() string {
	return p.xdgState
}

// LogFilePath returns the path to the dotbash log file
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// DotfilesRoot returns the source payload directory
func (p *paths) DotfilesRoot() string {
	return p.dotfilesRoot
}

// UsedFallback returns true if the current working directory was used as fallback
func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

// SourcePath returns the payload path for a manifest entry name
func (p *paths) SourcePath(name string) string {
	return filepath.Join(p.dotfilesRoot, name)
}

// CollabDir returns the collaborator library directory
func (p *paths) CollabDir() string {
	return p.collabDir
}

// CollabEntryPath returns the collaborator entry-point file path
func (p *paths) CollabEntryPath() string {
	return filepath.Join(p.collabDir, CollabEntryName)
}
