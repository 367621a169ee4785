// Package manifest defines the immutable set of files dotbash manages.
//
// A manifest is built once at startup (see pkg/config) and passed explicitly
// to each executor; nothing mutates it afterwards. Installation state is
// never recorded anywhere: it is always re-derived from disk by probing the
// resolved destination paths.
package manifest

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotbash/pkg/errors"
)

// Class is the destination class of a managed file
type Class string

const (
	// ClassHomeDotfile resolves to ${HOME}/.{name}
	ClassHomeDotfile Class = "home"

	// ClassConfigScript resolves to ${CONFIG_DIR}/{name}
	ClassConfigScript Class = "config"
)

// Entry is a single managed file: a payload filename plus its destination class
type Entry struct {
	Name  string
	Class Class
}

// Resolve returns the destination path for the entry
func (e Entry) Resolve(homeDir, configDir string) string {
	switch e.Class {
	case ClassHomeDotfile:
		return filepath.Join(homeDir, "."+e.Name)
	case ClassConfigScript:
		return filepath.Join(configDir, e.Name)
	}
	// Unreachable for manifests built through New, which rejects unknown classes
	return ""
}

// Probe is the typed result of an existence check on a path
type Probe struct {
	Path    string
	Present bool
}

// ProbeFile checks whether path exists as a regular file (symlinks to
// regular files count). Directories do not.
func ProbeFile(path string) Probe {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return Probe{Path: path, Present: false}
	}
	return Probe{Path: path, Present: true}
}

// Manifest is the frozen set of managed entries plus the directories that
// must exist before install/update and the advisory tool list
type Manifest struct {
	entries          []Entry
	requiredDirs     []string
	recommendedTools []string
}

// New validates and freezes a manifest. Within each destination class every
// filename must be unique; two entries mapping to the same destination path
// are a configuration error.
func New(entries []Entry, requiredDirs, recommendedTools []string) (*Manifest, error) {
	seen := make(map[Entry]struct{}, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			return nil, errors.New(errors.ErrConfigInvalid, "manifest entry with empty filename")
		}
		if e.Class != ClassHomeDotfile && e.Class != ClassConfigScript {
			return nil, errors.Newf(errors.ErrConfigInvalid, "manifest entry %q has unknown class %q", e.Name, e.Class)
		}
		if filepath.Base(e.Name) != e.Name {
			return nil, errors.Newf(errors.ErrConfigInvalid, "manifest entry %q must be a bare filename", e.Name)
		}
		if _, dup := seen[e]; dup {
			return nil, errors.Newf(errors.ErrConfigInvalid, "duplicate manifest entry %q in class %q", e.Name, e.Class)
		}
		seen[e] = struct{}{}
	}

	m := &Manifest{
		entries:          make([]Entry, len(entries)),
		requiredDirs:     make([]string, len(requiredDirs)),
		recommendedTools: make([]string, len(recommendedTools)),
	}
	copy(m.entries, entries)
	copy(m.requiredDirs, requiredDirs)
	copy(m.recommendedTools, recommendedTools)
	return m, nil
}

// Entries returns a copy of the managed entries, in manifest order
func (m *Manifest) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// RequiredDirs returns a copy of the directories that must exist before
// install or update proceeds
func (m *Manifest) RequiredDirs() []string {
	out := make([]string, len(m.requiredDirs))
	copy(out, m.requiredDirs)
	return out
}

// RecommendedTools returns a copy of the advisory external tool names
func (m *Manifest) RecommendedTools() []string {
	out := make([]string, len(m.recommendedTools))
	copy(out, m.recommendedTools)
	return out
}

// Len returns the number of managed entries
func (m *Manifest) Len() int {
	return len(m.entries)
}
