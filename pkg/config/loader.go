// Package config builds the dotbash manifest from layered configuration:
// embedded defaults, an optional override file in the dotfiles root, and
// DOTBASH_-prefixed environment variables, in that order of precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	ktoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/dotbash/pkg/errors"
	"github.com/arthur-debert/dotbash/pkg/manifest"
	"github.com/arthur-debert/dotbash/pkg/paths"
)

// envPrefix is the prefix for environment variable overrides, e.g.
// DOTBASH_FILES_HOME="bashrc,inputrc"
const envPrefix = "DOTBASH_"

// Settings mirrors the override file schema. genconfig marshals it back to
// TOML to produce a starter override file.
type Settings struct {
	Files struct {
		Home   []string `toml:"home"`
		Config []string `toml:"config"`
	} `toml:"files"`
	Directories struct {
		Extra []string `toml:"extra"`
	} `toml:"directories"`
	Tools struct {
		Recommended []string `toml:"recommended"`
	} `toml:"tools"`
}

// DefaultSettings returns the built-in manifest settings
func DefaultSettings() (Settings, error) {
	var s Settings
	if err := ktoml.Unmarshal(defaultConfig, &s); err != nil {
		return Settings{}, errors.Wrap(err, errors.ErrConfigParse, "embedded defaults are invalid")
	}
	return s, nil
}

// Load builds the manifest for a run. The result is immutable; executors
// receive it explicitly and never reload it.
func Load(p paths.Paths) (*manifest.Manifest, error) {
	k, err := load(p.DotfilesRoot())
	if err != nil {
		return nil, err
	}

	var entries []manifest.Entry
	for _, name := range k.Strings("files.home") {
		entries = append(entries, manifest.Entry{Name: name, Class: manifest.ClassHomeDotfile})
	}
	for _, name := range k.Strings("files.config") {
		entries = append(entries, manifest.Entry{Name: name, Class: manifest.ClassConfigScript})
	}

	requiredDirs := []string{p.StateDir(), p.DataDir(), p.ConfigDir()}
	for _, dir := range k.Strings("directories.extra") {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(p.HomeDir(), dir)
		}
		requiredDirs = append(requiredDirs, dir)
	}

	return manifest.New(entries, requiredDirs, k.Strings("tools.recommended"))
}

// load layers defaults, the optional override file and environment overrides
func load(dotfilesRoot string) (*koanf.Koanf, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load built-in manifest")
	}

	overrides := []string{
		paths.OverrideFileHiddenTOML,
		paths.OverrideFileTOML,
		paths.OverrideFileYAML,
	}
	for _, name := range overrides {
		path := filepath.Join(dotfilesRoot, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), parserFor(name)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load manifest override from %s", path)
		}
		break
	}

	// DOTBASH_FILES_HOME etc; list values are comma-separated
	envProvider := env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		k := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, envPrefix)), "_", ".")
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return k, parts
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	return k, nil
}

func parserFor(name string) koanf.Parser {
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		return yaml.Parser()
	}
	return toml.Parser()
}
