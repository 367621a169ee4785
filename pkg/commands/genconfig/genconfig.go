package genconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/dotbash/pkg/config"
	"github.com/arthur-debert/dotbash/pkg/errors"
	"github.com/arthur-debert/dotbash/pkg/logging"
	"github.com/arthur-debert/dotbash/pkg/paths"
)

const header = `# dotbash manifest override.
# Values here replace the built-in lists; remove a section to keep defaults.

`

// Options defines the options for the GenConfig command.
type Options struct {
	// Root is the dotfiles root the override file is written into.
	Root string
	// Force overwrites an existing override file.
	Force bool
}

// Run writes a starter dotbash.toml seeded with the built-in manifest, so
// users can trim or extend the managed file set.
func Run(opts Options) (string, error) {
	log := logging.GetLogger("commands.genconfig")

	settings, err := config.DefaultSettings()
	if err != nil {
		return "", err
	}

	path := filepath.Join(opts.Root, paths.OverrideFileTOML)
	if _, err := os.Stat(path); err == nil && !opts.Force {
		return "", errors.Newf(errors.ErrInvalidInput, "%s already exists (use --force to overwrite)", path)
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to marshal default settings")
	}

	if err := os.WriteFile(path, append([]byte(header), data...), 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to write %s", path)
	}

	log.Info().Str("path", path).Msg("wrote manifest override")
	return path, nil
}
