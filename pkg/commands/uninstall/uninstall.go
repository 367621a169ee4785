package uninstall

import (
	"github.com/arthur-debert/dotbash/pkg/collab"
	"github.com/arthur-debert/dotbash/pkg/errors"
	"github.com/arthur-debert/dotbash/pkg/logging"
	"github.com/arthur-debert/dotbash/pkg/manifest"
	"github.com/arthur-debert/dotbash/pkg/paths"
	"github.com/arthur-debert/dotbash/pkg/ui"
)

// Options defines the options for the Uninstall command.
type Options struct {
	Manifest *manifest.Manifest
	Paths    paths.Paths
	Collab   collab.Collaborator
	Diag     ui.Diag
}

// Result reports what one uninstall run did.
type Result struct {
	Restored []string
	NoBackup []string
	Failed   []string
}

// Run is the mirror of install: every existing destination is replaced by
// its most recent backup. Nothing is ever deleted outright; a destination
// with no backup stays in place and is only counted. The batch always
// completes — per-entry restore misses and failures never abort it.
func Run(opts Options) (*Result, error) {
	log := logging.GetLogger("commands.uninstall")
	log.Debug().Str("command", "Uninstall").Msg("Executing command")

	result := &Result{}
	home := opts.Paths.HomeDir()
	configDir := opts.Paths.ConfigDir()

	for _, entry := range opts.Manifest.Entries() {
		dst := manifest.ProbeFile(entry.Resolve(home, configDir))
		if !dst.Present {
			continue
		}

		backup, err := opts.Collab.RestoreFromBackup(dst.Path)
		switch {
		case err == nil:
			opts.Diag.Info("restored %s from %s", dst.Path, backup)
			result.Restored = append(result.Restored, entry.Name)
		case errors.IsCode(err, errors.ErrNoBackup):
			opts.Diag.Warn("no backup for %s, leaving it in place", dst.Path)
			result.NoBackup = append(result.NoBackup, entry.Name)
		default:
			opts.Diag.Fail("failed to restore %s: %v", dst.Path, err)
			result.Failed = append(result.Failed, entry.Name)
		}
	}

	log.Info().
		Int("restored", len(result.Restored)).
		Int("noBackup", len(result.NoBackup)).
		Msg("Command finished")

	return result, nil
}
