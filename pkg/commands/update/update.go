package update

import (
	"github.com/arthur-debert/dotbash/pkg/checksum"
	"github.com/arthur-debert/dotbash/pkg/collab"
	"github.com/arthur-debert/dotbash/pkg/logging"
	"github.com/arthur-debert/dotbash/pkg/manifest"
	"github.com/arthur-debert/dotbash/pkg/paths"
	"github.com/arthur-debert/dotbash/pkg/ui"
)

// Options defines the options for the Update command.
type Options struct {
	Manifest *manifest.Manifest
	Paths    paths.Paths
	Collab   collab.Collaborator
	Diag     ui.Diag
	// Comparator decides whether a destination needs rewriting.
	Comparator checksum.Comparator
	// Force treats every present source as differing, bypassing the
	// checksum gate.
	Force bool
}

// Result reports what one update run did.
type Result struct {
	Updated        []string
	Skipped        []string
	MissingSources []string
	Failed         []string
}

// Run re-applies the manifest content-aware: a destination is rewritten only
// when its content differs from the source, so re-running update after no
// source edits performs zero copies. That distinction from install is the
// command's entire reason to exist.
//
// Missing sources are warned about and skipped, same policy as install.
func Run(opts Options) (*Result, error) {
	log := logging.GetLogger("commands.update")
	log.Debug().Str("command", "Update").Bool("force", opts.Force).Msg("Executing command")

	result := &Result{}
	home := opts.Paths.HomeDir()
	configDir := opts.Paths.ConfigDir()

	for _, entry := range opts.Manifest.Entries() {
		src := manifest.ProbeFile(opts.Paths.SourcePath(entry.Name))
		if !src.Present {
			opts.Diag.Warn("source file missing, skipping: %s", src.Path)
			result.MissingSources = append(result.MissingSources, entry.Name)
			continue
		}

		dst := entry.Resolve(home, configDir)
		if !opts.Force && !opts.Comparator.Differs(src.Path, dst) {
			result.Skipped = append(result.Skipped, entry.Name)
			continue
		}

		if err := opts.Collab.CopyWithBackup(src.Path, dst); err != nil {
			opts.Diag.Fail("failed to update %s: %v", entry.Name, err)
			result.Failed = append(result.Failed, entry.Name)
			continue
		}

		opts.Diag.Info("updated %s -> %s", entry.Name, dst)
		result.Updated = append(result.Updated, entry.Name)
	}

	log.Info().
		Int("updated", len(result.Updated)).
		Int("skipped", len(result.Skipped)).
		Msg("Command finished")

	return result, nil
}
