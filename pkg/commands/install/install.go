package install

import (
	"os"

	"github.com/arthur-debert/dotbash/pkg/collab"
	"github.com/arthur-debert/dotbash/pkg/errors"
	"github.com/arthur-debert/dotbash/pkg/logging"
	"github.com/arthur-debert/dotbash/pkg/manifest"
	"github.com/arthur-debert/dotbash/pkg/paths"
	"github.com/arthur-debert/dotbash/pkg/ui"
)

// Options defines the options for the Install command.
type Options struct {
	// Manifest is the frozen set of managed files.
	Manifest *manifest.Manifest
	// Paths resolves payload and destination locations.
	Paths paths.Paths
	// Collab provides the copy-with-backup primitive.
	Collab collab.Collaborator
	// Diag receives user-facing diagnostics.
	Diag ui.Diag
	// SkipTools disables the advisory check for recommended external tools.
	SkipTools bool
}

// Result reports what one install run did.
type Result struct {
	Installed      []string
	MissingSources []string
	Failed         []string
	MissingTools   []string
}

// Run installs every manifest entry whose source exists, overwriting
// destinations unconditionally. A pre-existing destination is preserved as a
// backup by the collaborator before the overwrite.
//
// A missing source is a per-entry warning, never fatal: the remaining
// entries still install. Only directory-creation failure aborts the run.
func Run(opts Options) (*Result, error) {
	log := logging.GetLogger("commands.install")
	log.Debug().Str("command", "Install").Msg("Executing command")

	for _, dir := range opts.Manifest.RequiredDirs() {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create required directory %s", dir)
		}
	}

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
		if err := opts.Collab.CopyWithBackup(src.Path, dst); err != nil {
			opts.Diag.Fail("failed to install %s: %v", entry.Name, err)
			result.Failed = append(result.Failed, entry.Name)
			continue
		}

		opts.Diag.Info("installed %s -> %s", entry.Name, dst)
		result.Installed = append(result.Installed, entry.Name)
	}

	if !opts.SkipTools {
		for _, tool := range opts.Manifest.RecommendedTools() {
			if !opts.Collab.CmdExists(tool) {
				opts.Diag.Warn("recommended tool not found: %s", tool)
				result.MissingTools = append(result.MissingTools, tool)
			}
		}
	}

	log.Info().
		Int("installed", len(result.Installed)).
		Int("missingSources", len(result.MissingSources)).
		Int("failed", len(result.Failed)).
		Msg("Command finished")

	return result, nil
}
