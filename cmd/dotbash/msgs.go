package main

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "A bash shell-environment manager"
	MsgRootLong        = "dotbash installs, updates and uninstalls a curated set of bash\nenvironment files (rc files, tmux/screen configs, prompt and alias\nhelpers) with backup-on-overwrite and checksum-based change detection."
	MsgInstallShort    = "Install all managed files (default command)"
	MsgInstallLong     = "Install copies every managed file into place, unconditionally\noverwriting destinations. Pre-existing destinations are preserved as\ntimestamped backups first."
	MsgUpdateShort     = "Re-apply managed files that changed"
	MsgUpdateLong      = "Update copies only the managed files whose content differs from the\ninstalled destination, so re-running it after no edits does nothing."
	MsgUninstallShort  = "Restore destinations from their most recent backups"
	MsgUninstallLong   = "Uninstall replaces each installed destination with its most recent\nbackup. Files without a backup are left untouched, never deleted."
	MsgGenConfigShort  = "Write a starter dotbash.toml manifest override"
	MsgDocsShort       = "Display documentation topics"
	MsgCompletionShort = "Generate shell completion script"
	MsgCompletionLong  = "Generate a completion script for your shell.\n\nBash:\n  $ source <(dotbash completion bash)\n\nZsh:\n  $ dotbash completion zsh > \"${fpath[1]}/_dotbash\"\n\nFish:\n  $ dotbash completion fish | source"

	// Flag descriptions
	MsgFlagVersion   = "Print version information and exit"
	MsgFlagQuiet     = "Only print warnings and errors"
	MsgFlagForce     = "Update files even when their content is unchanged"
	MsgFlagSkipTools = "Skip the advisory check for recommended external tools"
	MsgFlagVerbose   = "Increase log verbosity (repeatable)"

	// Status messages
	MsgFallbackRoot    = "no DOTBASH_ROOT set and not in a git checkout, using current directory: %s"
	MsgInstallDone     = "install complete: %d file(s) installed"
	MsgNothingChanged  = "0 files updated, everything up to date"
	MsgUpdateDone      = "%d file(s) updated"
	MsgNoBackupsFound  = "no backups found, nothing restored"
	MsgUninstallDone   = "%d file(s) restored from backup"
	MsgGenConfigDone   = "wrote %s"
	MsgInstallSummary  = "Install summary"
	MsgUpdateSummary   = "Update summary"
	MsgUninstallSumry  = "Uninstall summary"
	MsgPreflightFailed = "preflight failed with %d error(s), nothing was changed"

	// Version template
	MsgVersionTemplate = "dotbash version {{.Version}}\n"
)
