package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/dotbash/internal/version"
	"github.com/arthur-debert/dotbash/pkg/checksum"
	"github.com/arthur-debert/dotbash/pkg/collab"
	"github.com/arthur-debert/dotbash/pkg/commands/genconfig"
	"github.com/arthur-debert/dotbash/pkg/commands/install"
	"github.com/arthur-debert/dotbash/pkg/commands/uninstall"
	"github.com/arthur-debert/dotbash/pkg/commands/update"
	"github.com/arthur-debert/dotbash/pkg/config"
	"github.com/arthur-debert/dotbash/pkg/logging"
	"github.com/arthur-debert/dotbash/pkg/manifest"
	"github.com/arthur-debert/dotbash/pkg/paths"
	"github.com/arthur-debert/dotbash/pkg/preflight"
	"github.com/arthur-debert/dotbash/pkg/ui"
)

// rootOptions holds the persistent flag state shared by all subcommands
type rootOptions struct {
	verbosity int
	quiet     bool
	force     bool
	skipTools bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "dotbash",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.String(),
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity, opts.quiet)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand defaults to install
			return runInstall(opts)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Registering the version flag ourselves gives it the -v shorthand;
	// cobra then skips adding its own.
	rootCmd.Flags().BoolP("version", "v", false, MsgFlagVersion)
	rootCmd.SetVersionTemplate(MsgVersionTemplate)

	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, MsgFlagQuiet)
	rootCmd.PersistentFlags().BoolVarP(&opts.force, "force", "f", false, MsgFlagForce)
	rootCmd.PersistentFlags().BoolVar(&opts.skipTools, "skip-tools", false, MsgFlagSkipTools)
	rootCmd.PersistentFlags().CountVar(&opts.verbosity, "verbose", MsgFlagVerbose)

	rootCmd.AddCommand(newInstallCmd(opts))
	rootCmd.AddCommand(newUpdateCmd(opts))
	rootCmd.AddCommand(newUninstallCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd(opts))
	rootCmd.AddCommand(newDocsCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func newInstallCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: MsgInstallShort,
		Long:  MsgInstallLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(opts)
		},
	}
}

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: MsgUpdateShort,
		Long:  MsgUpdateLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(opts)
		},
	}
}

func newUninstallCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: MsgUninstallShort,
		Long:  MsgUninstallLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUninstall(opts)
		},
	}
}

func newGenConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "genconfig",
		Short: MsgGenConfigShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			diag := ui.NewConsole(opts.quiet)
			p, err := paths.New("")
			if err != nil {
				return err
			}
			path, err := genconfig.Run(genconfig.Options{Root: p.DotfilesRoot(), Force: opts.force})
			if err != nil {
				return err
			}
			diag.Pass(MsgGenConfigDone, path)
			return nil
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}
}

// runContext carries everything a mutating command needs after the
// preflight -> load-collaborator pipeline succeeded
type runContext struct {
	paths    paths.Paths
	manifest *manifest.Manifest
	collab   collab.Collaborator
	diag     ui.Diag
	pf       preflight.Result
}

// setupRun is the shared preflight -> load-collaborator -> load-manifest
// pipeline. Every fatal condition aborts here, before any mutation.
func setupRun(opts *rootOptions) (*runContext, error) {
	diag := ui.NewConsole(opts.quiet)

	p, err := paths.New("")
	if err != nil {
		return nil, err
	}
	if p.UsedFallback() {
		diag.Warn(MsgFallbackRoot, p.DotfilesRoot())
	}

	pf := preflight.Run(p)
	for _, w := range pf.Warnings {
		diag.Warn("%s: %s (%s)", w.Check, w.Detail, w.Hint)
	}
	if pf.Failed() {
		for _, prob := range pf.Problems {
			diag.Fail("%s: %s (hint: %s)", prob.Check, prob.Detail, prob.Hint)
		}
		return nil, fmt.Errorf(MsgPreflightFailed, len(pf.Problems))
	}

	c, err := collab.Load(p.CollabDir(), diag)
	if err != nil {
		return nil, err
	}

	m, err := config.Load(p)
	if err != nil {
		return nil, err
	}

	return &runContext{paths: p, manifest: m, collab: c, diag: diag, pf: pf}, nil
}

func runInstall(opts *rootOptions) error {
	rc, err := setupRun(opts)
	if err != nil {
		return err
	}

	result, err := install.Run(install.Options{
		Manifest:  rc.manifest,
		Paths:     rc.paths,
		Collab:    rc.collab,
		Diag:      rc.diag,
		SkipTools: opts.skipTools,
	})
	if err != nil {
		return err
	}

	if !opts.quiet {
		fmt.Println(ui.RenderSummary(MsgInstallSummary, []ui.SummaryRow{
			{Label: "installed", Count: len(result.Installed)},
			{Label: "missing sources", Count: len(result.MissingSources)},
			{Label: "failed", Count: len(result.Failed)},
			{Label: "missing tools", Count: len(result.MissingTools)},
		}))
	}
	rc.diag.Pass(MsgInstallDone, len(result.Installed))
	return nil
}

func runUpdate(opts *rootOptions) error {
	rc, err := setupRun(opts)
	if err != nil {
		return err
	}

	result, err := update.Run(update.Options{
		Manifest:   rc.manifest,
		Paths:      rc.paths,
		Collab:     rc.collab,
		Diag:       rc.diag,
		Comparator: checksum.New(rc.pf.DigestCapable),
		Force:      opts.force,
	})
	if err != nil {
		return err
	}

	if !opts.quiet {
		fmt.Println(ui.RenderSummary(MsgUpdateSummary, []ui.SummaryRow{
			{Label: "updated", Count: len(result.Updated)},
			{Label: "unchanged", Count: len(result.Skipped)},
			{Label: "missing sources", Count: len(result.MissingSources)},
			{Label: "failed", Count: len(result.Failed)},
		}))
	}

	if len(result.Updated) == 0 {
		rc.diag.Info(MsgNothingChanged)
	} else {
		rc.diag.Pass(MsgUpdateDone, len(result.Updated))
	}
	return nil
}

func runUninstall(opts *rootOptions) error {
	rc, err := setupRun(opts)
	if err != nil {
		return err
	}

	// Restoration misses are reported per entry; the command itself always
	// succeeds.
	result, err := uninstall.Run(uninstall.Options{
		Manifest: rc.manifest,
		Paths:    rc.paths,
		Collab:   rc.collab,
		Diag:     rc.diag,
	})
	if err != nil {
		return err
	}

	if !opts.quiet {
		fmt.Println(ui.RenderSummary(MsgUninstallSumry, []ui.SummaryRow{
			{Label: "restored", Count: len(result.Restored)},
			{Label: "no backup", Count: len(result.NoBackup)},
			{Label: "failed", Count: len(result.Failed)},
		}))
	}

	if len(result.Restored) == 0 {
		rc.diag.Info(MsgNoBackupsFound)
	} else {
		rc.diag.Pass(MsgUninstallDone, len(result.Restored))
	}
	return nil
}
