package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shini4i/tmpguard/internal/app"
	"github.com/shini4i/tmpguard/internal/models"
	"github.com/shini4i/tmpguard/internal/tempres"
	"github.com/spf13/cobra"
)

// Options describes the collaborators and defaults required to build the CLI.
type Options struct {
	Version       string
	SystemTempDir string
	Defaults      models.FileConfig
	RunApp        func(context.Context, app.Config) error
	CleanApp      func(context.Context, app.Config) error
	InitLogging   func(debug bool)
}

// Execute builds and runs the Cobra command tree using the supplied options.
func Execute(ctx context.Context, opts Options, args []string) error {
	root := newRootCommand(opts)

	if args != nil {
		root.SetArgs(args)
	}

	return root.ExecuteContext(ctx)
}

// newRootCommand builds the root Cobra command with global flags and hooks.
func newRootCommand(opts Options) *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:          "tmpguard",
		Short:        "Run commands inside temporary files and directories that are always cleaned up",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.InitLogging != nil {
				opts.InitLogging(debug)
			}
		},
	}

	root.Version = opts.Version
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug mode")

	debugEnabled := func() bool { return debug }
	root.AddCommand(newRunCommand(opts, debugEnabled))
	root.AddCommand(newCleanCommand(opts, debugEnabled))

	return root
}

// newRunCommand constructs the run subcommand that executes a command inside
// a guarded resource.
func newRunCommand(opts Options, debug func() bool) *cobra.Command {
	flags := runFlags{
		kind:   opts.Defaults.Kind,
		prefix: opts.Defaults.Prefix,
		scope:  opts.Defaults.Scope,
	}

	cmd := &cobra.Command{
		Use:   "run [flags] -- <command> [args...]",
		Short: "Run a command with a temporary resource exposed as TMPGUARD_PATH",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.RunApp == nil {
				return errors.New("no run handler provided")
			}

			cfg, err := app.NewConfig(tempres.Scope(flags.scope),
				app.WithKind(tempres.Kind(flags.kind)),
				app.WithPrefix(flags.prefix),
				app.WithSuffix(flags.suffix),
				app.WithOwner(flags.owner),
				app.WithChecksum(flags.checksum),
				app.WithProjectDir(flags.projectDir),
				app.WithSystemTempDir(opts.SystemTempDir),
				app.WithCommand(args),
				app.WithDebug(debug()),
				app.WithVersion(opts.Version),
			)
			if err != nil {
				return err
			}

			return opts.RunApp(cmd.Context(), cfg)
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVarP(&flags.kind, "kind", "k", flags.kind, "Resource kind (file or directory)")
	cmd.Flags().StringVarP(&flags.prefix, "prefix", "p", flags.prefix, "Resource name prefix")
	cmd.Flags().StringVar(&flags.suffix, "suffix", "", "Resource name suffix, e.g. .json")
	cmd.Flags().StringVarP(&flags.scope, "scope", "s", flags.scope, "Where to create the resource (repository or system)")
	cmd.Flags().StringVar(&flags.owner, "owner", "", "Task label attached to the resource")
	cmd.Flags().BoolVar(&flags.checksum, "checksum", false, "Log the SHA-256 of a file resource after the command")
	cmd.Flags().StringVar(&flags.projectDir, "project-dir", "", "Directory the project root is detected from")

	return cmd
}

// newCleanCommand constructs the clean subcommand that sweeps stale leftovers.
func newCleanCommand(opts Options, debug func() bool) *cobra.Command {
	flags := cleanFlags{
		prefix: opts.Defaults.Prefix,
		scope:  opts.Defaults.Scope,
	}
	if d, err := opts.Defaults.StaleAfterDuration(); err == nil {
		flags.olderThan = d
	}

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove leftovers of interrupted runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.CleanApp == nil {
				return errors.New("no clean handler provided")
			}
			if flags.olderThan < 0 {
				return fmt.Errorf("--older-than must not be negative, got %s", flags.olderThan)
			}

			options := []app.ConfigOption{
				app.WithPrefix(flags.prefix),
				app.WithProjectDir(flags.projectDir),
				app.WithSystemTempDir(opts.SystemTempDir),
				app.WithDebug(debug()),
				app.WithVersion(opts.Version),
			}
			// An explicit --older-than 0s sweeps everything, an unset one keeps the default.
			if cmd.Flags().Changed("older-than") || flags.olderThan > 0 {
				options = append(options, app.WithStaleAfter(flags.olderThan))
			}

			cfg, err := app.NewConfig(tempres.Scope(flags.scope), options...)
			if err != nil {
				return err
			}

			return opts.CleanApp(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&flags.prefix, "prefix", "p", flags.prefix, "Prefix of the leftovers to remove")
	cmd.Flags().StringVarP(&flags.scope, "scope", "s", flags.scope, "Where to look for leftovers (repository or system)")
	cmd.Flags().DurationVar(&flags.olderThan, "older-than", flags.olderThan, "Only remove leftovers older than this (default 24h)")
	cmd.Flags().StringVar(&flags.projectDir, "project-dir", "", "Directory the project root is detected from")

	return cmd
}

type runFlags struct {
	kind       string
	prefix     string
	suffix     string
	scope      string
	owner      string
	checksum   bool
	projectDir string
}

type cleanFlags struct {
	prefix     string
	scope      string
	olderThan  time.Duration
	projectDir string
}
