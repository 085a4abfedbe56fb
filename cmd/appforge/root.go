package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/appforge/appforge/internal/version"
	"github.com/appforge/appforge/pkg/config"
	"github.com/appforge/appforge/pkg/logging"
	"github.com/appforge/appforge/pkg/scaffold"
	"github.com/appforge/appforge/pkg/ui"
)

var (
	verbosity int

	flagDisplayName string
	flagDescription string
	flagDatabase    bool
	flagGit         bool
	flagDocker      bool
	flagAuth        bool
	flagSoftDelete  bool
	flagVPS         bool

	rootCmd = &cobra.Command{
		Use:   "appforge [name]",
		Short: "Generate a ready-to-run Go backend service",
		Long: `appforge generates a Go backend service skeleton with optional
authentication, database session handling, scheduled jobs, and
middlewares, then provisions it: dependency install, database creation
and migration, and git initialization with a first commit.

Run without arguments for interactive configuration, or pass the app
name and flags for scripted use.`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerate,
	}
)

// Execute runs the root command. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

// isInteractive gates prompt mode; a func var so tests can force a
// non-TTY environment.
var isInteractive = ui.IsInteractive

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.Flags().StringVar(&flagDisplayName, "display-name", "", "Name shown across the generated UI (defaults to the app name)")
	rootCmd.Flags().StringVar(&flagDescription, "description", "", "App description")
	rootCmd.Flags().BoolVar(&flagDatabase, "database", true, "Create and migrate the database")
	rootCmd.Flags().BoolVar(&flagGit, "git", true, "Initialize a git repository with a first commit")
	rootCmd.Flags().BoolVar(&flagDocker, "docker", true, "Include Docker integration")
	rootCmd.Flags().BoolVar(&flagAuth, "auth", true, "Include the authentication system")
	rootCmd.Flags().BoolVar(&flagSoftDelete, "soft-delete", true, "Enable soft delete for models")
	rootCmd.Flags().BoolVar(&flagVPS, "vps", true, "Include the VPS deployment configuration")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("appforge version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}

func runGenerate(cmd *cobra.Command, args []string) error {
	tool, err := config.LoadToolConfig()
	if err != nil {
		ui.PrintError(err)
		return err
	}

	interactive := len(args) == 0 && isInteractive()

	var cfg config.AppConfig
	if interactive {
		ui.PrintHeader(version.Version)
		cfg, err = ui.PromptConfig()
	} else {
		cfg, err = flagConfig(args)
	}
	if err != nil {
		ui.PrintError(err)
		return err
	}

	progress := ui.NewProgress(!interactive)
	s := scaffold.New(tool)
	s.Observer = progress

	dir, err := s.Run(cfg)
	if err != nil {
		progress.Fail("Failed")
		ui.PrintError(err)
		return err
	}

	ui.PrintSuccess(dir, cfg)
	ui.PrintFooter()
	return nil
}

// flagConfig builds the configuration from the positional name and the
// feature flags, for non-TTY and scripted invocations.
func flagConfig(args []string) (config.AppConfig, error) {
	if len(args) == 0 {
		return config.AppConfig{}, fmt.Errorf("an app name is required when running non-interactively")
	}

	displayName := flagDisplayName
	if displayName == "" {
		displayName = args[0]
	}

	return config.New(config.Options{
		Name:                args[0],
		DisplayName:         displayName,
		Description:         flagDescription,
		SetupDatabase:       flagDatabase,
		InitializeGit:       flagGit,
		EnableDocker:        flagDocker,
		EnableAuth:          flagAuth,
		EnableSoftDelete:    flagSoftDelete,
		EnableVPSDeployment: flagVPS,
	})
}
