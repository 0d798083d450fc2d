package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/wizzomafizzo/lintrc/internal/cli"
	"github.com/wizzomafizzo/lintrc/internal/extensions"
	"github.com/wizzomafizzo/lintrc/internal/logging"
)

// rootOptions carries the dependencies tests replace.
type rootOptions struct {
	fs        afero.Fs
	logWriter io.Writer
	registry  *extensions.Registry
	workDir   string
}

// createNewRootCommand creates the main root command that shows help by default.
func createNewRootCommand(opts rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lintrc",
		Short:         "Resolve lint configuration for source files",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initLogging(cmd, opts)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Path to config file (default: discovered .lintrc.* file)")
	flags.Bool("debug", false, "Enable debug logging (same as --log-level debug)")
	flags.String("log-level", "warn", "Log level: trace, debug, info, warn or error")
	flags.String("log-file", "", "Log file path (default: lintrc.log in the XDG data directory)")
	flags.Bool("log-stderr", false, "Write logs to stderr instead of the log file")
	flags.Bool("strict-extends", false, "Fail when an extends entry cannot be resolved")
	flags.Bool("no-color", false, "Disable coloured output")

	rootCmd.AddCommand(
		createValidateCommand(opts),
		createRulesCommand(opts),
		createIgnoredCommand(opts),
		createPrintConfigCommand(opts),
		createInitCommand(opts),
	)

	return rootCmd
}

// initLogging attaches a logger to the command context.
func initLogging(cmd *cobra.Command, opts rootOptions) error {
	debug, _ := cmd.Flags().GetBool("debug")
	levelName, _ := cmd.Flags().GetString("log-level")
	logFile, _ := cmd.Flags().GetString("log-file")
	logStderr, _ := cmd.Flags().GetBool("log-stderr")

	level := logging.ParseLevel(levelName)
	if debug {
		level = logging.DebugLevel
	}

	writer := opts.logWriter
	if logStderr {
		writer = cmd.ErrOrStderr()
	}

	ctx, err := logging.New(cmd.Context(), opts.fs, logging.Config{
		Writer:  writer,
		File:    logFile,
		Command: cmd.Name(),
		Level:   level,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	cmd.SetContext(ctx)
	return nil
}

// createAppFromCommand builds a cli.App from the persistent flags.
func createAppFromCommand(cmd *cobra.Command, opts rootOptions) (*cli.App, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	strict, err := cmd.Flags().GetBool("strict-extends")
	if err != nil {
		return nil, fmt.Errorf("failed to get strict-extends flag: %w", err)
	}

	workDir := opts.workDir
	if workDir == "" {
		if workDir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	appOpts := []cli.AppOption{cli.WithWorkDir(workDir), cli.WithStrictExtensions(strict)}
	if opts.registry != nil {
		appOpts = append(appOpts, cli.WithRegistry(opts.registry))
	}
	return cli.NewApp(opts.fs, configPath, appOpts...), nil
}
