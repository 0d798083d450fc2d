package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wizzomafizzo/lintrc/internal/cli"
	"github.com/wizzomafizzo/lintrc/internal/logging"
	"github.com/wizzomafizzo/lintrc/internal/resolver"
)

// createValidateCommand creates the validate command.
func createValidateCommand(opts rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: "Load the configuration, validate it and resolve its extends chain. " +
			"With --watch the file is re-validated on every change until interrupted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := createAppFromCommand(cmd, opts)
			if err != nil {
				return err
			}

			watch, _ := cmd.Flags().GetBool("watch")
			if !watch {
				summary, err := app.ValidateConfig(cmd.Context())
				if err != nil {
					return fmt.Errorf("validation error: %w", err)
				}
				_, _ = fmt.Fprint(cmd.OutOrStdout(), summary)
				return nil
			}

			p := newPalette(cmd)
			out := cmd.OutOrStdout()
			report := func(r *resolver.Resolver, err error) {
				if err != nil {
					logging.Get(cmd.Context()).Warn().Err(err).Msg("config reload failed")
					_, _ = fmt.Fprintf(out, "%s %v\n", p.fail.Sprint("invalid:"), err)
					return
				}
				_, _ = fmt.Fprint(out, p.ok.Sprint(cli.Summary(r)))
			}
			return app.Watch(cmd.Context(), report) //nolint:wrapcheck // watch errors name the file
		},
	}
	cmd.Flags().BoolP("watch", "w", false, "Re-validate whenever the config file changes")
	return cmd
}

// createRulesCommand creates the rules command.
func createRulesCommand(opts rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rules <path>...",
		Short: "Show the effective rules for files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := createAppFromCommand(cmd, opts)
			if err != nil {
				return err
			}

			results, err := app.Query(cmd.Context(), args)
			if err != nil {
				return err //nolint:wrapcheck // errors name the config or path
			}

			p := newPalette(cmd)
			for _, result := range results {
				if err := writeRules(cmd.OutOrStdout(), p, result); err != nil {
					return fmt.Errorf("failed to print rules: %w", err)
				}
			}
			return nil
		},
	}
}

// createIgnoredCommand creates the ignored command.
func createIgnoredCommand(opts rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ignored <path>...",
		Short: "Report whether files are excluded from linting",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := createAppFromCommand(cmd, opts)
			if err != nil {
				return err
			}

			results, err := app.Query(cmd.Context(), args)
			if err != nil {
				return err //nolint:wrapcheck // errors name the config or path
			}

			p := newPalette(cmd)
			for _, result := range results {
				status := p.ok.Sprint("linted ")
				if result.Ignored {
					status = p.off.Sprint("ignored")
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", status, result.Path)
			}
			return nil
		},
	}
}

// createPrintConfigCommand creates the print-config command.
func createPrintConfigCommand(opts rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "print-config <path>",
		Short: "Print the full configuration that applies to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := createAppFromCommand(cmd, opts)
			if err != nil {
				return err
			}

			out, err := app.PrintConfig(cmd.Context(), args[0])
			if err != nil {
				return err //nolint:wrapcheck // errors name the config or path
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

// createInitCommand creates the init command.
func createInitCommand(opts rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := createAppFromCommand(cmd, opts)
			if err != nil {
				return err
			}

			force, _ := cmd.Flags().GetBool("force")
			path, err := app.Initialize(force)
			if errors.Is(err, cli.ErrConfigExists) {
				return err //nolint:wrapcheck // message already suggests --force
			}
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
	return cmd
}
