// Command migrate applies the embedded schema migrations to the MoodAI database.
package main

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JaimeStill/moodai/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

const envDSN = "MOODAI_DB_DSN"

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dsn, configPath string

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply MoodAI schema migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dsn, "dsn", "", "postgres:// URL (default $"+envDSN+" or the config file)")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", config.BaseConfigFile, "Base config file")

	// with opens a migrator for the duration of fn.
	with := func(fn func(cmd *cobra.Command, m *migrate.Migrate, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			url, err := resolveDSN(dsn, configPath)
			if err != nil {
				return err
			}
			m, err := open(url)
			if err != nil {
				return err
			}
			defer m.Close()
			return fn(cmd, m, args)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			Args:  cobra.NoArgs,
			RunE: with(func(cmd *cobra.Command, m *migrate.Migrate, _ []string) error {
				return report(cmd, "up to date", ignoreNoChange(m.Up()))
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revert every applied migration",
			Args:  cobra.NoArgs,
			RunE: with(func(cmd *cobra.Command, m *migrate.Migrate, _ []string) error {
				return report(cmd, "reverted", ignoreNoChange(m.Down()))
			}),
		},
		&cobra.Command{
			Use:   "steps N",
			Short: "Move N migrations (negative N reverts)",
			Args:  cobra.ExactArgs(1),
			RunE: with(func(cmd *cobra.Command, m *migrate.Migrate, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil || n == 0 {
					return fmt.Errorf("steps: %q is not a non-zero integer", args[0])
				}
				return report(cmd, fmt.Sprintf("moved %d step(s)", n), ignoreNoChange(m.Steps(n)))
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied version",
			Args:  cobra.NoArgs,
			RunE: with(func(cmd *cobra.Command, m *migrate.Migrate, _ []string) error {
				v, dirty, err := m.Version()
				if errors.Is(err, migrate.ErrNilVersion) {
					fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", v, dirty)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "force V",
			Short: "Mark version V as applied without running it",
			Args:  cobra.ExactArgs(1),
			RunE: with(func(cmd *cobra.Command, m *migrate.Migrate, args []string) error {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("force: %q is not an integer", args[0])
				}
				return report(cmd, fmt.Sprintf("forced to version %d", v), m.Force(v))
			}),
		},
	)

	return root
}

// resolveDSN prefers the flag, then MOODAI_DB_DSN, then the database section
// of the config file.
func resolveDSN(flagValue, configPath string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v := os.Getenv(envDSN); v != "" {
		return v, nil
	}
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return "", fmt.Errorf("load config: %w", err)
	}
	return cfg.Database.URL(), nil
}

func open(url string) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migration source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, url)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return m, nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

func report(cmd *cobra.Command, done string, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), done)
	return nil
}
