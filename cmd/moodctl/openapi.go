package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/moodai/internal/api"
	"github.com/JaimeStill/moodai/internal/config"
	"github.com/JaimeStill/moodai/internal/infrastructure"
	"github.com/JaimeStill/moodai/pkg/openapi"
)

func newOpenAPICmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Write the API's OpenAPI document without starting the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFrom(opts.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			// Systems are constructed but never started, so nothing connects.
			infra, err := infrastructure.New(cfg)
			if err != nil {
				return err
			}
			runtime, err := api.NewRuntime(cmd.Context(), cfg, infra)
			if err != nil {
				return err
			}

			spec, err := api.Spec(cfg, api.NewDomain(cfg, runtime), runtime)
			if err != nil {
				return err
			}
			if err := openapi.WriteJSON(spec, output); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d paths)\n", output, len(spec.Paths))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "openapi.json", "Destination file")
	return cmd
}
