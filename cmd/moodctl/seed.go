package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/moodai/internal/recommendations"
)

func newSeedCmd(opts *options) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert recommendations from a YAML seed file",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open seed: %w", err)
			}
			defer f.Close()

			cmds, err := recommendations.LoadSeed(f)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			s, err := openSession(ctx, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			n, err := s.domain.Recommendations.Seed(ctx, cmds)
			if err != nil {
				return err
			}

			s.logger().Info("seed complete", "file", file, "written", n)
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d recommendations from %s\n", n, file)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "recommendations.yaml", "Seed file")
	return cmd
}
