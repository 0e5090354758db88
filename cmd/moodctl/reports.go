package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newReportsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Weekly report operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Send the weekly report to every user once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			s, err := openSession(ctx, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.domain.Reports.RunAll(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "users: %d  sent: %d  failed: %d\n", res.Users, res.Sent, res.Failed)
			return err
		},
	})

	return cmd
}
