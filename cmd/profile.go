package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/expertlens/internal/domain/aggregate"
	"github.com/okian/expertlens/internal/domain/model"
)

type profileOutput struct {
	Stats   aggregate.Stats `json:"stats"`
	Experts []model.Profile `json:"experts,omitempty"`
}

func newProfileCmd() *cobra.Command {
	var (
		path    string
		experts bool
	)
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Profile the talent ids in a file and print the statistics as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := setup(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read ids: %w", err)
			}

			svc := newService(cfg)
			if err := svc.Start(ctx); err != nil {
				return fmt.Errorf("start service: %w", err)
			}
			defer svc.Stop()

			profiles, stats, err := svc.Analyze(ctx, raw)
			if err != nil {
				return err
			}

			out := profileOutput{Stats: stats}
			if experts {
				out.Experts = profiles
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "file with one talent id per line")
	cmd.Flags().BoolVar(&experts, "experts", false, "include every generated profile")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
