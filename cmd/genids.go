package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newGenIDsCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "gen-ids",
		Short: "Print random talent ids, one per line",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if n < 0 {
				return fmt.Errorf("count must not be negative: %d", n)
			}
			w := cmd.OutOrStdout()
			for range n {
				if _, err := fmt.Fprintln(w, uuid.NewString()); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "count", "n", 100, "number of ids")
	return cmd
}
