package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"doc-pager/cmd/internal/logger"
	"doc-pager/repositories"
)

func newSeedCmd(get func() *app) *cobra.Command {
	var (
		count int
		drop  bool
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert generated addresses",
		Example: `  # Fresh collection with the default 50 documents
  pager seed --drop

  # A bigger data set for skip vs cursor comparisons
  pager seed --count 10000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 0 {
				return fmt.Errorf("--count must not be negative, got %d", count)
			}
			a := get()
			ctx := cmd.Context()
			if drop {
				if err := a.addresses.Drop(ctx); err != nil {
					return fmt.Errorf("drop addresses: %w", err)
				}
				if err := a.ensureIndexes(ctx); err != nil {
					return fmt.Errorf("recreate indexes: %w", err)
				}
			}
			n, err := a.addresses.InsertMany(ctx, repositories.GenerateAddresses(count, time.Now()))
			if err != nil {
				return fmt.Errorf("insert addresses: %w", err)
			}
			logger.InfoWithFields("seeded addresses", logger.Fields{"inserted": n, "dropped": drop})
			cmd.Printf("inserted %d addresses\n", n)
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 50, "number of addresses to generate")
	cmd.Flags().BoolVar(&drop, "drop", false, "drop the collection first")
	return cmd
}

func newIndexesCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create the pagination indexes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := get().ensureIndexes(cmd.Context()); err != nil {
				return fmt.Errorf("create indexes: %w", err)
			}
			cmd.Println("indexes ready")
			return nil
		},
	}
}
