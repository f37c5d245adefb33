package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"doc-pager/cmd/internal/logger"
	"doc-pager/models"
)

func newDeleteCmd(get func() *app) *cobra.Command {
	var city string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete every address in a city",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if city == "" {
				return fmt.Errorf("--city is required")
			}
			n, err := get().addresses.DeleteByCity(cmd.Context(), city)
			if err != nil {
				return fmt.Errorf("delete addresses: %w", err)
			}
			logger.InfoWithFields("deleted addresses", logger.Fields{"city": city, "deleted": n})
			cmd.Printf("deleted %d addresses\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&city, "city", "", "city to delete (case-insensitive)")
	return cmd
}

func newSetStatusCmd(get func() *app) *cobra.Command {
	var (
		userID int
		status string
	)
	cmd := &cobra.Command{
		Use:   "set-status",
		Short: "Set the status of all addresses of a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if status != models.AddressStatusActive && status != models.AddressStatusInactive {
				return fmt.Errorf("--status must be %q or %q, got %q", models.AddressStatusActive, models.AddressStatusInactive, status)
			}
			matched, modified, err := get().addresses.SetStatusForUser(cmd.Context(), userID, status)
			if err != nil {
				return fmt.Errorf("update addresses: %w", err)
			}
			cmd.Printf("matched %d, modified %d\n", matched, modified)
			return nil
		},
	}
	cmd.Flags().IntVar(&userID, "user-id", 0, "user id")
	cmd.Flags().StringVar(&status, "status", "", "active or inactive")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}
