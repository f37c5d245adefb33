package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"doc-pager/cmd/api/clients/pagerclient"
	"doc-pager/cmd/api/trace"
)

func newRemoteWalkCmd() *cobra.Command {
	var (
		baseURL string
		flags   listFlags
	)
	cmd := &cobra.Command{
		Use:         "remote-walk",
		Short:       "Follow the API's cursor endpoint to the end",
		Annotations: map[string]string{annotationNoMongo: "true"},
		Example:     `  pager remote-walk --base-url http://localhost:3000 --limit 20 --city "New York"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := pagerclient.New(baseURL)
			ctx := trace.WithRequestAndSpan(cmd.Context(), trace.GenerateID(), 0)
			q := pagerclient.AddressQuery{Limit: flags.limit, Sort: flags.sort, City: flags.city, Status: flags.status}

			var (
				cursor string
				total  int
			)
			for window := 1; ; window++ {
				page, err := client.ListAddressesAfter(ctx, cursor, q)
				if err != nil {
					return fmt.Errorf("window %d: %w", window, err)
				}
				total += len(page.Data)
				cmd.Printf("window %d: %d items\n", window, len(page.Data))
				if !page.HasNext {
					break
				}
				cursor = page.NextCursor
			}
			cmd.Printf("total: %d (request %s)\n", total, trace.RequestIDFromContext(ctx))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:3000", "doc-pager API base URL")
	return cmd
}
