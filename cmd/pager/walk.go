package main

import (
	"github.com/spf13/cobra"

	"doc-pager/cmd/internal/logger"
	"doc-pager/pagination"
)

func newWalkCmd(get func() *app) *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "walk",
		Short: "Follow cursors to the end and print each window size",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, sort, err := flags.query()
			if err != nil {
				return err
			}
			a := get()
			var (
				cursor string
				total  int
			)
			for window := 1; ; window++ {
				p, err := pagination.PaginateByCursor(cmd.Context(), a.engine, a.addresses.Source(), filter, sort, pagination.CursorRequest{
					LastKey: cursor,
					Limit:   flags.limit,
				})
				if err != nil {
					return err
				}
				total += len(p.Items)
				cmd.Printf("window %d: %d items\n", window, len(p.Items))
				if p.NextCursor == "" {
					break
				}
				cursor = p.NextCursor
			}
			logger.DebugWithFields("walk finished", logger.Fields{"items": total, "sort": sort.String()})
			cmd.Printf("total: %d\n", total)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
