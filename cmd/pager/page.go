package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"doc-pager/cmd/api/dto"
	"doc-pager/pagination"
	"doc-pager/repositories"
)

// listFlags are the filter and sort flags shared by page and walk.
type listFlags struct {
	limit  int
	sort   string
	city   string
	status string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.limit, "limit", 0, "page size (0 = configured default)")
	cmd.Flags().StringVar(&f.sort, "sort", "-createdAt", "sort fields, e.g. -createdAt,total")
	cmd.Flags().StringVar(&f.city, "city", "", "only this city")
	cmd.Flags().StringVar(&f.status, "status", "", "only this status")
}

func (f *listFlags) query() (pagination.Filter, pagination.Sort, error) {
	sort, err := pagination.ParseSort(f.sort)
	if err != nil {
		return nil, nil, err
	}
	return repositories.AddressFilter{City: f.city, Status: f.status}.ToFilter(), sort, nil
}

func newPageCmd(get func() *app) *cobra.Command {
	var (
		flags  listFlags
		page   int
		output string
	)
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Print one offset page of addresses",
		Example: `  pager page --page 2 --limit 5
  pager page --city "New York" --sort=-total -o yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, sort, err := flags.query()
			if err != nil {
				return err
			}
			a := get()
			p, err := pagination.PaginateByOffset(cmd.Context(), a.engine, a.addresses.Source(), pagination.Request{
				Page:   page,
				Limit:  flags.limit,
				Filter: filter,
				Sort:   sort,
			})
			if err != nil {
				return err
			}
			out := dto.NewPagination(p, dto.NewAddressDTO)
			return render(cmd, output, struct {
				Data       []dto.AddressDTO    `json:"data" yaml:"data"`
				Pagination pagination.Metadata `json:"pagination" yaml:"pagination"`
			}{Data: out.Data, Pagination: out.Pagination})
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&page, "page", 1, "1-based page number")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	return cmd
}

func render(cmd *cobra.Command, format string, v any) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}
