package dto

import "doc-pager/pagination"

// Pagination is the offset-mode envelope: one page of Data plus the navigation block.
//
// Example: Pagination[AddressDTO]
//
// (Swagger generators may not fully support generics; handlers use the concrete types below.)
type Pagination[T any] struct {
	Data       []T                 `json:"data"`
	Pagination pagination.Metadata `json:"pagination"`
}

// CursorPagination is the cursor-mode envelope. NextCursor is empty on the last window.
type CursorPagination[T any] struct {
	Data       []T    `json:"data"`
	NextCursor string `json:"next_cursor,omitempty"`
	HasNext    bool   `json:"has_next"`
	HasPrev    bool   `json:"has_prev"`
	Limit      int    `json:"limit"`
}

// PaginationAddressDTO is a concrete swagger-friendly type for paginated addresses
// swagger:model PaginationAddressDTO
type PaginationAddressDTO struct {
	Data       []AddressDTO        `json:"data"`
	Pagination pagination.Metadata `json:"pagination"`
}

// CursorAddressDTO is a concrete swagger-friendly type for cursor-paginated addresses
// swagger:model CursorAddressDTO
type CursorAddressDTO struct {
	Data       []AddressDTO `json:"data"`
	NextCursor string       `json:"next_cursor,omitempty"`
	HasNext    bool         `json:"has_next"`
	HasPrev    bool         `json:"has_prev"`
	Limit      int          `json:"limit"`
}

// PaginationUserDTO is a concrete swagger-friendly type for paginated users
// swagger:model PaginationUserDTO
type PaginationUserDTO struct {
	Data       []UserDTO           `json:"data"`
	Pagination pagination.Metadata `json:"pagination"`
}

// NewPagination maps an engine page through fn.
func NewPagination[T, D any](p pagination.Page[T], fn func(T) D) Pagination[D] {
	out := make([]D, 0, len(p.Items))
	for _, it := range p.Items {
		out = append(out, fn(it))
	}
	return Pagination[D]{Data: out, Pagination: p.Metadata}
}

// NewCursorPagination maps a cursor-mode page through fn.
func NewCursorPagination[T, D any](p pagination.Page[T], fn func(T) D) CursorPagination[D] {
	out := make([]D, 0, len(p.Items))
	for _, it := range p.Items {
		out = append(out, fn(it))
	}
	return CursorPagination[D]{Data: out, NextCursor: p.NextCursor, HasNext: p.HasNext, HasPrev: p.HasPrev, Limit: p.Limit}
}
