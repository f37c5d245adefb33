package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"doc-pager/cmd/api/dto"
	"doc-pager/cmd/api/metrics"
	"doc-pager/cmd/api/trace"
	"doc-pager/cmd/internal/logger"
	"doc-pager/db"
	"doc-pager/models"
	"doc-pager/pagination"
	"doc-pager/repositories"
)

// DefaultAddressSort is used when the request carries no sort: newest first.
const DefaultAddressSort = "-createdAt"

// addressSortFields are the fields clients may sort addresses by.
var addressSortFields = []string{"_id", "createdAt", "total", "name", "city", "status", "userId", "orderNumber"}

// AddressStore is the part of repositories.AddressRepository the service needs.
type AddressStore interface {
	Source() pagination.Source[models.Address]
	CityCounts(ctx context.Context) ([]models.CityCount, error)
	TotalsByUser(ctx context.Context, city string) ([]models.UserTotal, error)
	DeleteByOrderNumber(ctx context.Context, orderNumber string) error
}

var _ AddressStore = (*repositories.AddressRepository)(nil)

// AddressService runs address listings through the pagination engine and maps them to DTOs.
type AddressService struct {
	store  AddressStore
	engine *pagination.Engine
}

func NewAddressService(store AddressStore, engine *pagination.Engine) *AddressService {
	return &AddressService{store: store, engine: engine}
}

type ListAddressesInput struct {
	Page   int
	Limit  int
	Sort   string // e.g. "-createdAt,total"; empty means DefaultAddressSort
	City   string // case-insensitive exact match
	Status string
	UserID *int
}

type ListAddressesAfterInput struct {
	Cursor string
	Limit  int
	Sort   string
	City   string
	Status string
	UserID *int
}

// List returns one offset page of addresses.
func (s *AddressService) List(ctx context.Context, in ListAddressesInput) (dto.Pagination[dto.AddressDTO], error) {
	const op = "list addresses"
	sort, err := parseSort(op, in.Sort, DefaultAddressSort, addressSortFields)
	if err != nil {
		metrics.RecordRequest(metrics.ModeOffset, err, 0)
		return dto.Pagination[dto.AddressDTO]{}, err
	}
	filter := repositories.AddressFilter{City: in.City, Status: in.Status, UserID: in.UserID}.ToFilter()

	start := time.Now()
	page, err := pagination.PaginateByOffset(ctx, s.engine, s.store.Source(), pagination.Request{
		Page:   in.Page,
		Limit:  in.Limit,
		Filter: filter,
		Sort:   sort,
	})
	elapsed := time.Since(start)
	metrics.RecordRequest(metrics.ModeOffset, err, elapsed.Seconds())
	logQuery(ctx, op, metrics.ModeOffset, sort, elapsed, err)
	if err != nil {
		return dto.Pagination[dto.AddressDTO]{}, err
	}
	if len(filter) == 0 {
		metrics.UpdateTotalItems(db.AddressesCollection, page.TotalItems)
	}
	return dto.NewPagination(page, dto.NewAddressDTO), nil
}

// ListAfter returns the window of addresses following in.Cursor.
func (s *AddressService) ListAfter(ctx context.Context, in ListAddressesAfterInput) (dto.CursorPagination[dto.AddressDTO], error) {
	const op = "list addresses after"
	sort, err := parseSort(op, in.Sort, DefaultAddressSort, addressSortFields)
	if err != nil {
		metrics.RecordRequest(metrics.ModeCursor, err, 0)
		return dto.CursorPagination[dto.AddressDTO]{}, err
	}
	filter := repositories.AddressFilter{City: in.City, Status: in.Status, UserID: in.UserID}.ToFilter()

	start := time.Now()
	page, err := pagination.PaginateByCursor(ctx, s.engine, s.store.Source(), filter, sort, pagination.CursorRequest{
		LastKey: in.Cursor,
		Limit:   in.Limit,
	})
	elapsed := time.Since(start)
	metrics.RecordRequest(metrics.ModeCursor, err, elapsed.Seconds())
	logQuery(ctx, op, metrics.ModeCursor, sort, elapsed, err)
	if err != nil {
		return dto.CursorPagination[dto.AddressDTO]{}, err
	}
	return dto.NewCursorPagination(page, dto.NewAddressDTO), nil
}

// CityFilters returns how many addresses each city has
func (s *AddressService) CityFilters(ctx context.Context) (dto.CityFilterDTO, error) {
	rows, err := s.store.CityCounts(ctx)
	if err != nil {
		return dto.CityFilterDTO{}, err
	}
	items := make([]dto.FilterItem, len(rows))
	for i, r := range rows {
		items[i] = dto.FilterItem{Name: r.City, Count: r.Count}
	}
	return dto.CityFilterDTO{Items: items}, nil
}

// Totals returns spend per user, optionally for one city
func (s *AddressService) Totals(ctx context.Context, city string) (dto.UserTotalsDTO, error) {
	rows, err := s.store.TotalsByUser(ctx, city)
	if err != nil {
		return dto.UserTotalsDTO{}, err
	}
	items := make([]dto.UserTotalDTO, len(rows))
	for i, r := range rows {
		items[i] = dto.UserTotalDTO{UserID: r.UserID, TotalSpent: r.TotalSpent, OrdersCount: r.OrdersCount}
	}
	return dto.UserTotalsDTO{City: city, Items: items}, nil
}

func (s *AddressService) Delete(ctx context.Context, orderNumber string) error {
	return s.store.DeleteByOrderNumber(ctx, orderNumber)
}

// parseSort parses raw (or fallback when raw is empty) and rejects fields outside allowed.
func parseSort(op, raw, fallback string, allowed []string) (pagination.Sort, error) {
	if raw == "" {
		raw = fallback
	}
	sort, err := pagination.ParseSort(raw)
	if err != nil {
		return nil, err
	}
	for _, f := range sort.Fields() {
		if !slices.Contains(allowed, f) {
			return nil, &pagination.Error{
				Op:   op,
				Kind: pagination.ErrInvalidParameter,
				Err:  fmt.Errorf("cannot sort by %q", f),
			}
		}
	}
	return sort, nil
}

// logQuery records one pagination call with its request_id and span_id.
func logQuery(ctx context.Context, op, mode string, sort pagination.Sort, elapsed time.Duration, err error) {
	requestID, spanID := trace.NextSpanID(ctx)
	fields := logger.Fields{
		"op":         op,
		"mode":       mode,
		"sort":       sort.String(),
		"duration":   elapsed.String(),
		"request_id": requestID,
		"span_id":    spanID,
	}
	if err != nil {
		fields["error"] = err.Error()
		fields["kind"] = metrics.ErrorKind(err)
		logger.WarnWithFields("pagination failed", fields)
		return
	}
	logger.DebugWithFields("pagination done", fields)
}
