package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"doc-pager/cmd/api/dto"
	"doc-pager/cmd/api/services"
	"doc-pager/models"
	"doc-pager/pagination"
	"doc-pager/repositories"
)

type stubSource struct {
	items []models.Address
	err   error
}

func (s *stubSource) Find(_ context.Context, _ pagination.Filter, _ pagination.Sort, skip, limit int64) ([]models.Address, error) {
	if s.err != nil {
		return nil, s.err
	}
	if int(skip) >= len(s.items) {
		return []models.Address{}, nil
	}
	return s.items[skip:min(int(skip+limit), len(s.items))], nil
}

func (s *stubSource) Count(context.Context, pagination.Filter) (int64, error) {
	return int64(len(s.items)), nil
}

func (s *stubSource) FindAfter(_ context.Context, _ pagination.Filter, _ pagination.Sort, cursor string, limit int64) ([]models.Address, error) {
	for i, a := range s.items {
		if a.OrderNumber == cursor {
			return s.items[i+1 : min(i+1+int(limit), len(s.items))], nil
		}
	}
	return nil, fmt.Errorf("%w: cursor", pagination.ErrInvalidParameter)
}

func (s *stubSource) CursorOf(a models.Address, _ pagination.Sort) (string, error) {
	return a.OrderNumber, nil
}

type stubAddressStore struct {
	src *stubSource
	err error
}

func (s *stubAddressStore) Source() pagination.Source[models.Address] { return s.src }

func (s *stubAddressStore) CityCounts(context.Context) ([]models.CityCount, error) {
	return []models.CityCount{{City: "New York", Count: 2}}, s.err
}

func (s *stubAddressStore) TotalsByUser(context.Context, string) ([]models.UserTotal, error) {
	return []models.UserTotal{{UserID: 100, TotalSpent: 10, OrdersCount: 1}}, s.err
}

func (s *stubAddressStore) DeleteByOrderNumber(_ context.Context, orderNumber string) error {
	if orderNumber == "ORD000001" {
		return nil
	}
	return repositories.ErrNotFound
}

func newRouter(store *stubAddressStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewAddressService(store, pagination.New(pagination.DefaultConfig()))
	r := gin.New()
	r.GET("/addresses", ListAddressesHandler(svc))
	r.GET("/addresses/cursor", ListAddressesAfterHandler(svc))
	r.GET("/addresses/filters/cities", CityFiltersHandler(svc))
	r.GET("/addresses/totals", UserTotalsHandler(svc))
	r.DELETE("/addresses/:order_number", DeleteAddressHandler(svc))
	return r
}

func seededStore(n int) *stubAddressStore {
	items := repositories.GenerateAddresses(n, time.Date(2024, 1, 24, 0, 0, 0, 0, time.UTC))
	for i := range items {
		items[i].ID = primitive.NewObjectID()
	}
	return &stubAddressStore{src: &stubSource{items: items}}
}

func do(r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestListAddressesHandler(t *testing.T) {
	r := newRouter(seededStore(23))

	w := do(r, http.MethodGet, "/addresses?page=5&limit=5")
	require.Equal(t, http.StatusOK, w.Code)

	var body dto.PaginationAddressDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 3)
	assert.Equal(t, 5, body.Pagination.CurrentPage)
	assert.Equal(t, 5, body.Pagination.TotalPages)
	assert.Equal(t, int64(23), body.Pagination.TotalItems)
	assert.False(t, body.Pagination.HasNext)
	assert.True(t, body.Pagination.HasPrev)
	assert.Nil(t, body.Pagination.NextPage)
	require.NotNil(t, body.Pagination.PrevPage)
	assert.Equal(t, 4, *body.Pagination.PrevPage)
}

func TestListAddressesHandlerLargestPageIsEmpty(t *testing.T) {
	r := newRouter(seededStore(23))

	w := do(r, http.MethodGet, "/addresses?page=9223372036854775807&limit=10")
	require.Equal(t, http.StatusOK, w.Code)

	var body dto.PaginationAddressDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Data)
	assert.Equal(t, int64(23), body.Pagination.TotalItems)
	assert.False(t, body.Pagination.HasNext)
	assert.Zero(t, body.Pagination.ShowingFrom)
	assert.Zero(t, body.Pagination.ShowingTo)
}

func TestListAddressesHandlerClampsAndDefaults(t *testing.T) {
	r := newRouter(seededStore(23))

	w := do(r, http.MethodGet, "/addresses?page=-3&limit=abc")
	require.Equal(t, http.StatusOK, w.Code)

	var body dto.PaginationAddressDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Pagination.CurrentPage)
	assert.Equal(t, 10, body.Pagination.Limit)
	assert.Len(t, body.Data, 10)
}

func TestListAddressesHandlerEmptyDataIsArray(t *testing.T) {
	r := newRouter(seededStore(0))

	w := do(r, http.MethodGet, "/addresses")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestListAddressesHandlerErrors(t *testing.T) {
	testCases := []struct {
		name   string
		store  *stubAddressStore
		target string
		want   int
	}{
		{name: "bad sort", store: seededStore(3), target: "/addresses?sort=$where", want: http.StatusBadRequest},
		{name: "unknown sort field", store: seededStore(3), target: "/addresses?sort=secret", want: http.StatusBadRequest},
		{name: "bad user id", store: seededStore(3), target: "/addresses?user_id=abc", want: http.StatusBadRequest},
		{
			name:   "source failure",
			store:  &stubAddressStore{src: &stubSource{err: errors.New("no reachable servers")}},
			target: "/addresses",
			want:   http.StatusInternalServerError,
		},
		{name: "bad cursor", store: seededStore(3), target: "/addresses/cursor?cursor=zzz", want: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(newRouter(tc.store), http.MethodGet, tc.target)
			assert.Equal(t, tc.want, w.Code)

			var body dto.ErrorResponseDTO
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestListAddressesAfterHandlerWalk(t *testing.T) {
	r := newRouter(seededStore(7))

	target := "/addresses/cursor?limit=3"
	var seen []string
	for calls := 0; calls < 5; calls++ {
		w := do(r, http.MethodGet, target)
		require.Equal(t, http.StatusOK, w.Code)

		var body dto.CursorAddressDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, calls > 0, body.HasPrev)
		for _, a := range body.Data {
			seen = append(seen, a.OrderNumber)
		}
		if !body.HasNext {
			break
		}
		target = "/addresses/cursor?limit=3&cursor=" + body.NextCursor
	}
	assert.Equal(t, []string{"ORD000001", "ORD000002", "ORD000003", "ORD000004", "ORD000005", "ORD000006", "ORD000007"}, seen)
}

func TestFacetHandlers(t *testing.T) {
	r := newRouter(seededStore(0))

	w := do(r, http.MethodGet, "/addresses/filters/cities")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[{"name":"New York","count":2}]}`, w.Body.String())

	w = do(r, http.MethodGet, "/addresses/totals?city=New%20York")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"city":"New York","items":[{"user_id":100,"total_spent":10,"orders_count":1}]}`, w.Body.String())
}

func TestDeleteAddressHandler(t *testing.T) {
	r := newRouter(seededStore(0))

	assert.Equal(t, http.StatusOK, do(r, http.MethodDelete, "/addresses/ORD000001").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/addresses/ORD999999").Code)
}

func TestStatusFor(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", repositories.ErrNotFound, http.StatusNotFound},
		{"exists", repositories.ErrAlreadyExists, http.StatusConflict},
		{"invalid", &pagination.Error{Op: "x", Kind: pagination.ErrInvalidParameter, Err: errors.New("bad")}, http.StatusBadRequest},
		{"deadline", &pagination.Error{Op: "x", Kind: pagination.ErrCanceled, Err: context.DeadlineExceeded}, http.StatusGatewayTimeout},
		{"canceled", &pagination.Error{Op: "x", Kind: pagination.ErrCanceled, Err: context.Canceled}, http.StatusServiceUnavailable},
		{"source", &pagination.Error{Op: "x", Kind: pagination.ErrSourceQueryFailed, Err: errors.New("boom")}, http.StatusInternalServerError},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusFor(tc.err))
		})
	}
}
