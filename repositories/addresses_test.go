package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"doc-pager/models"
	"doc-pager/pagination"
)

func TestAddressFilterToFilter(t *testing.T) {
	userID := 102

	testCases := []struct {
		name   string
		filter AddressFilter
		want   pagination.Filter
	}{
		{name: "empty", filter: AddressFilter{}, want: pagination.Filter{}},
		{
			name:   "city is anchored and quoted",
			filter: AddressFilter{City: "St. Louis"},
			want:   pagination.Filter{"city": primitive.Regex{Pattern: `^St\. Louis$`, Options: "i"}},
		},
		{
			name:   "all fields",
			filter: AddressFilter{City: "New York", Status: models.AddressStatusActive, UserID: &userID},
			want: pagination.Filter{
				"city":   primitive.Regex{Pattern: "^New York$", Options: "i"},
				"status": "active",
				"userId": 102,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.filter.ToFilter())
		})
	}
}

func TestGenerateAddresses(t *testing.T) {
	now := time.Date(2024, 1, 24, 10, 0, 0, 123456789, time.UTC)
	got := GenerateAddresses(23, now)
	require.Len(t, got, 23)

	first := got[0]
	assert.Equal(t, "User 1", first.Name)
	assert.Equal(t, "Los Angeles", first.City)
	assert.Equal(t, 100, first.UserID)
	assert.Equal(t, "ORD000001", first.OrderNumber)
	assert.Equal(t, models.AddressStatusActive, first.Status)
	assert.Equal(t, 79.19, first.Total)
	assert.Equal(t, time.Date(2024, 1, 24, 9, 0, 0, 123000000, time.UTC), first.CreatedAt)

	assert.Equal(t, "New York", got[1].City)
	assert.Equal(t, models.AddressStatusInactive, got[2].Status)
	assert.Equal(t, 101, got[9].UserID)

	orders := map[string]bool{}
	for i, a := range got {
		assert.False(t, orders[a.OrderNumber], "duplicate order number %s", a.OrderNumber)
		orders[a.OrderNumber] = true
		if i > 0 {
			assert.True(t, a.CreatedAt.Before(got[i-1].CreatedAt))
		}
	}

	assert.Empty(t, GenerateAddresses(0, now))
}

func TestAddressRepositoryMock(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert many", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(3)}))
		repo := NewAddressRepository(mt.DB)

		n, err := repo.InsertMany(context.Background(), GenerateAddresses(3, time.Now()))
		require.NoError(mt, err)
		assert.Equal(mt, 3, n)
	})

	mt.Run("insert many with nothing to insert", func(mt *mtest.T) {
		repo := NewAddressRepository(mt.DB)

		n, err := repo.InsertMany(context.Background(), nil)
		require.NoError(mt, err)
		assert.Zero(mt, n)
		assert.Nil(mt, mt.GetStartedEvent())
	})

	mt.Run("insert many duplicate order number", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: indexDemo.addresses index: orderNumber_1",
		}))
		repo := NewAddressRepository(mt.DB)

		_, err := repo.InsertMany(context.Background(), GenerateAddresses(1, time.Now()))
		assert.ErrorIs(mt, err, ErrAlreadyExists)
	})

	mt.Run("delete by order number", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(1)}))
		repo := NewAddressRepository(mt.DB)

		require.NoError(mt, repo.DeleteByOrderNumber(context.Background(), "ORD000007"))
		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "delete", evt.CommandName)
	})

	mt.Run("delete by order number not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(0)}))
		repo := NewAddressRepository(mt.DB)

		err := repo.DeleteByOrderNumber(context.Background(), "ORD999999")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("delete by city", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(12)}))
		repo := NewAddressRepository(mt.DB)

		n, err := repo.DeleteByCity(context.Background(), "new york")
		require.NoError(mt, err)
		assert.Equal(mt, int64(12), n)
	})

	mt.Run("set status for user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: int32(10)},
			bson.E{Key: "nModified", Value: int32(7)},
		))
		repo := NewAddressRepository(mt.DB)

		matched, modified, err := repo.SetStatusForUser(context.Background(), 101, models.AddressStatusInactive)
		require.NoError(mt, err)
		assert.Equal(mt, int64(10), matched)
		assert.Equal(mt, int64(7), modified)
	})

	mt.Run("city counts", func(mt *mtest.T) {
		ns := mt.DB.Name() + ".addresses"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "Los Angeles"}, {Key: "count", Value: int32(12)}},
			bson.D{{Key: "_id", Value: "New York"}, {Key: "count", Value: int32(11)}},
		))
		repo := NewAddressRepository(mt.DB)

		got, err := repo.CityCounts(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, []models.CityCount{{City: "Los Angeles", Count: 12}, {City: "New York", Count: 11}}, got)
	})

	mt.Run("totals by user filtered by city", func(mt *mtest.T) {
		ns := mt.DB.Name() + ".addresses"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: int32(101)}, {Key: "totalSpent", Value: 1250.5}, {Key: "ordersCount", Value: int32(5)}},
		))
		repo := NewAddressRepository(mt.DB)

		got, err := repo.TotalsByUser(context.Background(), "New York")
		require.NoError(mt, err)
		assert.Equal(mt, []models.UserTotal{{UserID: 101, TotalSpent: 1250.5, OrdersCount: 5}}, got)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		stages, err := evt.Command.Lookup("pipeline").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, stages, 3)
		_, hasMatch := stages[0].Document().Lookup("$match").DocumentOK()
		assert.True(mt, hasMatch)
	})

	mt.Run("totals by user empty", func(mt *mtest.T) {
		ns := mt.DB.Name() + ".addresses"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		repo := NewAddressRepository(mt.DB)

		got, err := repo.TotalsByUser(context.Background(), "")
		require.NoError(mt, err)
		assert.NotNil(mt, got)
		assert.Empty(mt, got)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		stages, err := evt.Command.Lookup("pipeline").Array().Values()
		require.NoError(mt, err)
		assert.Len(mt, stages, 2)
	})
}
