package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AddressStatusActive   = "active"
	AddressStatusInactive = "inactive"
)

// Address is an order-address record used throughout the pagination demos.
// Collection: addresses
type Address struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      int                `bson:"userId" json:"user_id"`
	Name        string             `bson:"name" json:"name"`
	City        string             `bson:"city" json:"city"`
	Status      string             `bson:"status" json:"status"`
	Total       float64            `bson:"total" json:"total"`
	OrderNumber string             `bson:"orderNumber" json:"order_number"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
}

// CityCount is one row of the per-city facet.
type CityCount struct {
	City  string `bson:"_id"`
	Count int    `bson:"count"`
}

// UserTotal is one row of the per-user spend aggregation.
type UserTotal struct {
	UserID      int     `bson:"_id"`
	TotalSpent  float64 `bson:"totalSpent"`
	OrdersCount int     `bson:"ordersCount"`
}
