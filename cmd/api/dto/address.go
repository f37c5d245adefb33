package dto

import (
	"time"

	"doc-pager/models"
)

// AddressDTO exposes an address with its ObjectID as a hex string
type AddressDTO struct {
	ID          string    `json:"id" yaml:"id" example:"65b0c2f1e4b0a1a2b3c4d5e6"`
	UserID      int       `json:"user_id" yaml:"user_id" example:"101"`
	Name        string    `json:"name" yaml:"name" example:"User 12"`
	City        string    `json:"city" yaml:"city" example:"New York"`
	Status      string    `json:"status" yaml:"status" example:"active"`
	Total       float64   `json:"total" yaml:"total" example:"129.5"`
	OrderNumber string    `json:"order_number" yaml:"order_number" example:"ORD000012"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

func NewAddressDTO(a models.Address) AddressDTO {
	return AddressDTO{
		ID:          a.ID.Hex(),
		UserID:      a.UserID,
		Name:        a.Name,
		City:        a.City,
		Status:      a.Status,
		Total:       a.Total,
		OrderNumber: a.OrderNumber,
		CreatedAt:   a.CreatedAt,
	}
}

// UserTotalDTO is one row of the per-user spend report
type UserTotalDTO struct {
	UserID      int     `json:"user_id"`
	TotalSpent  float64 `json:"total_spent"`
	OrdersCount int     `json:"orders_count"`
}

// UserTotalsDTO represents the response for per-user totals
type UserTotalsDTO struct {
	City  string         `json:"city,omitempty"`
	Items []UserTotalDTO `json:"items"`
}
