package repositories

import (
	"fmt"
	"time"

	"doc-pager/models"
)

// GenerateAddresses builds n deterministic demo addresses: users grouped by ten,
// alternating New York / Los Angeles, one hour apart going back from now.
func GenerateAddresses(n int, now time.Time) []models.Address {
	out := make([]models.Address, 0, n)
	for i := 1; i <= n; i++ {
		city := "Los Angeles"
		if i%2 == 0 {
			city = "New York"
		}
		status := models.AddressStatusActive
		if i%3 == 0 {
			status = models.AddressStatusInactive
		}
		out = append(out, models.Address{
			UserID:      100 + i/10,
			Name:        fmt.Sprintf("User %d", i),
			City:        city,
			Status:      status,
			Total:       float64((i*7919)%50000) / 100,
			OrderNumber: fmt.Sprintf("ORD%06d", i),
			CreatedAt:   now.Add(-time.Duration(i) * time.Hour).UTC().Truncate(time.Millisecond),
		})
	}
	return out
}
