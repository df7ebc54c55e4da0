package domain

import "time"

// Review represents a customer review left for a finished or started tour
type Review struct {
	ID        int64
	BookingID int64
	TourID    int64
	UserID    int64
	Rate      int // 1..5
	Comment   string
	CreatedAt time.Time
}
