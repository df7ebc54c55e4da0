package get_tour_bookings

import (
	"context"

	"github.com/m04kA/TA-BookingEngine/internal/service/bookings/models"
)

type BookingService interface {
	GetTourBookings(ctx context.Context, req *models.GetTourBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
