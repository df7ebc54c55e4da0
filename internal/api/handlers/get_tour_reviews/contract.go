package get_tour_reviews

import (
	"context"

	"github.com/m04kA/TA-BookingEngine/internal/service/reviews/models"
)

type ReviewService interface {
	ListByTour(ctx context.Context, tourID int64) (*models.ReviewListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
