package create_review

import (
	"github.com/m04kA/TA-BookingEngine/internal/service/reviews/models"
)

// CreateReviewRequest HTTP request model
type CreateReviewRequest struct {
	Rate    int    `json:"rate"`
	Comment string `json:"comment,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateReviewRequest) ToServiceRequest(bookingID, userID int64) *models.SubmitReviewRequest {
	return &models.SubmitReviewRequest{
		BookingID: bookingID,
		UserID:    userID,
		Rate:      r.Rate,
		Comment:   r.Comment,
	}
}
