package models

import (
	"time"

	"github.com/m04kA/TA-BookingEngine/internal/domain"
)

// SubmitReviewRequest запрос на создание отзыва
type SubmitReviewRequest struct {
	BookingID int64
	UserID    int64
	Rate      int
	Comment   string
}

// ReviewResponse отзыв в ответе API
type ReviewResponse struct {
	ID        int64     `json:"id"`
	BookingID int64     `json:"bookingId"`
	TourID    int64     `json:"tourId"`
	UserID    int64     `json:"userId"`
	Rate      int       `json:"rate"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewListResponse список отзывов тура
type ReviewListResponse struct {
	TourID  int64             `json:"tourId"`
	Reviews []*ReviewResponse `json:"reviews"`
	Total   int               `json:"total"`
}

// FromDomainReview конвертирует доменный отзыв в response
func FromDomainReview(r *domain.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:        r.ID,
		BookingID: r.BookingID,
		TourID:    r.TourID,
		UserID:    r.UserID,
		Rate:      r.Rate,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

// FromDomainReviewList конвертирует список отзывов
func FromDomainReviewList(tourID int64, reviews []*domain.Review) *ReviewListResponse {
	items := make([]*ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		items = append(items, FromDomainReview(r))
	}
	return &ReviewListResponse{
		TourID:  tourID,
		Reviews: items,
		Total:   len(items),
	}
}
