package models

import (
	"time"

	"github.com/m04kA/TA-BookingEngine/internal/cancellation"
	"github.com/m04kA/TA-BookingEngine/internal/domain"
	"github.com/m04kA/TA-BookingEngine/internal/integrations/documents"
	"github.com/m04kA/TA-BookingEngine/pkg/types"
)

// Роли, передаваемые вызывающим слоем
// Движок доверяет роли из запроса; аутентификация - забота внешнего слоя
const (
	RoleCustomer = "customer"
	RoleAgent    = "agent"
)

// Request модели

// ConfirmBookingRequest запрос на подтверждение бронирования агентом
type ConfirmBookingRequest struct {
	UserID int64
	Role   string
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID int64
	Role   string
	Reason string
}

// GetBookingRequest запрос на чтение бронирования
type GetBookingRequest struct {
	UserID int64
	Role   string
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64
	State  *string
}

// GetTourBookingsRequest запрос на получение бронирований тура (для агента)
type GetTourBookingsRequest struct {
	TourID           int64
	UserID           int64
	Role             string
	StartDate        *types.Date
	State            *string
	IncludeCancelled bool
}

// Response модели

// DocumentsSummary сводка документов бронирования
type DocumentsSummary struct {
	Payments       int  `json:"payments"`
	GuestDocuments int  `json:"guestDocuments"`
	Complete       bool `json:"complete"`
}

// CancellationResponse данные об отмене
type CancellationResponse struct {
	Reason      string    `json:"reason"`
	CancelledBy int64     `json:"cancelledBy"`
	CancelledAt time.Time `json:"cancelledAt"`
	Free        bool      `json:"free"`
}

// BookingResponse бронирование с вычисляемыми полями
type BookingResponse struct {
	ID           int64               `json:"id"`
	UserID       int64               `json:"userId"`
	TourID       int64               `json:"tourId"`
	Destination  string              `json:"destination,omitempty"`
	StartDate    types.Date          `json:"startDate"`
	DurationDays int                 `json:"durationDays"`
	MealPlan     domain.MealPlan     `json:"mealPlan"`
	Guests       domain.GuestCounts  `json:"guests"`
	GuestEntries []domain.GuestEntry `json:"personalDetails"`
	State        string              `json:"state"`
	TotalPrice   float64             `json:"totalPrice"`

	// FreeCancellationUntil всегда вычисляется политикой отмен
	// по актуальным данным тура, не хранится
	FreeCancellationUntil *types.Date `json:"freeCancellationUntil,omitempty"`

	Cancellation *CancellationResponse `json:"cancellation,omitempty"`
	Documents    *DocumentsSummary     `json:"documents,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// FromDomainBooking конвертирует доменное бронирование в response
// tour может быть nil (каталог недоступен): вычисляемые поля опускаются
func FromDomainBooking(b *domain.Booking, tour *domain.Tour, asOf types.Date) *BookingResponse {
	resp := &BookingResponse{
		ID:           b.ID,
		UserID:       b.UserID,
		TourID:       b.TourID,
		StartDate:    b.StartDate,
		DurationDays: b.DurationDays,
		MealPlan:     b.MealPlan,
		Guests:       b.Guests,
		GuestEntries: b.GuestEntries,
		State:        string(b.State),
		TotalPrice:   b.TotalPrice,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}

	if tour != nil {
		resp.Destination = tour.Destination
		if b.CanBeCancelled() {
			classification := cancellation.Classify(tour, b.StartDate, asOf)
			resp.FreeCancellationUntil = &classification.CutoffDate
		}
	}

	if b.Cancellation != nil {
		resp.Cancellation = &CancellationResponse{
			Reason:      b.Cancellation.Reason,
			CancelledBy: b.Cancellation.CancelledBy,
			CancelledAt: b.Cancellation.CancelledAt,
			Free:        b.Cancellation.Free,
		}
	}

	return resp
}

// WithDocuments добавляет сводку документов к response
func (r *BookingResponse) WithDocuments(s *documents.Summary, guestCount int) *BookingResponse {
	if s == nil {
		return r
	}
	r.Documents = &DocumentsSummary{
		Payments:       s.Payments,
		GuestDocuments: s.GuestDocuments,
		Complete:       s.Complete(guestCount),
	}
	return r
}

// FromDomainBookingList конвертирует список бронирований
// tours - карта туров по ID для вычисляемых полей
func FromDomainBookingList(bookings []*domain.Booking, tours map[int64]*domain.Tour, asOf types.Date) *BookingListResponse {
	items := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, FromDomainBooking(b, tours[b.TourID], asOf))
	}
	return &BookingListResponse{
		Bookings: items,
		Total:    len(items),
	}
}
