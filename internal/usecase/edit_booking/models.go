package edit_booking

import (
	"time"

	"github.com/m04kA/TA-BookingEngine/internal/domain"
	"github.com/m04kA/TA-BookingEngine/pkg/types"
)

// Request модель запроса на изменение бронирования
// nil-поля остаются без изменений
type Request struct {
	BookingID int64
	UserID    int64 // ID клиента-владельца

	StartDate    *types.Date
	DurationDays *int
	MealPlan     *domain.MealPlan
	Guests       *domain.GuestCounts
	// GuestEntries новый список именованных гостей; если не передан
	// при изменении количеств, существующий список согласуется
	// автоматически (сохранить подходящих, отсечь лишних)
	GuestEntries []domain.GuestEntry
}

// Response модель ответа с обновлённым бронированием
type Response struct {
	ID           int64
	UserID       int64
	TourID       int64
	StartDate    types.Date
	DurationDays int
	MealPlan     domain.MealPlan
	Guests       domain.GuestCounts
	GuestEntries []domain.GuestEntry
	State        string
	TotalPrice   float64

	FreeCancellationUntil types.Date

	CreatedAt time.Time
	UpdatedAt time.Time
}
