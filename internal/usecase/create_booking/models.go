package create_booking

import (
	"time"

	"github.com/m04kA/TA-BookingEngine/internal/domain"
	"github.com/m04kA/TA-BookingEngine/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID       int64               // ID клиента
	TourID       int64               // ID тура из каталога
	StartDate    types.Date          // Дата заезда
	DurationDays int                 // Длительность в днях
	MealPlan     domain.MealPlan     // Тип питания
	Guests       domain.GuestCounts  // Количество взрослых и детей
	GuestEntries []domain.GuestEntry // Именованные гости (взрослые, затем дети)
}

// Response модель ответа с созданным бронированием
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

	// FreeCancellationUntil последняя дата бесплатной отмены;
	// всегда вычисляется политикой отмен, не хранится
	FreeCancellationUntil types.Date

	CreatedAt time.Time
	UpdatedAt time.Time
}
