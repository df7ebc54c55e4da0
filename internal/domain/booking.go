package domain

import (
	"time"

	"github.com/m04kA/TA-BookingEngine/pkg/types"
)

// BookingState represents the lifecycle state of a booking
type BookingState string

const (
	StateBooked    BookingState = "booked"
	StateConfirmed BookingState = "confirmed"
	StateStarted   BookingState = "started"
	StateFinished  BookingState = "finished"
	StateCancelled BookingState = "cancelled"
)

// GuestType тип гостя в составе бронирования
type GuestType string

const (
	GuestAdult GuestType = "adult"
	GuestChild GuestType = "child"
)

// GuestCounts количество гостей по типам
type GuestCounts struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

// Total возвращает общее количество гостей
func (g GuestCounts) Total() int {
	return g.Adults + g.Children
}

// GuestEntry именованный гость; порядок в списке фиксированный:
// сначала все взрослые, затем дети
type GuestEntry struct {
	Type      GuestType `json:"type"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

// IsEmpty возвращает true для незаполненного слота гостя
func (e GuestEntry) IsEmpty() bool {
	return e.FirstName == "" && e.LastName == ""
}

// Cancellation данные об отмене бронирования
type Cancellation struct {
	Reason      string
	CancelledBy int64
	CancelledAt time.Time
	// Free фиксирует классификацию на момент отмены: бесплатная отмена
	// или с удержанием. Используется отчётностью агентства.
	Free bool
}

// Booking represents a tour reservation owned by the booking engine
type Booking struct {
	ID        int64
	UserID    int64
	TourID    int64
	StartDate types.Date
	// DurationDays длительность тура в днях; всегда одна из предлагаемых
	// туром длительностей
	DurationDays int
	MealPlan     MealPlan
	Guests       GuestCounts
	GuestEntries []GuestEntry
	State        BookingState

	// TotalPrice производное значение: пересчитывается при каждом
	// Create/Edit по актуальным тарифам тура, между ними не меняется
	TotalPrice float64

	Cancellation *Cancellation

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBeEdited returns true if booking details may still be changed
func (b *Booking) CanBeEdited() bool {
	return b.State == StateBooked || b.State == StateConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.State == StateBooked || b.State == StateConfirmed
}

// CanBeConfirmed returns true if the booking can be confirmed by an agent
func (b *Booking) CanBeConfirmed() bool {
	return b.State == StateBooked
}

// IsTerminal returns true for states with no outgoing transitions
func (b *Booking) IsTerminal() bool {
	return b.State == StateStarted || b.State == StateFinished || b.State == StateCancelled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.State == StateCancelled
}

// EndDate возвращает дату окончания тура (startDate + duration days)
func (b *Booking) EndDate() types.Date {
	return b.StartDate.AddDays(b.DurationDays)
}

// ParseBookingState валидирует и конвертирует строку в BookingState
func ParseBookingState(s string) (BookingState, bool) {
	switch BookingState(s) {
	case StateBooked, StateConfirmed, StateStarted, StateFinished, StateCancelled:
		return BookingState(s), true
	default:
		return "", false
	}
}

// TourBookingsFilter фильтр для выборки бронирований тура (агентский отчёт)
type TourBookingsFilter struct {
	TourID           int64       // Обязательный параметр
	StartDate        *types.Date // Фильтр по дате заезда (опционально)
	State            *BookingState
	IncludeCancelled bool // Включать ли отменённые бронирования
}
