package create_booking

import (
	"time"

	"github.com/m04kA/TA-BookingEngine/internal/domain"
	createBooking "github.com/m04kA/TA-BookingEngine/internal/usecase/create_booking"
	"github.com/m04kA/TA-BookingEngine/pkg/types"
)

// GuestCountsRequest количество гостей в запросе
type GuestCountsRequest struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

// GuestEntryRequest именованный гость в запросе
type GuestEntryRequest struct {
	Type      string `json:"type"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	TourID          int64               `json:"tourId"`
	StartDate       string              `json:"startDate"`
	DurationDays    int                 `json:"durationDays"`
	MealPlan        string              `json:"mealPlan"`
	Guests          GuestCountsRequest  `json:"guests"`
	PersonalDetails []GuestEntryRequest `json:"personalDetails"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
// userID берётся из контекста аутентификации, не из body
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	startDate, err := types.NewDateFromString(r.StartDate)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.GuestEntry, 0, len(r.PersonalDetails))
	for _, e := range r.PersonalDetails {
		entries = append(entries, domain.GuestEntry{
			Type:      domain.GuestType(e.Type),
			FirstName: e.FirstName,
			LastName:  e.LastName,
		})
	}

	return &createBooking.Request{
		UserID:       userID,
		TourID:       r.TourID,
		StartDate:    startDate,
		DurationDays: r.DurationDays,
		MealPlan:     domain.MealPlan(r.MealPlan),
		Guests: domain.GuestCounts{
			Adults:   r.Guests.Adults,
			Children: r.Guests.Children,
		},
		GuestEntries: entries,
	}, nil
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	ID                    int64               `json:"id"`
	UserID                int64               `json:"userId"`
	TourID                int64               `json:"tourId"`
	StartDate             types.Date          `json:"startDate"`
	DurationDays          int                 `json:"durationDays"`
	MealPlan              domain.MealPlan     `json:"mealPlan"`
	Guests                domain.GuestCounts  `json:"guests"`
	PersonalDetails       []domain.GuestEntry `json:"personalDetails"`
	State                 string              `json:"state"`
	TotalPrice            float64             `json:"totalPrice"`
	FreeCancellationUntil types.Date          `json:"freeCancellationUntil"`
	CreatedAt             time.Time           `json:"createdAt"`
	UpdatedAt             time.Time           `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(res *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:                    res.ID,
		UserID:                res.UserID,
		TourID:                res.TourID,
		StartDate:             res.StartDate,
		DurationDays:          res.DurationDays,
		MealPlan:              res.MealPlan,
		Guests:                res.Guests,
		PersonalDetails:       res.GuestEntries,
		State:                 res.State,
		TotalPrice:            res.TotalPrice,
		FreeCancellationUntil: res.FreeCancellationUntil,
		CreatedAt:             res.CreatedAt,
		UpdatedAt:             res.UpdatedAt,
	}
}
