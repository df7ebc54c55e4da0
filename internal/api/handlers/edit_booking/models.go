package edit_booking

import (
	"time"

	"github.com/m04kA/TA-BookingEngine/internal/domain"
	editBooking "github.com/m04kA/TA-BookingEngine/internal/usecase/edit_booking"
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

// EditBookingRequest HTTP request model
// Отсутствующие поля остаются без изменений
type EditBookingRequest struct {
	StartDate       *string             `json:"startDate,omitempty"`
	DurationDays    *int                `json:"durationDays,omitempty"`
	MealPlan        *string             `json:"mealPlan,omitempty"`
	Guests          *GuestCountsRequest `json:"guests,omitempty"`
	PersonalDetails []GuestEntryRequest `json:"personalDetails,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *EditBookingRequest) ToUseCaseRequest(bookingID, userID int64) (*editBooking.Request, error) {
	req := &editBooking.Request{
		BookingID: bookingID,
		UserID:    userID,
	}

	if r.StartDate != nil {
		startDate, err := types.NewDateFromString(*r.StartDate)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	req.DurationDays = r.DurationDays

	if r.MealPlan != nil {
		mealPlan := domain.MealPlan(*r.MealPlan)
		req.MealPlan = &mealPlan
	}

	if r.Guests != nil {
		req.Guests = &domain.GuestCounts{
			Adults:   r.Guests.Adults,
			Children: r.Guests.Children,
		}
	}

	if len(r.PersonalDetails) > 0 {
		entries := make([]domain.GuestEntry, 0, len(r.PersonalDetails))
		for _, e := range r.PersonalDetails {
			entries = append(entries, domain.GuestEntry{
				Type:      domain.GuestType(e.Type),
				FirstName: e.FirstName,
				LastName:  e.LastName,
			})
		}
		req.GuestEntries = entries
	}

	return req, nil
}

// EditBookingResponse HTTP response model
type EditBookingResponse struct {
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
func FromUseCaseResponse(res *editBooking.Response) *EditBookingResponse {
	return &EditBookingResponse{
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
