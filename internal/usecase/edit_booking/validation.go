package edit_booking

import (
	"fmt"

	"github.com/m04kA/TA-BookingEngine/internal/domain"
	"github.com/m04kA/TA-BookingEngine/internal/guestroster"
	"github.com/m04kA/TA-BookingEngine/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.StartDate == nil && req.DurationDays == nil && req.MealPlan == nil &&
		req.Guests == nil && req.GuestEntries == nil {
		return fmt.Errorf("%w: nothing to change", ErrInvalidInput)
	}

	if req.StartDate != nil {
		if err := req.StartDate.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startDate format: %v", ErrInvalidInput, err)
		}
	}

	if req.DurationDays != nil && *req.DurationDays <= 0 {
		return fmt.Errorf("%w: durationDays must be positive", ErrInvalidInput)
	}

	if req.MealPlan != nil {
		if _, ok := domain.ParseMealPlan(string(*req.MealPlan)); !ok {
			return fmt.Errorf("%w: unknown meal plan %q", ErrInvalidInput, *req.MealPlan)
		}
	}

	return nil
}

// validateCombination проверяет, что новая тройка предлагается туром
func validateCombination(tour *domain.Tour, startDate types.Date, durationDays int, mealPlan domain.MealPlan) error {
	if !tour.OffersStartDate(startDate) {
		return fmt.Errorf("%w: start date %s", ErrCombinationNotOffered, startDate)
	}
	if !tour.OffersDuration(durationDays) {
		return fmt.Errorf("%w: duration %d days", ErrCombinationNotOffered, durationDays)
	}
	if !tour.OffersMealPlan(mealPlan) {
		return fmt.Errorf("%w: meal plan %s", ErrCombinationNotOffered, mealPlan)
	}
	return nil
}

// validateGuests проверяет количество гостей и список именованных гостей
func validateGuests(tour *domain.Tour, guests domain.GuestCounts, entries []domain.GuestEntry) error {
	if err := guestroster.ValidateCounts(tour, guests); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGuests, err)
	}
	if err := guestroster.ValidateEntries(entries, guests); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGuests, err)
	}
	return nil
}
