package create_booking

import (
	"fmt"

	"github.com/m04kA/TA-BookingEngine/internal/domain"
	"github.com/m04kA/TA-BookingEngine/internal/guestroster"
	"github.com/m04kA/TA-BookingEngine/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.TourID <= 0 {
		return fmt.Errorf("%w: tourID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if err := req.StartDate.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startDate format: %v", ErrInvalidInput, err)
	}

	if req.DurationDays <= 0 {
		return fmt.Errorf("%w: durationDays must be positive", ErrInvalidInput)
	}

	if _, ok := domain.ParseMealPlan(string(req.MealPlan)); !ok {
		return fmt.Errorf("%w: unknown meal plan %q", ErrInvalidInput, req.MealPlan)
	}

	return nil
}

// validateCombination проверяет, что тройка (дата, длительность, питание)
// предлагается туром
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
// против лимитов тура и политики имён
func validateGuests(tour *domain.Tour, guests domain.GuestCounts, entries []domain.GuestEntry) error {
	if err := guestroster.ValidateCounts(tour, guests); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGuests, err)
	}
	if err := guestroster.ValidateEntries(entries, guests); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGuests, err)
	}
	return nil
}

// validateStartDateNotPast проверяет, что дата заезда ещё не прошла
func validateStartDateNotPast(startDate types.Date, asOf types.Date) error {
	if startDate.Before(asOf) {
		return ErrStartDateInPast
	}
	return nil
}
