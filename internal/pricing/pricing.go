package pricing

import (
	"errors"
	"fmt"

	"github.com/m04kA/TA-BookingEngine/internal/domain"
)

var (
	// ErrNoRateForDuration возвращается, когда у тура нет базового тарифа
	// для выбранной длительности
	ErrNoRateForDuration = errors.New("pricing: no base rate for duration")

	// ErrNoRateForMealPlan возвращается, когда у тура нет надбавки
	// для выбранного типа питания
	ErrNoRateForMealPlan = errors.New("pricing: no supplement rate for meal plan")
)

// Compute вычисляет полную стоимость бронирования по тарифам тура:
//
//	perPerson = priceByDuration[duration] + mealSupplementPerDay[mealPlan] * durationDays
//	total     = perPerson * (adults + children)
//
// Детских скидок нет: ребёнок оплачивается как взрослый.
// Функция детерминирована и не зависит от текущего времени; пересчёт
// выполняется на каждом Create/Edit, закэшированная в бронировании цена
// между ними не меняется.
func Compute(tour *domain.Tour, durationDays int, mealPlan domain.MealPlan, guests domain.GuestCounts) (float64, error) {
	basePrice, ok := tour.PriceByDuration[durationDays]
	if !ok {
		return 0, fmt.Errorf("%w: tour=%d, duration=%d", ErrNoRateForDuration, tour.ID, durationDays)
	}

	supplement, ok := tour.MealSupplementPerDay[mealPlan]
	if !ok {
		return 0, fmt.Errorf("%w: tour=%d, mealPlan=%s", ErrNoRateForMealPlan, tour.ID, mealPlan)
	}

	perPerson := basePrice + supplement*float64(durationDays)

	return perPerson * float64(guests.Total()), nil
}
