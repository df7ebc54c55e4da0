package domain

import "github.com/m04kA/TA-BookingEngine/pkg/types"

// MealPlan represents the meal plan offered with a tour package
type MealPlan string

const (
	MealBB MealPlan = "BB" // Bed & Breakfast
	MealHB MealPlan = "HB" // Half Board
	MealFB MealPlan = "FB" // Full Board
	MealAI MealPlan = "AI" // All Inclusive
)

// ParseMealPlan валидирует и конвертирует строку в MealPlan
func ParseMealPlan(s string) (MealPlan, bool) {
	switch MealPlan(s) {
	case MealBB, MealHB, MealFB, MealAI:
		return MealPlan(s), true
	default:
		return "", false
	}
}

// DurationOption предлагаемая туром длительность
type DurationOption struct {
	Days  int    `json:"days"`
	Label string `json:"label"` // отображаемая подпись, например "7 days"
}

// Tour is the catalog view of a tour consumed by the engine.
// Owned by the external TourCatalog service, immutable here.
type Tour struct {
	ID          int64
	Destination string

	StartDates []types.Date
	Durations  []DurationOption
	MealPlans  []MealPlan

	// PriceByDuration per-person base price keyed by duration in days
	PriceByDuration map[int]float64
	// MealSupplementPerDay per-person-per-day surcharge keyed by meal plan
	MealSupplementPerDay map[MealPlan]float64

	// Per-booking guest limits
	MaxAdults   int
	MaxChildren int

	// AvailablePackages packages on offer per start date
	AvailablePackages map[types.Date]int

	FreeCancellationDaysBefore int
}

// OffersStartDate returns true if the date is one of the tour's offered dates
func (t *Tour) OffersStartDate(date types.Date) bool {
	for _, d := range t.StartDates {
		if d.Equal(date) {
			return true
		}
	}
	return false
}

// OffersDuration returns true if the day count is one of the offered durations
func (t *Tour) OffersDuration(days int) bool {
	for _, d := range t.Durations {
		if d.Days == days {
			return true
		}
	}
	return false
}

// OffersMealPlan returns true if the meal plan is offered with this tour
func (t *Tour) OffersMealPlan(plan MealPlan) bool {
	for _, m := range t.MealPlans {
		if m == plan {
			return true
		}
	}
	return false
}

// PackagesFor возвращает количество пакетов, выставленных на продажу
// для указанной даты заезда
func (t *Tour) PackagesFor(date types.Date) int {
	return t.AvailablePackages[date]
}
