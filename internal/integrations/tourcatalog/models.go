package tourcatalog

import (
	"fmt"
	"strconv"

	"github.com/m04kA/TA-BookingEngine/internal/domain"
	"github.com/m04kA/TA-BookingEngine/pkg/types"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// tourResponse wire-модель тура из TourCatalog
type tourResponse struct {
	ID          int64    `json:"id"`
	Destination string   `json:"destination"`
	StartDates  []string `json:"startDates"`
	Durations   []struct {
		Days  int    `json:"days"`
		Label string `json:"label"`
	} `json:"durations"`
	MealPlans []string `json:"mealPlans"`
	// Ключи числовые (дни), но в JSON приходят строками
	PriceByDuration            map[string]float64 `json:"priceByDuration"`
	MealSupplementPerDay       map[string]float64 `json:"mealSupplementPerDay"`
	MaxAdults                  int                `json:"maxAdults"`
	MaxChildren                int                `json:"maxChildren"`
	AvailablePackages          map[string]int     `json:"availablePackages"`
	FreeCancellationDaysBefore int                `json:"freeCancellationDaysBefore"`
}

// toDomain конвертирует wire-модель в доменную
func (r *tourResponse) toDomain() (*domain.Tour, error) {
	tour := &domain.Tour{
		ID:                         r.ID,
		Destination:                r.Destination,
		MaxAdults:                  r.MaxAdults,
		MaxChildren:                r.MaxChildren,
		FreeCancellationDaysBefore: r.FreeCancellationDaysBefore,
		PriceByDuration:            make(map[int]float64, len(r.PriceByDuration)),
		MealSupplementPerDay:       make(map[domain.MealPlan]float64, len(r.MealSupplementPerDay)),
		AvailablePackages:          make(map[types.Date]int, len(r.AvailablePackages)),
	}

	for _, s := range r.StartDates {
		date, err := types.NewDateFromString(s)
		if err != nil {
			return nil, fmt.Errorf("start date %q: %v", s, err)
		}
		tour.StartDates = append(tour.StartDates, date)
	}

	for _, d := range r.Durations {
		tour.Durations = append(tour.Durations, domain.DurationOption{Days: d.Days, Label: d.Label})
	}

	for _, m := range r.MealPlans {
		plan, ok := domain.ParseMealPlan(m)
		if !ok {
			return nil, fmt.Errorf("unknown meal plan %q", m)
		}
		tour.MealPlans = append(tour.MealPlans, plan)
	}

	for key, price := range r.PriceByDuration {
		days, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("price duration key %q: %v", key, err)
		}
		tour.PriceByDuration[days] = price
	}

	for key, supplement := range r.MealSupplementPerDay {
		plan, ok := domain.ParseMealPlan(key)
		if !ok {
			return nil, fmt.Errorf("supplement meal plan key %q", key)
		}
		tour.MealSupplementPerDay[plan] = supplement
	}

	for key, packages := range r.AvailablePackages {
		date, err := types.NewDateFromString(key)
		if err != nil {
			return nil, fmt.Errorf("packages date key %q: %v", key, err)
		}
		tour.AvailablePackages[date] = packages
	}

	return tour, nil
}
