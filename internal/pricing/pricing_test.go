package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TA-BookingEngine/internal/domain"
)

func testTour() *domain.Tour {
	return &domain.Tour{
		ID: 1,
		PriceByDuration: map[int]float64{
			7:  1000,
			10: 1300,
		},
		MealSupplementPerDay: map[domain.MealPlan]float64{
			domain.MealBB: 0,
			domain.MealHB: 15,
			domain.MealAI: 40,
		},
	}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		mealPlan domain.MealPlan
		guests   domain.GuestCounts
		want     float64
	}{
		{
			name:     "single adult, no supplement",
			duration: 7,
			mealPlan: domain.MealBB,
			guests:   domain.GuestCounts{Adults: 1},
			want:     1000,
		},
		{
			name:     "supplement multiplied by days",
			duration: 7,
			mealPlan: domain.MealHB,
			guests:   domain.GuestCounts{Adults: 1},
			want:     1000 + 15*7,
		},
		{
			name:     "children priced as adults",
			duration: 10,
			mealPlan: domain.MealAI,
			guests:   domain.GuestCounts{Adults: 2, Children: 2},
			want:     (1300 + 40*10) * 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(testTour(), tt.duration, tt.mealPlan, tt.guests)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompute_MonotonicInGuestCount(t *testing.T) {
	tour := testTour()

	prev := 0.0
	for adults := 1; adults <= 6; adults++ {
		got, err := Compute(tour, 7, domain.MealHB, domain.GuestCounts{Adults: adults})
		require.NoError(t, err)
		assert.Greater(t, got, prev, "price must grow with guest count")
		prev = got
	}
}

func TestCompute_UnknownRates(t *testing.T) {
	tour := testTour()

	_, err := Compute(tour, 14, domain.MealBB, domain.GuestCounts{Adults: 1})
	assert.ErrorIs(t, err, ErrNoRateForDuration)

	_, err = Compute(tour, 7, domain.MealFB, domain.GuestCounts{Adults: 1})
	assert.ErrorIs(t, err, ErrNoRateForMealPlan)
}
