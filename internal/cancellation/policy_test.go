package cancellation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/TA-BookingEngine/internal/domain"
	"github.com/m04kA/TA-BookingEngine/pkg/types"
)

func TestClassify(t *testing.T) {
	tour := &domain.Tour{ID: 1, FreeCancellationDaysBefore: 10}
	startDate := types.Date("2025-06-15")

	tests := []struct {
		name       string
		asOf       types.Date
		wantFree   bool
		wantCutoff types.Date
	}{
		{
			name:       "well before cutoff",
			asOf:       types.Date("2025-06-01"),
			wantFree:   true,
			wantCutoff: types.Date("2025-06-05"),
		},
		{
			name:       "on cutoff date is still free",
			asOf:       types.Date("2025-06-05"),
			wantFree:   true,
			wantCutoff: types.Date("2025-06-05"),
		},
		{
			name:       "after cutoff is chargeable",
			asOf:       types.Date("2025-06-10"),
			wantFree:   false,
			wantCutoff: types.Date("2025-06-05"),
		},
		{
			name:       "on start date is chargeable",
			asOf:       types.Date("2025-06-15"),
			wantFree:   false,
			wantCutoff: types.Date("2025-06-05"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tour, startDate, tt.asOf)
			assert.Equal(t, tt.wantFree, got.Free)
			assert.Equal(t, tt.wantCutoff, got.CutoffDate)
		})
	}
}

func TestClassify_ZeroWindow(t *testing.T) {
	// freeCancellationDaysBefore = 0: бесплатно вплоть до даты заезда включительно
	tour := &domain.Tour{ID: 2, FreeCancellationDaysBefore: 0}
	startDate := types.Date("2025-06-15")

	got := Classify(tour, startDate, types.Date("2025-06-15"))
	assert.True(t, got.Free)
	assert.Equal(t, startDate, got.CutoffDate)

	got = Classify(tour, startDate, types.Date("2025-06-16"))
	assert.False(t, got.Free)
}
