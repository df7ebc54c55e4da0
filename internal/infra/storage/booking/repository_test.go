package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TA-BookingEngine/internal/domain"
	"github.com/m04kA/TA-BookingEngine/pkg/types"
)

func TestBuildListByTourQuery_ExcludesCancelledByDefault(t *testing.T) {
	query, args, err := buildListByTourQuery(domain.TourBookingsFilter{TourID: 42})
	require.NoError(t, err)

	assert.Contains(t, query, "state IN ($2,$3,$4,$5)")
	require.Len(t, args, 1+len(domain.ActiveStates))
	assert.Equal(t, int64(42), args[0])
	for i, state := range domain.ActiveStates {
		assert.Equal(t, state, args[i+1])
	}
	assert.NotContains(t, args, domain.StateCancelled)
}

func TestBuildListByTourQuery_ExplicitStateWins(t *testing.T) {
	state := domain.StateCancelled
	query, args, err := buildListByTourQuery(domain.TourBookingsFilter{
		TourID: 42,
		State:  &state,
	})
	require.NoError(t, err)

	assert.Contains(t, query, "state = $2")
	assert.Equal(t, []interface{}{int64(42), domain.StateCancelled}, args)
}

func TestBuildListByTourQuery_IncludeCancelled(t *testing.T) {
	query, args, err := buildListByTourQuery(domain.TourBookingsFilter{
		TourID:           42,
		IncludeCancelled: true,
	})
	require.NoError(t, err)

	// предикат по состоянию отсутствует, колонка в SELECT остаётся
	assert.NotContains(t, query, "state IN")
	assert.NotContains(t, query, "state = ")
	assert.Equal(t, []interface{}{int64(42)}, args)
}

func TestBuildListByTourQuery_StartDateFilter(t *testing.T) {
	date := types.Date("2026-06-01")
	query, args, err := buildListByTourQuery(domain.TourBookingsFilter{
		TourID:    42,
		StartDate: &date,
	})
	require.NoError(t, err)

	assert.Contains(t, query, "start_date = $2")
	require.GreaterOrEqual(t, len(args), 2)
	assert.Equal(t, date, args[1])
}
