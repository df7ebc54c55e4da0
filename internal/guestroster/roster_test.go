package guestroster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TA-BookingEngine/internal/domain"
)

func adult(first, last string) domain.GuestEntry {
	return domain.GuestEntry{Type: domain.GuestAdult, FirstName: first, LastName: last}
}

func child(first, last string) domain.GuestEntry {
	return domain.GuestEntry{Type: domain.GuestChild, FirstName: first, LastName: last}
}

func TestNormalize_GrowAdults(t *testing.T) {
	existing := []domain.GuestEntry{adult("Anna", "Smith"), adult("Bob", "Smith")}

	got := Normalize(existing, 3, 0)

	require.Len(t, got, 3)
	assert.Equal(t, adult("Anna", "Smith"), got[0])
	assert.Equal(t, adult("Bob", "Smith"), got[1])
	assert.True(t, got[2].IsEmpty())
	assert.Equal(t, domain.GuestAdult, got[2].Type)
}

func TestNormalize_ShrinkAdults(t *testing.T) {
	existing := []domain.GuestEntry{adult("Anna", "Smith"), adult("Bob", "Smith")}

	got := Normalize(existing, 1, 0)

	require.Len(t, got, 1)
	assert.Equal(t, adult("Anna", "Smith"), got[0])
}

func TestNormalize_ChildrenKeptWhenAdultsChange(t *testing.T) {
	existing := []domain.GuestEntry{
		adult("Anna", "Smith"),
		adult("Bob", "Smith"),
		child("Kim", "Smith"),
	}

	// Уменьшение взрослых не должно затрагивать детей
	got := Normalize(existing, 1, 1)

	require.Len(t, got, 2)
	assert.Equal(t, adult("Anna", "Smith"), got[0])
	assert.Equal(t, child("Kim", "Smith"), got[1])
}

func TestNormalize_OrderIndependent(t *testing.T) {
	existing := []domain.GuestEntry{
		adult("Anna", "Smith"),
		child("Kim", "Smith"),
	}

	// Один шаг против двух последовательных: результат идентичен
	oneStep := Normalize(existing, 2, 2)
	twoStep := Normalize(Normalize(existing, 2, 1), 2, 2)

	assert.Equal(t, oneStep, twoStep)
	require.Len(t, oneStep, 4)
	assert.Equal(t, domain.GuestAdult, oneStep[1].Type)
	assert.Equal(t, domain.GuestChild, oneStep[3].Type)
}

func TestNormalize_TargetLength(t *testing.T) {
	existing := []domain.GuestEntry{adult("Anna", "Smith")}

	for _, counts := range []domain.GuestCounts{
		{Adults: 1, Children: 0},
		{Adults: 4, Children: 3},
		{Adults: 2, Children: 5},
	} {
		got := Normalize(existing, counts.Adults, counts.Children)
		assert.Len(t, got, counts.Total())
	}
}

func TestFillTypes(t *testing.T) {
	guests := domain.GuestCounts{Adults: 2, Children: 1}

	t.Run("omitted types inferred positionally", func(t *testing.T) {
		entries := []domain.GuestEntry{
			{FirstName: "Anna", LastName: "Smith"},
			{FirstName: "Boris", LastName: "Smith"},
			{FirstName: "Kim", LastName: "Smith"},
		}

		got := FillTypes(entries, guests)

		require.Len(t, got, 3)
		assert.Equal(t, adult("Anna", "Smith"), got[0])
		assert.Equal(t, adult("Boris", "Smith"), got[1])
		assert.Equal(t, child("Kim", "Smith"), got[2])
		// Вывод типов проходит валидацию порядка
		assert.NoError(t, ValidateEntries(got, guests))
	})

	t.Run("explicit types untouched", func(t *testing.T) {
		entries := []domain.GuestEntry{
			adult("Anna", "Smith"),
			{FirstName: "Boris", LastName: "Smith"},
			child("Kim", "Smith"),
		}

		got := FillTypes(entries, guests)

		assert.Equal(t, domain.GuestAdult, got[1].Type)
		assert.Equal(t, domain.GuestChild, got[2].Type)
	})

	t.Run("input slice not mutated", func(t *testing.T) {
		entries := []domain.GuestEntry{{FirstName: "Anna", LastName: "Smith"}}

		FillTypes(entries, domain.GuestCounts{Adults: 1})

		assert.Empty(t, entries[0].Type)
	})
}

func TestValidateCounts(t *testing.T) {
	tour := &domain.Tour{MaxAdults: 4, MaxChildren: 3}

	tests := []struct {
		name    string
		guests  domain.GuestCounts
		wantErr bool
	}{
		{"valid", domain.GuestCounts{Adults: 2, Children: 1}, false},
		{"max allowed", domain.GuestCounts{Adults: 4, Children: 3}, false},
		{"no adults", domain.GuestCounts{Adults: 0, Children: 1}, true},
		{"negative children", domain.GuestCounts{Adults: 1, Children: -1}, true},
		{"too many adults", domain.GuestCounts{Adults: 5, Children: 0}, true},
		{"too many children", domain.GuestCounts{Adults: 1, Children: 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCounts(tour, tt.guests)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCounts)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEntries(t *testing.T) {
	guests := domain.GuestCounts{Adults: 1, Children: 1}

	t.Run("valid", func(t *testing.T) {
		err := ValidateEntries([]domain.GuestEntry{
			adult("Anna-Maria", "O'Brien"),
			child("Kim", "Van Dijk"),
		}, guests)
		assert.NoError(t, err)
	})

	t.Run("count mismatch", func(t *testing.T) {
		err := ValidateEntries([]domain.GuestEntry{adult("Anna", "Smith")}, guests)
		assert.ErrorIs(t, err, ErrEntryCountMismatch)
	})

	t.Run("children before adults", func(t *testing.T) {
		err := ValidateEntries([]domain.GuestEntry{
			child("Kim", "Smith"),
			adult("Anna", "Smith"),
		}, guests)
		assert.ErrorIs(t, err, ErrEntryOrder)
	})

	t.Run("non-latin name", func(t *testing.T) {
		err := ValidateEntries([]domain.GuestEntry{
			adult("Анна", "Smith"),
			child("Kim", "Smith"),
		}, guests)
		assert.ErrorIs(t, err, ErrInvalidName)
	})

	t.Run("too short name", func(t *testing.T) {
		err := ValidateEntries([]domain.GuestEntry{
			adult("A", "Smith"),
			child("Kim", "Smith"),
		}, guests)
		assert.ErrorIs(t, err, ErrInvalidName)
	})

	t.Run("digits rejected", func(t *testing.T) {
		err := ValidateEntries([]domain.GuestEntry{
			adult("Anna2", "Smith"),
			child("Kim", "Smith"),
		}, guests)
		assert.ErrorIs(t, err, ErrInvalidName)
	})
}
