package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDateFromString(t *testing.T) {
	d, err := NewDateFromString("2026-06-01")
	require.NoError(t, err)
	assert.Equal(t, Date("2026-06-01"), d)

	for _, bad := range []string{"", "01-06-2026", "2026-13-01", "2026-06-32", "not a date"} {
		_, err := NewDateFromString(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestDate_AddDays(t *testing.T) {
	d := Date("2026-06-01")

	assert.Equal(t, Date("2026-06-08"), d.AddDays(7))
	assert.Equal(t, Date("2026-05-18"), d.AddDays(-14))
	// переход через границу месяца и года
	assert.Equal(t, Date("2027-01-05"), Date("2026-12-29").AddDays(7))
}

func TestDate_Comparison(t *testing.T) {
	a := Date("2026-06-01")
	b := Date("2026-06-15")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(Date("2026-06-01")))
}

func TestDate_Scan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2026, 6, 1, 15, 30, 0, 0, time.UTC)))
	assert.Equal(t, Date("2026-06-01"), d)

	require.NoError(t, d.Scan("2026-06-15"))
	assert.Equal(t, Date("2026-06-15"), d)

	require.NoError(t, d.Scan([]byte("2026-07-01")))
	assert.Equal(t, Date("2026-07-01"), d)

	assert.Error(t, d.Scan(42))
}

func TestDate_Value(t *testing.T) {
	v, err := Date("2026-06-01").Value()
	require.NoError(t, err)
	assert.Equal(t, "2026-06-01", v)

	_, err = Date("garbage").Value()
	assert.Error(t, err)
}
