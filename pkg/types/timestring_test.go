package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("08:30")
	require.NoError(t, err)
	assert.Equal(t, "08:30", ts.String())

	for _, raw := range []string{"8:3", "25:00", "10:70", "abc", "10-30"} {
		_, err := NewTimeStringFromString(raw)
		assert.ErrorIs(t, err, ErrInvalidTimeString, "raw=%q", raw)
	}
}

func TestTimeString_Minutes(t *testing.T) {
	ts, _ := NewTimeStringFromString("01:30")
	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 90, minutes)

	midnight, _ := NewTimeStringFromString("00:00")
	minutes, err = midnight.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, minutes)
}

func TestTimeString_Comparisons(t *testing.T) {
	eight, _ := NewTimeStringFromString("08:00")
	nine, _ := NewTimeStringFromString("09:00")

	assert.True(t, eight.IsBefore(nine))
	assert.False(t, nine.IsBefore(eight))
	assert.True(t, nine.IsAfter(eight))
	assert.True(t, eight.Equal(eight))
	assert.False(t, eight.Equal(nine))
}

func TestTimeString_MinutesUntil(t *testing.T) {
	eight, _ := NewTimeStringFromString("08:00")
	seventeen, _ := NewTimeStringFromString("17:00")

	minutes, err := eight.MinutesUntil(seventeen)
	require.NoError(t, err)
	assert.Equal(t, 540, minutes)

	minutes, err = seventeen.MinutesUntil(eight)
	require.NoError(t, err)
	assert.Equal(t, -540, minutes)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, _ := NewTimeStringFromString("08:45")

	result, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, "09:15", result.String())
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("08:30"))
	assert.Equal(t, "08:30", ts.String())

	// Postgres TIME приходит с секундами
	require.NoError(t, ts.Scan("14:15:00"))
	assert.Equal(t, "14:15", ts.String())

	require.NoError(t, ts.Scan([]byte("09:00:30")))
	assert.Equal(t, "09:00", ts.String())

	require.NoError(t, ts.Scan(time.Date(2026, 9, 1, 11, 20, 0, 0, time.UTC)))
	assert.Equal(t, "11:20", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	ts, _ := NewTimeStringFromString("08:30")
	v, err := ts.Value()
	require.NoError(t, err)
	assert.Equal(t, "08:30", v)

	var zero TimeString
	v, err = zero.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
