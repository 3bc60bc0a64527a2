package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DSP-EnrollmentService/pkg/types"
)

func TestParseTimeWindow_Flexible(t *testing.T) {
	for _, raw := range []string{"", "flexible", "Flexible", " FLEXIBLE "} {
		window, err := ParseTimeWindow(raw)
		require.NoError(t, err, "raw=%q", raw)
		assert.Equal(t, WindowFlexible, window.Kind)
	}
}

func TestParseTimeWindow_Named(t *testing.T) {
	window, err := ParseTimeWindow("morning")
	require.NoError(t, err)
	assert.Equal(t, WindowFixed, window.Kind)
	assert.Equal(t, "08:00", window.Start.String())

	window, err = ParseTimeWindow("afternoon")
	require.NoError(t, err)
	assert.Equal(t, "13:00", window.Start.String())
}

func TestParseTimeWindow_Range(t *testing.T) {
	window, err := ParseTimeWindow("09:30-13:30")
	require.NoError(t, err)
	assert.Equal(t, WindowFixed, window.Kind)
	assert.Equal(t, "09:30", window.Start.String())

	_, err = ParseTimeWindow("14:00-09:00")
	assert.ErrorIs(t, err, ErrInvalidTimeWindow)
}

func TestParseTimeWindow_FixedStart(t *testing.T) {
	window, err := ParseTimeWindow("10:15")
	require.NoError(t, err)
	assert.Equal(t, WindowFixed, window.Kind)
	assert.Equal(t, "10:15", window.Start.String())
}

func TestParseTimeWindow_Invalid(t *testing.T) {
	for _, raw := range []string{"evening", "25:00", "10:70", "abc-def"} {
		_, err := ParseTimeWindow(raw)
		assert.ErrorIs(t, err, ErrInvalidTimeWindow, "raw=%q", raw)
	}
}

func TestTimeWindow_Matches(t *testing.T) {
	flexible := TimeWindow{Kind: WindowFlexible}
	eight, _ := types.NewTimeStringFromString("08:00")
	nine, _ := types.NewTimeStringFromString("09:00")

	assert.True(t, flexible.Matches(eight))
	assert.True(t, flexible.Matches(nine))

	fixed := TimeWindow{Kind: WindowFixed, Start: eight}
	assert.True(t, fixed.Matches(eight))
	assert.False(t, fixed.Matches(nine))
}

func TestScheduleRequirement_Validate(t *testing.T) {
	valid := &ScheduleRequirement{
		CourseID: 1,
		Days: []DayRequirement{
			{DayIndex: 1, DurationHours: 8},
			{DayIndex: 2, DurationHours: 8},
			{DayIndex: 3, DurationHours: 4},
		},
	}
	assert.NoError(t, valid.Validate())

	empty := &ScheduleRequirement{CourseID: 1}
	assert.ErrorIs(t, empty.Validate(), ErrInvalidRequirement)

	gap := &ScheduleRequirement{
		CourseID: 1,
		Days: []DayRequirement{
			{DayIndex: 1, DurationHours: 8},
			{DayIndex: 3, DurationHours: 8},
		},
	}
	assert.ErrorIs(t, gap.Validate(), ErrInvalidRequirement)

	fromZero := &ScheduleRequirement{
		CourseID: 1,
		Days:     []DayRequirement{{DayIndex: 0, DurationHours: 8}},
	}
	assert.ErrorIs(t, fromZero.Validate(), ErrInvalidRequirement)

	zeroDuration := &ScheduleRequirement{
		CourseID: 1,
		Days:     []DayRequirement{{DayIndex: 1, DurationHours: 0}},
	}
	assert.ErrorIs(t, zeroDuration.Validate(), ErrInvalidRequirement)
}

func TestScheduleRequirement_NextDay(t *testing.T) {
	req := &ScheduleRequirement{
		CourseID: 1,
		Days: []DayRequirement{
			{DayIndex: 1, DurationHours: 8},
			{DayIndex: 2, DurationHours: 4},
		},
	}

	day, ok := req.NextDay(0)
	require.True(t, ok)
	assert.Equal(t, 1, day.DayIndex)

	day, ok = req.NextDay(1)
	require.True(t, ok)
	assert.Equal(t, 2, day.DayIndex)

	_, ok = req.NextDay(2)
	assert.False(t, ok)

	_, ok = req.NextDay(-1)
	assert.False(t, ok)
}

func TestDayRequirement_MatchesDuration(t *testing.T) {
	day := DayRequirement{DayIndex: 1, DurationHours: 8}

	assert.True(t, day.MatchesDuration(8.0, 0.05))
	assert.True(t, day.MatchesDuration(8.05, 0.05))
	assert.True(t, day.MatchesDuration(7.95, 0.05))
	assert.False(t, day.MatchesDuration(8.1, 0.05))
	assert.False(t, day.MatchesDuration(7.5, 0.05))
}
