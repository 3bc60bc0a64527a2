package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeEnrollment(status EnrollmentStatus, outcomes ...DayOutcome) *Enrollment {
	e := &Enrollment{
		ID:        1,
		StudentID: 10,
		CourseID:  100,
		Status:    status,
	}
	for i, outcome := range outcomes {
		e.Assignments = append(e.Assignments, SlotAssignment{
			EnrollmentID: 1,
			DayIndex:     i + 1,
			SlotID:       int64(i + 1),
			Outcome:      outcome,
		})
	}
	return e
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusInProgress))
	assert.True(t, CanTransition(StatusPending, StatusCancelled))
	assert.True(t, CanTransition(StatusInProgress, StatusPassed))
	assert.True(t, CanTransition(StatusInProgress, StatusFailed))
	assert.True(t, CanTransition(StatusInProgress, StatusCancelled))

	// Из конечных статусов переходов нет
	assert.False(t, CanTransition(StatusPassed, StatusInProgress))
	assert.False(t, CanTransition(StatusFailed, StatusPending))
	assert.False(t, CanTransition(StatusCancelled, StatusInProgress))

	// Обратных переходов нет
	assert.False(t, CanTransition(StatusInProgress, StatusPending))
}

func TestEnrollmentStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
	assert.True(t, StatusPassed.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestParseEnrollmentStatus(t *testing.T) {
	status, err := ParseEnrollmentStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, status)

	_, err = ParseEnrollmentStatus("unknown")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestEnrollment_IsActive(t *testing.T) {
	assert.True(t, makeEnrollment(StatusPending).IsActive())
	assert.True(t, makeEnrollment(StatusInProgress).IsActive())
	assert.False(t, makeEnrollment(StatusPassed).IsActive())
	assert.False(t, makeEnrollment(StatusCancelled).IsActive())
}

func TestEnrollment_CanBeCancelled(t *testing.T) {
	assert.True(t, makeEnrollment(StatusPending).CanBeCancelled())
	assert.True(t, makeEnrollment(StatusInProgress).CanBeCancelled())
	assert.False(t, makeEnrollment(StatusPassed).CanBeCancelled())
	assert.False(t, makeEnrollment(StatusFailed).CanBeCancelled())
	assert.False(t, makeEnrollment(StatusCancelled).CanBeCancelled())
}

func TestEnrollment_Assignment(t *testing.T) {
	e := makeEnrollment(StatusPending, OutcomePending, OutcomeCompleted)

	a, ok := e.Assignment(2)
	require.True(t, ok)
	assert.Equal(t, OutcomeCompleted, a.Outcome)

	_, ok = e.Assignment(5)
	assert.False(t, ok)
}

func TestEnrollment_StatusAfterOutcome_StillInProgress(t *testing.T) {
	// Три дня, закрывается первый - впереди еще два
	e := makeEnrollment(StatusPending, OutcomePending, OutcomePending, OutcomePending)

	assert.Equal(t, StatusInProgress, e.StatusAfterOutcome(1, OutcomeCompleted))
	assert.Equal(t, StatusInProgress, e.StatusAfterOutcome(1, OutcomeAbsent))
}

func TestEnrollment_StatusAfterOutcome_Passed(t *testing.T) {
	// Закрывается последний день при полной посещаемости
	e := makeEnrollment(StatusInProgress, OutcomeCompleted, OutcomeCompleted, OutcomePending)

	assert.Equal(t, StatusPassed, e.StatusAfterOutcome(3, OutcomeCompleted))
}

func TestEnrollment_StatusAfterOutcome_FailedOnAbsence(t *testing.T) {
	// Пропуск любого дня при закрытии последнего дает failed
	e := makeEnrollment(StatusInProgress, OutcomeAbsent, OutcomeCompleted, OutcomePending)
	assert.Equal(t, StatusFailed, e.StatusAfterOutcome(3, OutcomeCompleted))

	e = makeEnrollment(StatusInProgress, OutcomeCompleted, OutcomeCompleted, OutcomePending)
	assert.Equal(t, StatusFailed, e.StatusAfterOutcome(3, OutcomeAbsent))
}

func TestEnrollment_StatusAfterOutcome_SingleDay(t *testing.T) {
	e := makeEnrollment(StatusPending, OutcomePending)

	assert.Equal(t, StatusPassed, e.StatusAfterOutcome(1, OutcomeCompleted))
	assert.Equal(t, StatusFailed, e.StatusAfterOutcome(1, OutcomeAbsent))
}

func TestParseDayOutcome(t *testing.T) {
	outcome, err := ParseDayOutcome("completed")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, outcome)

	_, err = ParseDayOutcome("skipped")
	assert.ErrorIs(t, err, ErrInvalidOutcome)
}
