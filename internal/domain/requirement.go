package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/m04kA/DSP-EnrollmentService/pkg/types"
)

// TimeWindowKind вид временного окна требования
type TimeWindowKind string

const (
	// WindowFlexible принимает слот с любым временем начала
	WindowFlexible TimeWindowKind = "flexible"
	// WindowFixed принимает только слоты с заданным временем начала
	WindowFixed TimeWindowKind = "fixed"
)

// TimeWindow временное окно требования: либо гибкое, либо с фиксированным
// временем начала. Именованные окна ("morning", "afternoon") раскрываются
// в канонические времена начала при парсинге.
type TimeWindow struct {
	Kind  TimeWindowKind
	Start types.TimeString // Заполнено только для WindowFixed
}

// ParseTimeWindow парсит временное окно из строкового описания каталога.
// Поддерживаемые формы:
//   - "flexible" или пустая строка - гибкое окно
//   - "morning" / "afternoon" - именованные окна (08:00 / 13:00)
//   - "HH:MM-HH:MM" - фиксированный диапазон, матчится по времени начала
//   - "HH:MM" - фиксированное время начала
func ParseTimeWindow(s string) (TimeWindow, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "flexible":
		return TimeWindow{Kind: WindowFlexible}, nil
	case "morning":
		return TimeWindow{Kind: WindowFixed, Start: MorningStartTime}, nil
	case "afternoon":
		return TimeWindow{Kind: WindowFixed, Start: AfternoonStartTime}, nil
	}

	spec := strings.TrimSpace(s)
	if idx := strings.Index(spec, "-"); idx >= 0 {
		start, err := types.NewTimeStringFromString(spec[:idx])
		if err != nil {
			return TimeWindow{}, fmt.Errorf("%w: %q", ErrInvalidTimeWindow, s)
		}
		end, err := types.NewTimeStringFromString(spec[idx+1:])
		if err != nil {
			return TimeWindow{}, fmt.Errorf("%w: %q", ErrInvalidTimeWindow, s)
		}
		if !start.IsBefore(end) {
			return TimeWindow{}, fmt.Errorf("%w: start must be before end in %q", ErrInvalidTimeWindow, s)
		}
		return TimeWindow{Kind: WindowFixed, Start: start}, nil
	}

	start, err := types.NewTimeStringFromString(spec)
	if err != nil {
		return TimeWindow{}, fmt.Errorf("%w: %q", ErrInvalidTimeWindow, s)
	}
	return TimeWindow{Kind: WindowFixed, Start: start}, nil
}

// Matches возвращает true, если слот с указанным временем начала
// попадает в окно
func (w TimeWindow) Matches(start types.TimeString) bool {
	if w.Kind == WindowFlexible {
		return true
	}
	return w.Start.Equal(start)
}

// String возвращает строковое представление окна
func (w TimeWindow) String() string {
	if w.Kind == WindowFlexible {
		return string(WindowFlexible)
	}
	return w.Start.String()
}

// DayRequirement требование к одному учебному дню курса
type DayRequirement struct {
	DayIndex      int     // Порядковый номер дня, начиная с 1
	DurationHours float64 // Требуемая учебная длительность в часах
	Window        TimeWindow
}

// MatchesDuration возвращает true, если длительность слота совпадает
// с требуемой в пределах допуска
func (d DayRequirement) MatchesDuration(hours, tolerance float64) bool {
	return math.Abs(hours-d.DurationHours) <= tolerance
}

// ScheduleRequirement опубликованное требование расписания курса:
// упорядоченный список требований по дням
type ScheduleRequirement struct {
	CourseID int64
	Days     []DayRequirement
}

// Validate проверяет инварианты требования: список непустой, номера дней
// идут подряд начиная с 1, длительности положительные
func (r *ScheduleRequirement) Validate() error {
	if len(r.Days) == 0 {
		return fmt.Errorf("%w: no day requirements", ErrInvalidRequirement)
	}
	for i, day := range r.Days {
		if day.DayIndex != i+1 {
			return fmt.Errorf("%w: day index %d at position %d, expected %d",
				ErrInvalidRequirement, day.DayIndex, i, i+1)
		}
		if day.DurationHours <= 0 {
			return fmt.Errorf("%w: non-positive duration for day %d", ErrInvalidRequirement, day.DayIndex)
		}
	}
	return nil
}

// RequiredCount возвращает число учебных дней курса (N)
func (r *ScheduleRequirement) RequiredCount() int {
	return len(r.Days)
}

// NextDay возвращает требование для следующего незаполненного дня
// при selectedCount уже выбранных слотах. Второе значение false, если
// выбор уже полон.
func (r *ScheduleRequirement) NextDay(selectedCount int) (DayRequirement, bool) {
	if selectedCount < 0 || selectedCount >= len(r.Days) {
		return DayRequirement{}, false
	}
	return r.Days[selectedCount], true
}
