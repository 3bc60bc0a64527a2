package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/DSP-EnrollmentService/pkg/types"
)

// CourseClassification тип курса: теоретический или практический.
// Практические занятия требуют учебного автомобиля, поэтому у их слотов
// учитывается не только число мест, но и число свободных автомобилей.
type CourseClassification string

const (
	ClassificationTheoretical CourseClassification = "theoretical"
	ClassificationPractical   CourseClassification = "practical"
)

// ParseCourseClassification парсит тип курса из строки
func ParseCourseClassification(s string) (CourseClassification, error) {
	switch CourseClassification(s) {
	case ClassificationTheoretical, ClassificationPractical:
		return CourseClassification(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidClassification, s)
	}
}

// Slot бронируемый учебный слот: дата, интервал времени и остаток ёмкости
type Slot struct {
	ID                int64
	CourseID          int64
	Classification    CourseClassification
	Date              time.Time // Дата слота (без времени)
	StartTime         types.TimeString
	EndTime           types.TimeString
	TotalSeats        int
	RemainingSeats    int
	TotalVehicles     int
	RemainingVehicles int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RequiresVehicle возвращает true, если для записи в слот нужен автомобиль
func (s *Slot) RequiresVehicle() bool {
	return s.Classification == ClassificationPractical
}

// IsEligible возвращает true, если слот доступен для записи:
// есть свободные места, а для практических курсов - еще и свободный автомобиль
func (s *Slot) IsEligible() bool {
	if s.RemainingSeats <= 0 {
		return false
	}
	if s.RequiresVehicle() && s.RemainingVehicles <= 0 {
		return false
	}
	return true
}

// IsFull возвращает true, если в слоте не осталось мест
func (s *Slot) IsFull() bool {
	return s.RemainingSeats <= 0
}

// RawClockSpanHours возвращает "грязную" длительность слота в часах -
// разницу между временем конца и начала без учета перерывов
func (s *Slot) RawClockSpanHours() float64 {
	minutes, err := s.StartTime.MinutesUntil(s.EndTime)
	if err != nil || minutes < 0 {
		return 0
	}
	return float64(minutes) / 60.0
}

// DurationHours возвращает учебную длительность слота в часах.
// Полнодневные слоты (от 8 часов по часам) включают часовой обеденный
// перерыв, который в учебное время не входит.
func (s *Slot) DurationHours() float64 {
	raw := s.RawClockSpanHours()
	if raw >= FullDayClockSpanHours {
		return raw - LunchBreakHours
	}
	return raw
}

// SlotFilter фильтр для выборки слотов из пула
type SlotFilter struct {
	CourseID       int64                 // Обязательный параметр
	Classification *CourseClassification // Фильтр по типу курса (опционально)
	FromDate       *time.Time            // Не раньше даты (обычно "сегодня")
	ToDate         *time.Time            // Не позже даты (опционально)
	OnlyEligible   bool                  // Только слоты с доступной ёмкостью
}
