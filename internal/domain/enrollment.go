package domain

import (
	"fmt"
	"time"
)

// EnrollmentStatus статус зачисления. Замкнутое перечисление с явной
// таблицей переходов: произвольные строки и переходы не допускаются.
//
// Пер-деньные состояния исходной модели ("день 1 пройден", "день 1 пропущен"
// и т.д.) представлены парой (статус in_progress, результаты дней в
// назначениях слотов): это эквивалентно плоскому списку состояний, но
// перечисление остается замкнутым при любом числе учебных дней.
type EnrollmentStatus string

const (
	StatusPending    EnrollmentStatus = "pending"
	StatusInProgress EnrollmentStatus = "in_progress"
	StatusPassed     EnrollmentStatus = "passed"
	StatusFailed     EnrollmentStatus = "failed"
	StatusCancelled  EnrollmentStatus = "cancelled"
)

// ParseEnrollmentStatus парсит статус зачисления из строки
func ParseEnrollmentStatus(s string) (EnrollmentStatus, error) {
	switch EnrollmentStatus(s) {
	case StatusPending, StatusInProgress, StatusPassed, StatusFailed, StatusCancelled:
		return EnrollmentStatus(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// IsTerminal возвращает true для конечных статусов.
// Студент с зачислением в конечном статусе может записываться заново.
func (s EnrollmentStatus) IsTerminal() bool {
	return s == StatusPassed || s == StatusFailed || s == StatusCancelled
}

// TerminalStatuses список конечных статусов.
// Используется в guard-запросе "есть ли активное зачисление".
var TerminalStatuses = []EnrollmentStatus{StatusPassed, StatusFailed, StatusCancelled}

// statusTransitions таблица допустимых переходов статуса
var statusTransitions = map[EnrollmentStatus][]EnrollmentStatus{
	StatusPending:    {StatusInProgress, StatusPassed, StatusFailed, StatusCancelled},
	StatusInProgress: {StatusPassed, StatusFailed, StatusCancelled},
	StatusPassed:     {},
	StatusFailed:     {},
	StatusCancelled:  {},
}

// CanTransition возвращает true, если переход from -> to допустим
func CanTransition(from, to EnrollmentStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// DayOutcome результат одного учебного дня
type DayOutcome string

const (
	OutcomePending   DayOutcome = "pending"
	OutcomeCompleted DayOutcome = "completed"
	OutcomeAbsent    DayOutcome = "absent"
)

// ParseDayOutcome парсит результат учебного дня из строки
func ParseDayOutcome(s string) (DayOutcome, error) {
	switch DayOutcome(s) {
	case OutcomePending, OutcomeCompleted, OutcomeAbsent:
		return DayOutcome(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOutcome, s)
	}
}

// SlotAssignment привязка зачисления к конкретному слоту на конкретный
// учебный день. Создается атомарно вместе с зачислением при фиксации брони.
type SlotAssignment struct {
	ID           int64
	EnrollmentID int64
	DayIndex     int
	SlotID       int64
	Outcome      DayOutcome
	CreatedAt    time.Time
}

// Enrollment зачисление студента на курс вместе со снимком расчета
// стоимости и назначенными слотами
type Enrollment struct {
	ID        int64
	StudentID int64
	CourseID  int64
	Status    EnrollmentStatus

	// Снимок расчета стоимости на момент записи
	DiscountCategory DiscountCategory
	BasePrice        float64
	DiscountAmount   float64
	NetPrice         float64
	AmountDueNow     float64
	AmountDueLater   float64

	// Ссылки на артефакты внешнего хранилища, не сами файлы
	PaymentReference string
	DiscountProofRef *string
	PaymentProofRef  *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Assignments []SlotAssignment
}

// IsActive возвращает true, если зачисление не в конечном статусе.
// Системный инвариант: у студента не больше одного активного зачисления.
func (e *Enrollment) IsActive() bool {
	return !e.Status.IsTerminal()
}

// CanBeCancelled возвращает true, если зачисление можно отменить
func (e *Enrollment) CanBeCancelled() bool {
	return e.Status == StatusPending || e.Status == StatusInProgress
}

// Assignment возвращает назначение слота на указанный день
func (e *Enrollment) Assignment(dayIndex int) (*SlotAssignment, bool) {
	for i := range e.Assignments {
		if e.Assignments[i].DayIndex == dayIndex {
			return &e.Assignments[i], true
		}
	}
	return nil, false
}

// StatusAfterOutcome вычисляет статус зачисления после записи результата
// дня dayIndex: пока остаются незакрытые дни - in_progress; когда закрыт
// последний день - passed при полной посещаемости, иначе failed.
func (e *Enrollment) StatusAfterOutcome(dayIndex int, outcome DayOutcome) EnrollmentStatus {
	recorded := 0
	absent := outcome == OutcomeAbsent

	for _, a := range e.Assignments {
		o := a.Outcome
		if a.DayIndex == dayIndex {
			o = outcome
		}
		if o != OutcomePending {
			recorded++
		}
		if o == OutcomeAbsent {
			absent = true
		}
	}

	if recorded < len(e.Assignments) {
		return StatusInProgress
	}
	if absent {
		return StatusFailed
	}
	return StatusPassed
}
