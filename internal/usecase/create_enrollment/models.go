package create_enrollment

import (
	"fmt"
	"time"

	"github.com/m04kA/DSP-EnrollmentService/internal/domain"
	"github.com/m04kA/DSP-EnrollmentService/internal/integrations/catalogservice"
)

// Request модель запроса на фиксацию зачисления
type Request struct {
	StudentID        int64    // ID студента
	CourseID         int64    // ID курса
	SlotIDs          []int64  // Полный набор выбранных слотов в порядке дней
	DiscountCategory string   // none | pwd | senior
	DiscountProofRef *string  // Ссылка на подтверждение льготы (обязательна при льготе)
	PaymentReference string   // Ссылка на платеж из платежной системы
	PaymentProofRef  *string  // Ссылка на подтверждение оплаты (опционально)
}

// Response модель ответа с созданным зачислением
type Response struct {
	ID        int64
	StudentID int64
	CourseID  int64
	Status    string

	DiscountCategory string
	BasePrice        float64
	DiscountAmount   float64
	NetPrice         float64
	AmountDueNow     float64
	AmountDueLater   float64

	PaymentReference string
	DiscountProofRef *string
	PaymentProofRef  *string

	Assignments []Assignment
	CreatedAt   time.Time
}

// Assignment назначение слота на учебный день в ответе
type Assignment struct {
	DayIndex int
	SlotID   int64
	Date     time.Time
	Outcome  string
}

// toResponse конвертирует созданное зачисление в модель ответа
func toResponse(e *domain.Enrollment, slotsByID map[int64]*domain.Slot) *Response {
	assignments := make([]Assignment, 0, len(e.Assignments))
	for _, a := range e.Assignments {
		out := Assignment{
			DayIndex: a.DayIndex,
			SlotID:   a.SlotID,
			Outcome:  string(a.Outcome),
		}
		if slot, ok := slotsByID[a.SlotID]; ok {
			out.Date = slot.Date
		}
		assignments = append(assignments, out)
	}

	return &Response{
		ID:               e.ID,
		StudentID:        e.StudentID,
		CourseID:         e.CourseID,
		Status:           string(e.Status),
		DiscountCategory: string(e.DiscountCategory),
		BasePrice:        e.BasePrice,
		DiscountAmount:   e.DiscountAmount,
		NetPrice:         e.NetPrice,
		AmountDueNow:     e.AmountDueNow,
		AmountDueLater:   e.AmountDueLater,
		PaymentReference: e.PaymentReference,
		DiscountProofRef: e.DiscountProofRef,
		PaymentProofRef:  e.PaymentProofRef,
		Assignments:      assignments,
		CreatedAt:        e.CreatedAt,
	}
}

// toDomainRequirement конвертирует требование расписания из DTO каталога
// в domain модель. Число дней сверяется с requiredScheduleCount курса:
// расхождение означает несогласованные данные каталога.
func toDomainRequirement(dto *catalogservice.ScheduleRequirement, requiredCount int) (*domain.ScheduleRequirement, error) {
	if len(dto.Days) != requiredCount {
		return nil, fmt.Errorf("requirement has %d days, course requires %d", len(dto.Days), requiredCount)
	}

	requirement := &domain.ScheduleRequirement{
		CourseID: dto.CourseID,
		Days:     make([]domain.DayRequirement, 0, len(dto.Days)),
	}

	for _, day := range dto.Days {
		window, err := domain.ParseTimeWindow(day.TimeWindow)
		if err != nil {
			return nil, fmt.Errorf("day %d: %w", day.DayIndex, err)
		}
		requirement.Days = append(requirement.Days, domain.DayRequirement{
			DayIndex:      day.DayIndex,
			DurationHours: day.DurationHours,
			Window:        window,
		})
	}

	if err := requirement.Validate(); err != nil {
		return nil, err
	}

	return requirement, nil
}
