package models

import (
	"time"

	"github.com/m04kA/DSP-EnrollmentService/internal/domain"
)

// Request модели

// GetStudentEnrollmentsRequest запрос на получение истории зачислений студента
type GetStudentEnrollmentsRequest struct {
	StudentID int64   `json:"studentId"`
	Status    *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// CancelEnrollmentRequest запрос на отмену зачисления
type CancelEnrollmentRequest struct {
	UserID             int64  `json:"userId"`
	IsStaff            bool   `json:"-"`
	CancellationReason string `json:"cancellationReason"`
}

// RecordDayOutcomeRequest запрос на запись результата учебного дня
type RecordDayOutcomeRequest struct {
	UserID   int64  `json:"userId"`
	IsStaff  bool   `json:"-"`
	DayIndex int    `json:"dayIndex"`
	Outcome  string `json:"outcome"` // completed | absent
}

// Response модели

// EnrollmentResponse ответ с данными зачисления
type EnrollmentResponse struct {
	ID        int64  `json:"id"`
	StudentID int64  `json:"studentId"`
	CourseID  int64  `json:"courseId"`
	Status    string `json:"status"`

	DiscountCategory string  `json:"discountCategory"`
	BasePrice        float64 `json:"basePrice"`
	DiscountAmount   float64 `json:"discountAmount"`
	NetPrice         float64 `json:"netPrice"`
	AmountDueNow     float64 `json:"amountDueNow"`
	AmountDueLater   float64 `json:"amountDueLater"`

	PaymentReference string  `json:"paymentReference"`
	DiscountProofRef *string `json:"discountProofRef,omitempty"`
	PaymentProofRef  *string `json:"paymentProofRef,omitempty"`

	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`

	Assignments []AssignmentResponse `json:"assignments"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AssignmentResponse назначение слота на учебный день
type AssignmentResponse struct {
	DayIndex int    `json:"dayIndex"`
	SlotID   int64  `json:"slotId"`
	Outcome  string `json:"outcome"`
}

// EnrollmentListResponse ответ со списком зачислений
type EnrollmentListResponse struct {
	Enrollments []EnrollmentResponse `json:"enrollments"`
	Total       int                  `json:"total"`
}

// FromDomainEnrollment конвертирует domain зачисление в response модель
func FromDomainEnrollment(e *domain.Enrollment) *EnrollmentResponse {
	assignments := make([]AssignmentResponse, 0, len(e.Assignments))
	for _, a := range e.Assignments {
		assignments = append(assignments, AssignmentResponse{
			DayIndex: a.DayIndex,
			SlotID:   a.SlotID,
			Outcome:  string(a.Outcome),
		})
	}

	return &EnrollmentResponse{
		ID:                 e.ID,
		StudentID:          e.StudentID,
		CourseID:           e.CourseID,
		Status:             string(e.Status),
		DiscountCategory:   string(e.DiscountCategory),
		BasePrice:          e.BasePrice,
		DiscountAmount:     e.DiscountAmount,
		NetPrice:           e.NetPrice,
		AmountDueNow:       e.AmountDueNow,
		AmountDueLater:     e.AmountDueLater,
		PaymentReference:   e.PaymentReference,
		DiscountProofRef:   e.DiscountProofRef,
		PaymentProofRef:    e.PaymentProofRef,
		CancellationReason: e.CancellationReason,
		CancelledAt:        e.CancelledAt,
		Assignments:        assignments,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

// FromDomainEnrollmentList конвертирует список domain зачислений
func FromDomainEnrollmentList(enrollments []*domain.Enrollment) *EnrollmentListResponse {
	out := make([]EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		out = append(out, *FromDomainEnrollment(e))
	}
	return &EnrollmentListResponse{
		Enrollments: out,
		Total:       len(out),
	}
}
