package create_enrollment

import (
	"time"

	"github.com/m04kA/DSP-EnrollmentService/internal/domain"
	createEnrollment "github.com/m04kA/DSP-EnrollmentService/internal/usecase/create_enrollment"
)

// CreateEnrollmentRequest HTTP request model
type CreateEnrollmentRequest struct {
	CourseID         int64   `json:"courseId"`
	SlotIDs          []int64 `json:"slotIds"`
	DiscountCategory string  `json:"discountCategory,omitempty"`
	DiscountProofRef *string `json:"discountProofRef,omitempty"`
	PaymentReference string  `json:"paymentReference"`
	PaymentProofRef  *string `json:"paymentProofRef,omitempty"`
}

// EnrollmentResponse HTTP response model
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

	Assignments []Assignment `json:"assignments"`
	CreatedAt   string       `json:"createdAt"`
}

// Assignment назначение слота на учебный день
type Assignment struct {
	DayIndex int    `json:"dayIndex"`
	SlotID   int64  `json:"slotId"`
	Date     string `json:"date"`
	Outcome  string `json:"outcome"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateEnrollmentRequest) ToUseCaseRequest(studentID int64) *createEnrollment.Request {
	return &createEnrollment.Request{
		StudentID:        studentID,
		CourseID:         r.CourseID,
		SlotIDs:          r.SlotIDs,
		DiscountCategory: r.DiscountCategory,
		DiscountProofRef: r.DiscountProofRef,
		PaymentReference: r.PaymentReference,
		PaymentProofRef:  r.PaymentProofRef,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createEnrollment.Response) *EnrollmentResponse {
	assignments := make([]Assignment, 0, len(resp.Assignments))
	for _, a := range resp.Assignments {
		assignments = append(assignments, Assignment{
			DayIndex: a.DayIndex,
			SlotID:   a.SlotID,
			Date:     a.Date.Format(domain.DateFormat),
			Outcome:  a.Outcome,
		})
	}

	return &EnrollmentResponse{
		ID:               resp.ID,
		StudentID:        resp.StudentID,
		CourseID:         resp.CourseID,
		Status:           resp.Status,
		DiscountCategory: resp.DiscountCategory,
		BasePrice:        resp.BasePrice,
		DiscountAmount:   resp.DiscountAmount,
		NetPrice:         resp.NetPrice,
		AmountDueNow:     resp.AmountDueNow,
		AmountDueLater:   resp.AmountDueLater,
		PaymentReference: resp.PaymentReference,
		DiscountProofRef: resp.DiscountProofRef,
		PaymentProofRef:  resp.PaymentProofRef,
		Assignments:      assignments,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
	}
}
