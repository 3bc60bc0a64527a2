package quote_enrollment

import (
	quoteEnrollment "github.com/m04kA/DSP-EnrollmentService/internal/usecase/quote_enrollment"
)

// QuoteResponse HTTP response model
type QuoteResponse struct {
	CourseID         int64   `json:"courseId"`
	CourseName       string  `json:"courseName"`
	Modality         string  `json:"modality"`
	DiscountCategory string  `json:"discountCategory"`
	BasePrice        float64 `json:"basePrice"`
	DiscountAmount   float64 `json:"discountAmount"`
	NetPrice         float64 `json:"netPrice"`
	AmountDueNow     float64 `json:"amountDueNow"`
	AmountDueLater   float64 `json:"amountDueLater"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *quoteEnrollment.Response) *QuoteResponse {
	return &QuoteResponse{
		CourseID:         resp.CourseID,
		CourseName:       resp.CourseName,
		Modality:         resp.Modality,
		DiscountCategory: resp.DiscountCategory,
		BasePrice:        resp.BasePrice,
		DiscountAmount:   resp.DiscountAmount,
		NetPrice:         resp.NetPrice,
		AmountDueNow:     resp.AmountDueNow,
		AmountDueLater:   resp.AmountDueLater,
	}
}
