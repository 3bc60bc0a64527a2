package cancel_enrollment

import (
	"github.com/m04kA/DSP-EnrollmentService/internal/service/enrollments/models"
)

// CancelEnrollmentRequest HTTP request model
type CancelEnrollmentRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelEnrollmentRequest) ToServiceRequest(userID int64, isStaff bool) *models.CancelEnrollmentRequest {
	return &models.CancelEnrollmentRequest{
		UserID:             userID,
		IsStaff:            isStaff,
		CancellationReason: r.CancellationReason,
	}
}
