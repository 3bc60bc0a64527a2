package record_day_outcome

import (
	"github.com/m04kA/DSP-EnrollmentService/internal/service/enrollments/models"
)

// RecordDayOutcomeRequest HTTP request model
type RecordDayOutcomeRequest struct {
	Outcome string `json:"outcome"` // completed | absent
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RecordDayOutcomeRequest) ToServiceRequest(userID int64, isStaff bool, dayIndex int) *models.RecordDayOutcomeRequest {
	return &models.RecordDayOutcomeRequest{
		UserID:   userID,
		IsStaff:  isStaff,
		DayIndex: dayIndex,
		Outcome:  r.Outcome,
	}
}
