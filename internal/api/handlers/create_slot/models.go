package create_slot

import (
	"github.com/m04kA/DSP-EnrollmentService/internal/service/slots/models"
)

// CreateSlotRequest HTTP request model
type CreateSlotRequest struct {
	CourseID       int64  `json:"courseId"`
	Classification string `json:"classification"` // theoretical | practical
	Date           string `json:"date"`           // "2026-09-15"
	StartTime      string `json:"startTime"`      // "08:00"
	EndTime        string `json:"endTime"`        // "17:00"
	TotalSeats     int    `json:"totalSeats"`
	TotalVehicles  int    `json:"totalVehicles,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateSlotRequest) ToServiceRequest(userID int64, isStaff bool) *models.CreateSlotRequest {
	return &models.CreateSlotRequest{
		UserID:         userID,
		IsStaff:        isStaff,
		CourseID:       r.CourseID,
		Classification: r.Classification,
		Date:           r.Date,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		TotalSeats:     r.TotalSeats,
		TotalVehicles:  r.TotalVehicles,
	}
}
