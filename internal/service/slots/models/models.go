package models

import (
	"time"

	"github.com/m04kA/DSP-EnrollmentService/internal/domain"
)

// Request модели

// CreateSlotRequest запрос на создание слота
type CreateSlotRequest struct {
	UserID         int64  `json:"-"`
	IsStaff        bool   `json:"-"`
	CourseID       int64  `json:"courseId"`
	Classification string `json:"classification"` // theoretical | practical
	Date           string `json:"date"`           // "2026-09-15"
	StartTime      string `json:"startTime"`      // "08:00"
	EndTime        string `json:"endTime"`        // "17:00"
	TotalSeats     int    `json:"totalSeats"`
	TotalVehicles  int    `json:"totalVehicles"`
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID                int64   `json:"id"`
	CourseID          int64   `json:"courseId"`
	Classification    string  `json:"classification"`
	Date              string  `json:"date"`
	StartTime         string  `json:"startTime"`
	EndTime           string  `json:"endTime"`
	DurationHours     float64 `json:"durationHours"`
	TotalSeats        int     `json:"totalSeats"`
	RemainingSeats    int     `json:"remainingSeats"`
	TotalVehicles     int     `json:"totalVehicles"`
	RemainingVehicles int     `json:"remainingVehicles"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainSlot конвертирует domain слот в response модель
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	return &SlotResponse{
		ID:                s.ID,
		CourseID:          s.CourseID,
		Classification:    string(s.Classification),
		Date:              s.Date.Format(domain.DateFormat),
		StartTime:         s.StartTime.String(),
		EndTime:           s.EndTime.String(),
		DurationHours:     s.DurationHours(),
		TotalSeats:        s.TotalSeats,
		RemainingSeats:    s.RemainingSeats,
		TotalVehicles:     s.TotalVehicles,
		RemainingVehicles: s.RemainingVehicles,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}
