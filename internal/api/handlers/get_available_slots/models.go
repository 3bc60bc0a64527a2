package get_available_slots

import (
	"github.com/m04kA/DSP-EnrollmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/DSP-EnrollmentService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	CourseID      int64   `json:"courseId"`
	RequiredCount int     `json:"requiredCount"`
	SelectedCount int     `json:"selectedCount"`
	Complete      bool    `json:"complete"`
	DayIndex      int     `json:"dayIndex,omitempty"`
	DurationHours float64 `json:"durationHours,omitempty"`
	TimeWindow    string  `json:"timeWindow,omitempty"`
	Slots         []Slot  `json:"slots"`
}

// Slot доступный слот в HTTP ответе
type Slot struct {
	SlotID            int64   `json:"slotId"`
	Date              string  `json:"date"`
	StartTime         string  `json:"startTime"`
	EndTime           string  `json:"endTime"`
	DurationHours     float64 `json:"durationHours"`
	RemainingSeats    int     `json:"remainingSeats"`
	TotalSeats        int     `json:"totalSeats"`
	RemainingVehicles int     `json:"remainingVehicles"`
	TotalVehicles     int     `json:"totalVehicles"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]Slot, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, Slot{
			SlotID:            s.SlotID,
			Date:              s.Date.Format(domain.DateFormat),
			StartTime:         s.StartTime,
			EndTime:           s.EndTime,
			DurationHours:     s.DurationHours,
			RemainingSeats:    s.RemainingSeats,
			TotalSeats:        s.TotalSeats,
			RemainingVehicles: s.RemainingVehicles,
			TotalVehicles:     s.TotalVehicles,
		})
	}

	return &AvailableSlotsResponse{
		CourseID:      resp.CourseID,
		RequiredCount: resp.RequiredCount,
		SelectedCount: resp.SelectedCount,
		Complete:      resp.Complete,
		DayIndex:      resp.DayIndex,
		DurationHours: resp.DurationHours,
		TimeWindow:    resp.TimeWindow,
		Slots:         slots,
	}
}
