package get_requirement

import (
	"github.com/m04kA/DSP-EnrollmentService/internal/integrations/catalogservice"
)

// RequirementResponse HTTP response model
type RequirementResponse struct {
	CourseID   int64            `json:"courseId"`
	CourseName string           `json:"courseName"`
	Version    int              `json:"version"`
	Days       []DayRequirement `json:"days"`
}

// DayRequirement требование к одному учебному дню
type DayRequirement struct {
	DayIndex      int     `json:"dayIndex"`
	DurationHours float64 `json:"durationHours"`
	TimeWindow    string  `json:"timeWindow"`
}

// FromClientResponse конвертирует ответ каталога в HTTP response
func FromClientResponse(course *catalogservice.Course, req *catalogservice.ScheduleRequirement) *RequirementResponse {
	days := make([]DayRequirement, 0, len(req.Days))
	for _, d := range req.Days {
		days = append(days, DayRequirement{
			DayIndex:      d.DayIndex,
			DurationHours: d.DurationHours,
			TimeWindow:    d.TimeWindow,
		})
	}

	return &RequirementResponse{
		CourseID:   req.CourseID,
		CourseName: course.Name,
		Version:    req.Version,
		Days:       days,
	}
}
