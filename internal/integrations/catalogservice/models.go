package catalogservice

// Course модель курса из каталога
type Course struct {
	ID                    int64   `json:"id"`
	Name                  string  `json:"name"`
	Classification        string  `json:"classification"` // theoretical | practical
	Modality              string  `json:"modality"`       // full_payment | downpayment
	BasePrice             float64 `json:"basePrice"`
	RequiredScheduleCount int     `json:"requiredScheduleCount"`
	IsPublished           bool    `json:"isPublished"`
}

// DayRequirement требование к одному учебному дню из каталога
type DayRequirement struct {
	DayIndex      int     `json:"dayIndex"`
	DurationHours float64 `json:"durationHours"`
	TimeWindow    string  `json:"timeWindow"` // "flexible" | "morning" | "afternoon" | "HH:MM-HH:MM"
}

// ScheduleRequirement опубликованное требование расписания курса
type ScheduleRequirement struct {
	CourseID int64            `json:"courseId"`
	Version  int              `json:"version"`
	Days     []DayRequirement `json:"days"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
