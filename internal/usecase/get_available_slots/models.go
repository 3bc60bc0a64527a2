package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/DSP-EnrollmentService/internal/domain"
	"github.com/m04kA/DSP-EnrollmentService/internal/integrations/catalogservice"
)

// Request модель запроса на получение доступных слотов для следующего
// незаполненного дня набора
type Request struct {
	StudentID       int64   // ID студента (guard активного зачисления)
	CourseID        int64   // ID курса
	SelectedSlotIDs []int64 // Уже выбранные слоты в порядке выбора
}

// Response модель ответа со списком доступных слотов
type Response struct {
	CourseID      int64   // ID курса
	RequiredCount int     // Сколько всего дней требует курс (N)
	SelectedCount int     // Сколько слотов уже выбрано (k)
	Complete      bool    // true, когда выбор уже полон - добавлять нечего
	DayIndex      int     // Номер дня, для которого подобраны слоты (k+1)
	DurationHours float64 // Требуемая длительность этого дня
	TimeWindow    string  // Временное окно этого дня
	Slots         []Slot  // Подходящие слоты
}

// Slot модель слота в ответе
type Slot struct {
	SlotID            int64
	Date              time.Time
	StartTime         string
	EndTime           string
	DurationHours     float64 // Учебная длительность (за вычетом обеда)
	RemainingSeats    int
	TotalSeats        int
	RemainingVehicles int
	TotalVehicles     int
}

// fromDomainSlot конвертирует domain слот в модель ответа
func fromDomainSlot(s *domain.Slot) Slot {
	return Slot{
		SlotID:            s.ID,
		Date:              s.Date,
		StartTime:         s.StartTime.String(),
		EndTime:           s.EndTime.String(),
		DurationHours:     s.DurationHours(),
		RemainingSeats:    s.RemainingSeats,
		TotalSeats:        s.TotalSeats,
		RemainingVehicles: s.RemainingVehicles,
		TotalVehicles:     s.TotalVehicles,
	}
}

// toDomainRequirement конвертирует требование расписания из DTO каталога
// в domain модель с раскрытием именованных временных окон. Число дней
// сверяется с requiredScheduleCount курса: расхождение означает
// несогласованные данные каталога.
func toDomainRequirement(dto *catalogservice.ScheduleRequirement, requiredCount int) (*domain.ScheduleRequirement, error) {
	if len(dto.Days) != requiredCount {
		return nil, fmt.Errorf("requirement has %d days, course requires %d", len(dto.Days), requiredCount)
	}

	requirement := &domain.ScheduleRequirement{
		CourseID: dto.CourseID,
		Days:     make([]domain.DayRequirement, 0, len(dto.Days)),
	}

	for _, day := range dto.Days {
		window, err := domain.ParseTimeWindow(day.TimeWindow)
		if err != nil {
			return nil, fmt.Errorf("day %d: %w", day.DayIndex, err)
		}
		requirement.Days = append(requirement.Days, domain.DayRequirement{
			DayIndex:      day.DayIndex,
			DurationHours: day.DurationHours,
			Window:        window,
		})
	}

	if err := requirement.Validate(); err != nil {
		return nil, err
	}

	return requirement, nil
}
