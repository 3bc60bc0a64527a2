package get_available_slots

import (
	"sort"

	"github.com/m04kA/DSP-EnrollmentService/internal/domain"
)

// eligibleSlotsForDay отбирает из пула слоты, подходящие для требования
// одного учебного дня. Чистая функция без побочных эффектов.
//
// Критерии отбора:
//   - тип слота совпадает с типом курса
//   - учебная длительность совпадает с требуемой в пределах допуска
//   - время начала попадает в окно требования
//   - слот еще не выбран
//   - у слота есть доступная ёмкость (места и автомобили)
//
// Хронологию относительно уже выбранных слотов матчер НЕ проверяет:
// это забота валидации выбора (SelectionSet.TryAdd) при добавлении.
func eligibleSlotsForDay(
	day domain.DayRequirement,
	classification domain.CourseClassification,
	selectedIDs map[int64]struct{},
	pool []*domain.Slot,
	tolerance float64,
) []*domain.Slot {
	matched := make([]*domain.Slot, 0, len(pool))

	for _, slot := range pool {
		if slot.Classification != classification {
			continue
		}
		if !day.MatchesDuration(slot.DurationHours(), tolerance) {
			continue
		}
		if !day.Window.Matches(slot.StartTime) {
			continue
		}
		if _, ok := selectedIDs[slot.ID]; ok {
			continue
		}
		if !slot.IsEligible() {
			continue
		}
		matched = append(matched, slot)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.Before(matched[j].Date)
		}
		return matched[i].StartTime.IsBefore(matched[j].StartTime)
	})

	return matched
}
