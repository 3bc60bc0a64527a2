package domain

// SelectionSet растущий набор выбранных слотов одной попытки записи.
// Неизменяемое значение: TryAdd и RemoveAt возвращают новый набор,
// не трогая исходный, поэтому его безопасно пересобирать на каждый
// запрос клиента.
//
// Ёмкость при выборе НЕ резервируется - проверка здесь только ранняя
// и совещательная. Авторитетная проверка с атомарным списанием ёмкости
// выполняется при фиксации записи (usecase create_enrollment).
type SelectionSet struct {
	required int
	slots    []*Slot
}

// NewSelectionSet создает пустой набор для курса с required учебными днями
func NewSelectionSet(required int) SelectionSet {
	return SelectionSet{required: required}
}

// Len возвращает число выбранных слотов
func (s SelectionSet) Len() int {
	return len(s.slots)
}

// Required возвращает требуемое число слотов (N)
func (s SelectionSet) Required() int {
	return s.required
}

// IsComplete возвращает true, когда выбрано ровно required слотов
func (s SelectionSet) IsComplete() bool {
	return len(s.slots) >= s.required
}

// Slots возвращает копию списка выбранных слотов в порядке выбора
func (s SelectionSet) Slots() []*Slot {
	out := make([]*Slot, len(s.slots))
	copy(out, s.slots)
	return out
}

// Last возвращает последний выбранный слот
func (s SelectionSet) Last() (*Slot, bool) {
	if len(s.slots) == 0 {
		return nil, false
	}
	return s.slots[len(s.slots)-1], true
}

// Contains возвращает true, если слот с данным ID уже выбран
func (s SelectionSet) Contains(slotID int64) bool {
	for _, slot := range s.slots {
		if slot.ID == slotID {
			return true
		}
	}
	return false
}

// TryAdd пытается добавить кандидата в набор и возвращает новый набор.
// Проверки выполняются в фиксированном порядке, срабатывает первая:
//  1. ErrCapacityExhausted - у кандидата нет мест (или автомобилей)
//  2. ErrChronologyViolation - дата кандидата не позже последней выбранной
//  3. ErrLimitReached - уже выбрано required слотов
//  4. ErrAlreadySelected - кандидат уже в наборе
func (s SelectionSet) TryAdd(candidate *Slot) (SelectionSet, error) {
	if !candidate.IsEligible() {
		return s, ErrCapacityExhausted
	}

	if last, ok := s.Last(); ok {
		if !candidate.Date.After(last.Date) {
			return s, ErrChronologyViolation
		}
	}

	if len(s.slots) >= s.required {
		return s, ErrLimitReached
	}

	if s.Contains(candidate.ID) {
		return s, ErrAlreadySelected
	}

	next := SelectionSet{
		required: s.required,
		slots:    make([]*Slot, len(s.slots), len(s.slots)+1),
	}
	copy(next.slots, s.slots)
	next.slots = append(next.slots, candidate)
	return next, nil
}

// RemoveAt убирает слот по индексу выбора и возвращает новый набор.
// Побочных эффектов на ёмкость нет: при выборе она не списывалась.
func (s SelectionSet) RemoveAt(index int) (SelectionSet, error) {
	if index < 0 || index >= len(s.slots) {
		return s, ErrIndexOutOfRange
	}

	next := SelectionSet{
		required: s.required,
		slots:    make([]*Slot, 0, len(s.slots)-1),
	}
	next.slots = append(next.slots, s.slots[:index]...)
	next.slots = append(next.slots, s.slots[index+1:]...)
	return next, nil
}
