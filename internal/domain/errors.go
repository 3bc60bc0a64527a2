package domain

import "errors"

// Причины отклонения кандидата при наборе расписания.
// Порядок проверки фиксирован: сначала ёмкость, затем хронология,
// затем лимит, затем дубликат (см. SelectionSet.TryAdd).
var (
	// ErrCapacityExhausted возвращается, когда у слота закончились места
	// (или автомобили для практических курсов)
	ErrCapacityExhausted = errors.New("domain: slot capacity exhausted")

	// ErrChronologyViolation возвращается, когда дата кандидата не позже
	// даты последнего выбранного слота
	ErrChronologyViolation = errors.New("domain: slot date violates selection chronology")

	// ErrLimitReached возвращается, когда выбрано уже необходимое число слотов
	ErrLimitReached = errors.New("domain: selection limit reached")

	// ErrAlreadySelected возвращается, когда слот уже есть в выборе
	ErrAlreadySelected = errors.New("domain: slot already selected")

	// ErrIndexOutOfRange возвращается при удалении по несуществующему индексу
	ErrIndexOutOfRange = errors.New("domain: selection index out of range")
)

var (
	// ErrInvalidTimeWindow возвращается при некорректном описании временного окна
	ErrInvalidTimeWindow = errors.New("domain: invalid time window")

	// ErrInvalidRequirement возвращается, когда требование расписания
	// нарушает свои инварианты (пустое, дыры в нумерации дней и т.п.)
	ErrInvalidRequirement = errors.New("domain: invalid schedule requirement")

	// ErrInvalidDiscountCategory возвращается при неизвестной льготной категории
	ErrInvalidDiscountCategory = errors.New("domain: invalid discount category")

	// ErrInvalidModality возвращается при неизвестной форме обучения
	ErrInvalidModality = errors.New("domain: invalid course modality")

	// ErrInvalidStatus возвращается при неизвестном статусе зачисления
	ErrInvalidStatus = errors.New("domain: invalid enrollment status")

	// ErrInvalidOutcome возвращается при неизвестном результате учебного дня
	ErrInvalidOutcome = errors.New("domain: invalid day outcome")

	// ErrInvalidClassification возвращается при неизвестном типе курса
	ErrInvalidClassification = errors.New("domain: invalid course classification")
)
