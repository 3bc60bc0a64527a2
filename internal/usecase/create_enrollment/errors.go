package create_enrollment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_enrollment: invalid input data")

	// ErrCourseNotFound возвращается, когда курс не найден
	ErrCourseNotFound = errors.New("create_enrollment: course not found")

	// ErrCourseNotPublished возвращается, когда курс еще не опубликован
	ErrCourseNotPublished = errors.New("create_enrollment: course is not published")

	// ErrRequirementNotFound возвращается, когда у курса нет опубликованного
	// требования расписания
	ErrRequirementNotFound = errors.New("create_enrollment: schedule requirement not found")

	// ErrActiveEnrollmentExists возвращается, когда у студента уже есть
	// активное зачисление
	ErrActiveEnrollmentExists = errors.New("create_enrollment: student already has an active enrollment")

	// ErrSlotNotFound возвращается, когда один из выбранных слотов не найден
	ErrSlotNotFound = errors.New("create_enrollment: selected slot not found")

	// ErrSelectionIncomplete возвращается, когда выбрано меньше слотов,
	// чем требует курс
	ErrSelectionIncomplete = errors.New("create_enrollment: selection is incomplete")

	// ErrSelectionInvalid возвращается, когда набор слотов нарушает
	// требование расписания: длительность, окно или хронологию
	ErrSelectionInvalid = errors.New("create_enrollment: selection violates schedule requirement")

	// ErrSlotNoLongerAvailable возвращается, когда у одного из выбранных
	// слотов закончилась ёмкость между подбором и фиксацией. Вся фиксация
	// откатывается, частичных списаний не остается.
	ErrSlotNoLongerAvailable = errors.New("create_enrollment: slot is no longer available")

	// ErrDiscountProofRequired возвращается, когда для льготной категории
	// не приложено подтверждение
	ErrDiscountProofRequired = errors.New("create_enrollment: discount proof is required")

	// ErrProofNotFound возвращается, когда ссылка на артефакт подтверждения
	// не найдена в хранилище
	ErrProofNotFound = errors.New("create_enrollment: proof artifact not found")

	// ErrUnavailable возвращается при недоступности хранилища или каталога
	ErrUnavailable = errors.New("create_enrollment: backing store unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_enrollment: internal error")
)
