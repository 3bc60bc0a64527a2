package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrCourseNotFound возвращается, когда курс не найден
	ErrCourseNotFound = errors.New("get_available_slots: course not found")

	// ErrCourseNotPublished возвращается, когда курс еще не опубликован
	ErrCourseNotPublished = errors.New("get_available_slots: course is not published")

	// ErrRequirementNotFound возвращается, когда у курса нет опубликованного
	// требования расписания
	ErrRequirementNotFound = errors.New("get_available_slots: schedule requirement not found")

	// ErrActiveEnrollmentExists возвращается, когда у студента уже есть
	// активное зачисление - новый подбор расписания не начинается
	ErrActiveEnrollmentExists = errors.New("get_available_slots: student already has an active enrollment")

	// ErrSlotNotFound возвращается, когда один из уже выбранных слотов
	// не найден в пуле
	ErrSlotNotFound = errors.New("get_available_slots: selected slot not found")

	// ErrUnavailable возвращается при недоступности хранилища или каталога.
	// Клиент повторяет запрос с backoff.
	ErrUnavailable = errors.New("get_available_slots: backing store unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
