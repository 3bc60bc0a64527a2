package catalogservice

import "errors"

var (
	// ErrCourseNotFound возвращается, когда курс не найден в каталоге
	ErrCourseNotFound = errors.New("catalogservice client: course not found")

	// ErrRequirementNotFound возвращается, когда у курса нет
	// опубликованного требования расписания
	ErrRequirementNotFound = errors.New("catalogservice client: schedule requirement not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")

	// ErrUnavailable возвращается, когда каталог недоступен.
	// Вызывающая сторона повторяет запрос с backoff, молча не глотаем.
	ErrUnavailable = errors.New("catalogservice client: service unavailable")
)
