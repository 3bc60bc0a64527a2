package quote_enrollment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_enrollment: invalid input data")

	// ErrCourseNotFound возвращается, когда курс не найден
	ErrCourseNotFound = errors.New("quote_enrollment: course not found")

	// ErrCourseNotPublished возвращается, когда курс еще не опубликован
	ErrCourseNotPublished = errors.New("quote_enrollment: course is not published")

	// ErrUnavailable возвращается при недоступности каталога
	ErrUnavailable = errors.New("quote_enrollment: catalog service unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_enrollment: internal error")
)
