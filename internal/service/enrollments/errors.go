package enrollments

import "errors"

var (
	// ErrEnrollmentNotFound возвращается, когда зачисление не найдено
	ErrEnrollmentNotFound = errors.New("enrollment not found")

	// ErrAssignmentNotFound возвращается, когда у зачисления нет
	// назначения на указанный день
	ErrAssignmentNotFound = errors.New("slot assignment not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда зачисление нельзя отменить
	ErrCannotCancel = errors.New("enrollment cannot be cancelled")

	// ErrOutcomeAlreadyRecorded возвращается при повторной записи
	// результата уже закрытого дня
	ErrOutcomeAlreadyRecorded = errors.New("day outcome already recorded")

	// ErrInvalidStatus возвращается при недопустимом переходе статуса
	ErrInvalidStatus = errors.New("invalid enrollment status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
