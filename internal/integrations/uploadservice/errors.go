package uploadservice

import "errors"

var (
	// ErrArtifactNotFound возвращается, когда артефакт не найден в хранилище
	ErrArtifactNotFound = errors.New("uploadservice client: artifact not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("uploadservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("uploadservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation.
	// Указывает, что хранилище артефактов недоступно и проверку существования
	// ссылки следует пропустить (формат ссылки уже проверен локально).
	ErrServiceDegraded = errors.New("uploadservice unavailable: graceful degradation applied")
)
