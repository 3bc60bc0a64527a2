package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotExhausted возвращается, когда условное списание ёмкости
	// не затронуло ни одной строки: мест (или автомобилей) не осталось
	ErrSlotExhausted = errors.New("slot.repository: slot capacity exhausted")

	// ErrCapacityOverflow возвращается, когда возврат ёмкости превысил бы
	// исходную (remaining > total) - признак двойного возврата
	ErrCapacityOverflow = errors.New("slot.repository: capacity restore would exceed total")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
