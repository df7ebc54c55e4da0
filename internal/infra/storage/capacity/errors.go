package capacity

import "errors"

var (
	// ErrCapacityExhausted возвращается, когда на выбранную дату заезда
	// не осталось пакетов
	ErrCapacityExhausted = errors.New("capacity.ledger: no packages remaining")

	// ErrReservationNotFound возвращается, когда у бронирования нет
	// активной брони места
	ErrReservationNotFound = errors.New("capacity.ledger: reservation not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("capacity.ledger: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("capacity.ledger: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("capacity.ledger: failed to scan row")
)
