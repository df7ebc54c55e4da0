package edit_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("edit_booking: booking not found")

	// ErrTourNotFound возвращается, когда тур не найден в каталоге
	ErrTourNotFound = errors.New("edit_booking: tour not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит
	// другому пользователю
	ErrAccessDenied = errors.New("edit_booking: access denied")

	// ErrInvalidState возвращается, когда бронирование уже нельзя
	// редактировать (started, finished, cancelled)
	ErrInvalidState = errors.New("edit_booking: booking is not editable in its current state")

	// ErrCombinationNotOffered возвращается, когда новая тройка
	// (дата заезда, длительность, питание) не предлагается туром
	ErrCombinationNotOffered = errors.New("edit_booking: combination is not offered by the tour")

	// ErrInvalidGuests возвращается при недопустимом составе гостей
	ErrInvalidGuests = errors.New("edit_booking: invalid guests")

	// ErrStartDateInPast возвращается, когда новая дата заезда уже прошла
	ErrStartDateInPast = errors.New("edit_booking: start date is in the past")

	// ErrCapacityExhausted возвращается, когда на новую дату заезда
	// не осталось пакетов; бронирование остаётся без изменений
	ErrCapacityExhausted = errors.New("edit_booking: no packages remaining for the new date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("edit_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("edit_booking: internal error")
)
