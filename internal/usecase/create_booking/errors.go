package create_booking

import "errors"

var (
	// ErrTourNotFound возвращается, когда тур не найден в каталоге
	ErrTourNotFound = errors.New("create_booking: tour not found")

	// ErrCombinationNotOffered возвращается, когда тройка
	// (дата заезда, длительность, питание) не предлагается туром
	ErrCombinationNotOffered = errors.New("create_booking: combination is not offered by the tour")

	// ErrInvalidGuests возвращается при недопустимом составе гостей
	// (количества вне лимитов тура, несовпадение списка, плохие имена)
	ErrInvalidGuests = errors.New("create_booking: invalid guests")

	// ErrStartDateInPast возвращается, когда дата заезда уже прошла
	ErrStartDateInPast = errors.New("create_booking: start date is in the past")

	// ErrCapacityExhausted возвращается, когда на выбранную дату
	// не осталось пакетов
	ErrCapacityExhausted = errors.New("create_booking: no packages remaining for this date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
