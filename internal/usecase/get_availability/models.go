package get_availability

import "github.com/m04kA/TA-BookingEngine/pkg/types"

// Request модель запроса доступности пакетов тура
type Request struct {
	TourID int64
}

// DateAvailability остаток пакетов на одну дату заезда
type DateAvailability struct {
	StartDate types.Date
	Remaining int
	Total     int
}

// Response доступность пакетов по всем предлагаемым датам заезда
type Response struct {
	TourID int64
	Dates  []DateAvailability
}
