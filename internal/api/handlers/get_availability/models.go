package get_availability

import (
	getAvailability "github.com/m04kA/TA-BookingEngine/internal/usecase/get_availability"
	"github.com/m04kA/TA-BookingEngine/pkg/types"
)

// DateAvailabilityResponse остаток пакетов на одну дату заезда
type DateAvailabilityResponse struct {
	StartDate types.Date `json:"startDate"`
	Remaining int        `json:"remaining"`
	Total     int        `json:"total"`
}

// GetAvailabilityResponse HTTP response model
type GetAvailabilityResponse struct {
	TourID int64                      `json:"tourId"`
	Dates  []DateAvailabilityResponse `json:"dates"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(res *getAvailability.Response) *GetAvailabilityResponse {
	dates := make([]DateAvailabilityResponse, 0, len(res.Dates))
	for _, d := range res.Dates {
		dates = append(dates, DateAvailabilityResponse{
			StartDate: d.StartDate,
			Remaining: d.Remaining,
			Total:     d.Total,
		})
	}
	return &GetAvailabilityResponse{
		TourID: res.TourID,
		Dates:  dates,
	}
}
