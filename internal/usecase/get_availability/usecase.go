package get_availability

import (
	"context"
	"errors"
	"fmt"

	catalogClient "github.com/m04kA/TA-BookingEngine/internal/integrations/tourcatalog"
)

// UseCase use case для получения остатка пакетов по датам заезда
type UseCase struct {
	ledger  CapacityLedger
	catalog TourCatalogClient
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(ledger CapacityLedger, catalog TourCatalogClient, logger Logger) *UseCase {
	return &UseCase{
		ledger:  ledger,
		catalog: catalog,
		logger:  logger,
	}
}

// Execute возвращает остаток пакетов по каждой предлагаемой дате заезда.
// Для дат, по которым ещё не было бронирований, строка учёта отсутствует -
// остаток равен квоте каталога
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: tour=%d", req.TourID)

	if req.TourID <= 0 {
		return nil, fmt.Errorf("%w: tourID must be positive", ErrInvalidInput)
	}

	tour, err := uc.catalog.GetTour(ctx, req.TourID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrTourNotFound) {
			uc.logger.Warn("GetAvailability: tour id=%d not found", req.TourID)
			return nil, ErrTourNotFound
		}
		uc.logger.Error("GetAvailability: failed to get tour id=%d: %v", req.TourID, err)
		return nil, fmt.Errorf("%w: failed to get tour: %v", ErrInternal, err)
	}

	ledgerState, err := uc.ledger.RemainingByTour(ctx, req.TourID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get ledger state for tour=%d: %v", req.TourID, err)
		return nil, fmt.Errorf("%w: failed to get ledger state: %v", ErrInternal, err)
	}

	dates := make([]DateAvailability, 0, len(tour.StartDates))
	for _, date := range tour.StartDates {
		quota := tour.PackagesFor(date)
		entry := DateAvailability{
			StartDate: date,
			Remaining: quota,
			Total:     quota,
		}
		if a, ok := ledgerState[date]; ok {
			entry.Remaining = a.Remaining
			entry.Total = a.Total
		}
		dates = append(dates, entry)
	}

	uc.logger.Info("GetAvailability: tour=%d, %d dates", req.TourID, len(dates))

	return &Response{
		TourID: req.TourID,
		Dates:  dates,
	}, nil
}
