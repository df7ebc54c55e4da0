package get_availability

import (
	"context"

	"github.com/m04kA/TA-BookingEngine/internal/domain"
	capacityLedger "github.com/m04kA/TA-BookingEngine/internal/infra/storage/capacity"
	"github.com/m04kA/TA-BookingEngine/pkg/types"
)

// CapacityLedger интерфейс учёта пакетов
type CapacityLedger interface {
	RemainingByTour(ctx context.Context, tourID int64) (map[types.Date]capacityLedger.Availability, error)
}

// TourCatalogClient интерфейс клиента каталога туров
type TourCatalogClient interface {
	GetTour(ctx context.Context, tourID int64) (*domain.Tour, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
