package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/TA-BookingEngine/internal/domain"
	"github.com/m04kA/TA-BookingEngine/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// CapacityLedger интерфейс учёта пакетов
type CapacityLedger interface {
	Seed(ctx context.Context, tourID int64, startDate types.Date, total int) error
	Reserve(ctx context.Context, bookingID, tourID int64, startDate types.Date) error
}

// TourCatalogClient интерфейс клиента каталога туров
type TourCatalogClient interface {
	GetTour(ctx context.Context, tourID int64) (*domain.Tour, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
