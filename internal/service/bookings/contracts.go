package bookings

import (
	"context"
	"time"

	"github.com/m04kA/TA-BookingEngine/internal/domain"
	"github.com/m04kA/TA-BookingEngine/internal/integrations/documents"
	"github.com/m04kA/TA-BookingEngine/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64, state *domain.BookingState) ([]*domain.Booking, error)
	ListByTourWithFilter(ctx context.Context, filter domain.TourBookingsFilter) ([]*domain.Booking, error)
	ListDueForAdvance(ctx context.Context, asOf types.Date) ([]int64, error)
	UpdateState(ctx context.Context, id int64, state domain.BookingState) error
	Cancel(ctx context.Context, id int64, c domain.Cancellation) error
}

// CapacityLedger интерфейс учёта пакетов
type CapacityLedger interface {
	Release(ctx context.Context, bookingID int64) error
}

// TourCatalogClient интерфейс клиента каталога туров
type TourCatalogClient interface {
	GetTour(ctx context.Context, tourID int64) (*domain.Tour, error)
}

// DocumentsClient интерфейс клиента сервиса документов
type DocumentsClient interface {
	GetSummaryWithGracefulDegradation(ctx context.Context, bookingID int64) (*documents.Summary, error)
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
