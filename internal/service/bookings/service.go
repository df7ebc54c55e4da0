package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TA-BookingEngine/internal/cancellation"
	"github.com/m04kA/TA-BookingEngine/internal/domain"
	bookingRepo "github.com/m04kA/TA-BookingEngine/internal/infra/storage/booking"
	catalogClient "github.com/m04kA/TA-BookingEngine/internal/integrations/tourcatalog"
	"github.com/m04kA/TA-BookingEngine/internal/service/bookings/models"
	"github.com/m04kA/TA-BookingEngine/pkg/types"
)

// Service сервис жизненного цикла бронирований: подтверждение, отмена,
// продвижение по часам и чтение. Создание и изменение вынесены
// в отдельные use cases
type Service struct {
	bookingRepo  BookingRepository
	ledger       CapacityLedger
	catalog      TourCatalogClient
	docs         DocumentsClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	ledger CapacityLedger,
	catalog TourCatalogClient,
	docs DocumentsClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		ledger:       ledger,
		catalog:      catalog,
		docs:         docs,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Confirm подтверждает бронирование (агент принял заявку)
// Допустим только переход booked -> confirmed
// Загруженность документов не проверяется: интерфейс агента показывает
// полноту документов как подсказку, жёсткого шлюза нет
func (s *Service) Confirm(ctx context.Context, bookingID int64, req *models.ConfirmBookingRequest) error {
	s.logger.Info("Confirm: booking id=%d by user=%d", bookingID, req.UserID)

	if req.Role != models.RoleAgent {
		s.logger.Warn("Confirm: access denied for user=%d, role=%s", req.UserID, req.Role)
		return ErrAccessDenied
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Блокировка строки сериализует переходы по одному бронированию:
		// из гонки Confirm/Cancel победит ровно один
		b, err := s.bookingRepo.GetByIDForUpdate(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
		}

		if !b.CanBeConfirmed() {
			s.logger.Warn("Confirm: booking id=%d cannot be confirmed, state=%s", bookingID, b.State)
			return fmt.Errorf("%w: cannot confirm from state %s", ErrInvalidTransition, b.State)
		}

		if err := s.bookingRepo.UpdateState(txCtx, bookingID, domain.StateConfirmed); err != nil {
			return fmt.Errorf("%w: Confirm - update state: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	s.logger.Info("Confirm: successfully confirmed booking id=%d", bookingID)
	return nil
}

// Cancel отменяет бронирование
// Допустимо из booked и confirmed; отмена не блокируется после отсечки
// бесплатной отмены - меняется только классификация (бесплатная/платная).
// Бронь места возвращается в учёт ровно один раз
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: booking id=%d by user=%d", bookingID, req.UserID)

	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	// Предварительное чтение для проверки доступа и загрузки тура
	// (внешний вызов каталога держим вне транзакции)
	current, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if current.UserID != req.UserID && req.Role != models.RoleAgent {
		s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	tour, err := s.catalog.GetTour(ctx, current.TourID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrTourNotFound) {
			s.logger.Warn("Cancel: tour id=%d not found", current.TourID)
			return ErrTourNotFound
		}
		return fmt.Errorf("%w: Cancel - failed to get tour: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	asOf := types.NewDate(now)

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		b, err := s.bookingRepo.GetByIDForUpdate(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - lock booking: %v", ErrInternal, err)
		}

		if !b.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, state=%s", bookingID, b.State)
			return fmt.Errorf("%w: cannot cancel from state %s", ErrInvalidTransition, b.State)
		}

		classification := cancellation.Classify(tour, b.StartDate, asOf)

		c := domain.Cancellation{
			Reason:      req.Reason,
			CancelledBy: req.UserID,
			CancelledAt: now,
			Free:        classification.Free,
		}

		if err := s.bookingRepo.Cancel(txCtx, bookingID, c); err != nil {
			return fmt.Errorf("%w: Cancel - update booking: %v", ErrInternal, err)
		}

		// Release идемпотентен по bookingID: повторная отмена
		// не вернёт пакет дважды
		if err := s.ledger.Release(txCtx, bookingID); err != nil {
			return fmt.Errorf("%w: Cancel - release capacity: %v", ErrInternal, err)
		}

		s.logger.Info("Cancel: booking id=%d cancelled, free=%t, cutoff=%s",
			bookingID, classification.Free, classification.CutoffDate)
		return nil
	})

	return err
}

// AdvanceClock продвигает бронирование по часам:
// confirmed -> started при наступлении даты заезда,
// started -> finished по истечении длительности.
// Идемпотентен: повторный вызов с той же датой ничего не меняет
func (s *Service) AdvanceClock(ctx context.Context, bookingID int64, asOf types.Date) error {
	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		b, err := s.bookingRepo.GetByIDForUpdate(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: AdvanceClock - lock booking: %v", ErrInternal, err)
		}

		next := b.State
		if next == domain.StateConfirmed && !asOf.Before(b.StartDate) {
			next = domain.StateStarted
		}
		// Давно прошедшие бронирования проходят оба перехода за один вызов
		if next == domain.StateStarted && !asOf.Before(b.EndDate()) {
			next = domain.StateFinished
		}

		if next == b.State {
			return nil
		}

		if err := s.bookingRepo.UpdateState(txCtx, bookingID, next); err != nil {
			return fmt.Errorf("%w: AdvanceClock - update state: %v", ErrInternal, err)
		}

		s.logger.Info("AdvanceClock: booking id=%d moved %s -> %s (asOf=%s)", bookingID, b.State, next, asOf)
		return nil
	})
}

// SweepClock продвигает все бронирования с наступившими датами
// Каждое бронирование обрабатывается в отдельной транзакции, ошибки
// по отдельным бронированиям не прерывают обход
func (s *Service) SweepClock(ctx context.Context, asOf types.Date) (int, error) {
	ids, err := s.bookingRepo.ListDueForAdvance(ctx, asOf)
	if err != nil {
		return 0, fmt.Errorf("%w: SweepClock - list due bookings: %v", ErrInternal, err)
	}

	advanced := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return advanced, err
		}
		if err := s.AdvanceClock(ctx, id, asOf); err != nil {
			s.logger.Error("SweepClock: failed to advance booking id=%d: %v", id, err)
			continue
		}
		advanced++
	}

	if advanced > 0 {
		s.logger.Info("SweepClock: advanced %d bookings (asOf=%s)", advanced, asOf)
	}

	return advanced, nil
}

// GetByID получает бронирование по ID с вычисляемыми полями
// Пользователь видит только своё бронирование; агент - любое
func (s *Service) GetByID(ctx context.Context, id int64, req *models.GetBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, req.UserID)

	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if b.UserID != req.UserID && req.Role != models.RoleAgent {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", req.UserID, id)
		return nil, ErrAccessDenied
	}

	asOf := types.NewDate(s.timeProvider.Now())

	// Каталог нужен для destination и freeCancellationUntil;
	// при его недоступности отдаём бронирование без вычисляемых полей
	tour, err := s.catalog.GetTour(ctx, b.TourID)
	if err != nil {
		s.logger.Error("GetByID: failed to get tour id=%d: %v", b.TourID, err)
		tour = nil
	}

	resp := models.FromDomainBooking(b, tour, asOf)

	// Сводка документов с graceful degradation: при недоступности
	// сервиса документов бронирование отдаётся без сводки
	summary, err := s.docs.GetSummaryWithGracefulDegradation(ctx, b.ID)
	if err != nil {
		s.logger.Warn("GetByID: documents summary unavailable for booking id=%d: %v", b.ID, err)
	} else {
		resp.WithDocuments(summary, b.Guests.Total())
	}

	return resp, nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по состоянию
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, state=%v", req.UserID, req.State)

	var state *domain.BookingState
	if req.State != nil {
		parsed, ok := domain.ParseBookingState(*req.State)
		if !ok {
			s.logger.Warn("GetUserBookings: invalid state=%s for user=%d", *req.State, req.UserID)
			return nil, fmt.Errorf("%w: invalid state", ErrInvalidInput)
		}
		state = &parsed
	}

	list, err := s.bookingRepo.ListByUser(ctx, req.UserID, state)
	if err != nil {
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	asOf := types.NewDate(s.timeProvider.Now())
	tours := s.loadTours(ctx, list)

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(list), req.UserID)
	return models.FromDomainBookingList(list, tours, asOf), nil
}

// GetTourBookings получает бронирования тура для агентской отчётности
// Доступно только агентам
func (s *Service) GetTourBookings(ctx context.Context, req *models.GetTourBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetTourBookings: tour=%d, user=%d, includeCancelled=%t", req.TourID, req.UserID, req.IncludeCancelled)

	if req.Role != models.RoleAgent {
		s.logger.Warn("GetTourBookings: access denied for user=%d, role=%s", req.UserID, req.Role)
		return nil, ErrAccessDenied
	}

	filter := domain.TourBookingsFilter{
		TourID:           req.TourID,
		StartDate:        req.StartDate,
		IncludeCancelled: req.IncludeCancelled,
	}

	if req.State != nil {
		parsed, ok := domain.ParseBookingState(*req.State)
		if !ok {
			return nil, fmt.Errorf("%w: invalid state", ErrInvalidInput)
		}
		filter.State = &parsed
	}

	list, err := s.bookingRepo.ListByTourWithFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTourBookings - repository error: %v", ErrInternal, err)
	}

	asOf := types.NewDate(s.timeProvider.Now())
	tours := s.loadTours(ctx, list)

	s.logger.Info("GetTourBookings: fetched %d bookings for tour=%d", len(list), req.TourID)
	return models.FromDomainBookingList(list, tours, asOf), nil
}

// loadTours загружает туры списка бронирований, по одному обращению
// на уникальный tourID; недоступные туры пропускаются
func (s *Service) loadTours(ctx context.Context, list []*domain.Booking) map[int64]*domain.Tour {
	tours := make(map[int64]*domain.Tour)
	for _, b := range list {
		if _, ok := tours[b.TourID]; ok {
			continue
		}
		tour, err := s.catalog.GetTour(ctx, b.TourID)
		if err != nil {
			s.logger.Warn("loadTours: failed to get tour id=%d: %v", b.TourID, err)
			continue
		}
		tours[b.TourID] = tour
	}
	return tours
}
