package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TA-BookingEngine/internal/cancellation"
	"github.com/m04kA/TA-BookingEngine/internal/domain"
	"github.com/m04kA/TA-BookingEngine/internal/guestroster"
	capacityLedger "github.com/m04kA/TA-BookingEngine/internal/infra/storage/capacity"
	catalogClient "github.com/m04kA/TA-BookingEngine/internal/integrations/tourcatalog"
	"github.com/m04kA/TA-BookingEngine/internal/pricing"
	"github.com/m04kA/TA-BookingEngine/pkg/types"
)

// UseCase use case для создания бронирования тура
type UseCase struct {
	bookingRepo  BookingRepository
	ledger       CapacityLedger
	catalog      TourCatalogClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	ledger CapacityLedger,
	catalog TourCatalogClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		ledger:       ledger,
		catalog:      catalog,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Вставка бронирования и резервирование пакета идут в одной сериализуемой
// транзакции: либо фиксируются обе записи, либо ни одной
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, tour=%d, date=%s, duration=%d, meal=%s, adults=%d, children=%d",
		req.UserID, req.TourID, req.StartDate, req.DurationDays, req.MealPlan,
		req.Guests.Adults, req.Guests.Children)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	asOf := types.NewDate(uc.timeProvider.Now())

	// 3. Получаем тур из каталога
	tour, err := uc.catalog.GetTour(ctx, req.TourID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrTourNotFound) {
			uc.logger.Warn("CreateBooking: tour id=%d not found", req.TourID)
			return nil, ErrTourNotFound
		}
		uc.logger.Error("CreateBooking: failed to get tour id=%d: %v", req.TourID, err)
		return nil, fmt.Errorf("%w: failed to get tour: %v", ErrInternal, err)
	}

	// 4. Проверяем, что комбинация предлагается туром
	if err := validateCombination(tour, req.StartDate, req.DurationDays, req.MealPlan); err != nil {
		uc.logger.Warn("CreateBooking: combination check failed: %v", err)
		return nil, err
	}

	// 5. Проверяем состав гостей и имена. Тип гостя в запросе опционален:
	// опущенные типы выводятся позиционно из количеств
	req.GuestEntries = guestroster.FillTypes(req.GuestEntries, req.Guests)
	if err := validateGuests(tour, req.Guests, req.GuestEntries); err != nil {
		uc.logger.Warn("CreateBooking: guests check failed: %v", err)
		return nil, err
	}

	// 6. Дата заезда не должна быть в прошлом
	if err := validateStartDateNotPast(req.StartDate, asOf); err != nil {
		uc.logger.Warn("CreateBooking: start date %s is in the past", req.StartDate)
		return nil, err
	}

	// 7. Вычисляем стоимость по тарифам тура
	totalPrice, err := pricing.Compute(tour, req.DurationDays, req.MealPlan, req.Guests)
	if err != nil {
		// Комбинация уже проверена, отсутствие тарифа - рассинхрон каталога
		uc.logger.Error("CreateBooking: pricing failed for tour=%d: %v", req.TourID, err)
		return nil, fmt.Errorf("%w: pricing failed: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 8. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Создаем бронирование в состоянии booked
		booking := &domain.Booking{
			UserID:       req.UserID,
			TourID:       req.TourID,
			StartDate:    req.StartDate,
			DurationDays: req.DurationDays,
			MealPlan:     req.MealPlan,
			Guests:       req.Guests,
			GuestEntries: req.GuestEntries,
			State:        domain.StateBooked,
			TotalPrice:   totalPrice,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 8.2. Инициализируем учёт пакетов из квоты каталога (идемпотентно)
		if err := uc.ledger.Seed(txCtx, tour.ID, req.StartDate, tour.PackagesFor(req.StartDate)); err != nil {
			uc.logger.Error("CreateBooking: failed to seed capacity: %v", err)
			return fmt.Errorf("%w: failed to seed capacity: %v", ErrInternal, err)
		}

		// 8.3. Резервируем пакет; при неудаче транзакция откатится
		// вместе со вставкой бронирования
		if err := uc.ledger.Reserve(txCtx, created.ID, tour.ID, req.StartDate); err != nil {
			if errors.Is(err, capacityLedger.ErrCapacityExhausted) {
				uc.logger.Warn("CreateBooking: capacity exhausted for tour=%d, date=%s", tour.ID, req.StartDate)
				return ErrCapacityExhausted
			}
			uc.logger.Error("CreateBooking: failed to reserve capacity: %v", err)
			return fmt.Errorf("%w: failed to reserve capacity: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, price=%.2f", result.ID, result.TotalPrice)

	classification := cancellation.Classify(tour, result.StartDate, asOf)

	return &Response{
		ID:                    result.ID,
		UserID:                result.UserID,
		TourID:                result.TourID,
		StartDate:             result.StartDate,
		DurationDays:          result.DurationDays,
		MealPlan:              result.MealPlan,
		Guests:                result.Guests,
		GuestEntries:          result.GuestEntries,
		State:                 string(result.State),
		TotalPrice:            result.TotalPrice,
		FreeCancellationUntil: classification.CutoffDate,
		CreatedAt:             result.CreatedAt,
		UpdatedAt:             result.UpdatedAt,
	}, nil
}
