package edit_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TA-BookingEngine/internal/cancellation"
	"github.com/m04kA/TA-BookingEngine/internal/domain"
	"github.com/m04kA/TA-BookingEngine/internal/guestroster"
	bookingRepo "github.com/m04kA/TA-BookingEngine/internal/infra/storage/booking"
	capacityLedger "github.com/m04kA/TA-BookingEngine/internal/infra/storage/capacity"
	catalogClient "github.com/m04kA/TA-BookingEngine/internal/integrations/tourcatalog"
	"github.com/m04kA/TA-BookingEngine/internal/pricing"
	"github.com/m04kA/TA-BookingEngine/pkg/types"
)

// UseCase use case для изменения бронирования
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

// Execute выполняет use case изменения бронирования
// Перенос брони места (при смене даты заезда) и запись новых полей идут
// в одной сериализуемой транзакции: частичных изменений не бывает
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("EditBooking: booking=%d, user=%d", req.BookingID, req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("EditBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	asOf := types.NewDate(uc.timeProvider.Now())

	// 3. Предварительное чтение: владелец, состояние и tourID для каталога
	current, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("EditBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("EditBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if current.UserID != req.UserID {
		uc.logger.Warn("EditBooking: access denied for user=%d to booking id=%d", req.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}

	if !current.CanBeEdited() {
		uc.logger.Warn("EditBooking: booking id=%d is not editable, state=%s", req.BookingID, current.State)
		return nil, ErrInvalidState
	}

	// 4. Получаем тур из каталога (вне транзакции: внешний вызов)
	tour, err := uc.catalog.GetTour(ctx, current.TourID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrTourNotFound) {
			uc.logger.Warn("EditBooking: tour id=%d not found", current.TourID)
			return nil, ErrTourNotFound
		}
		uc.logger.Error("EditBooking: failed to get tour id=%d: %v", current.TourID, err)
		return nil, fmt.Errorf("%w: failed to get tour: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Перечитываем бронирование с блокировкой строки:
		// состояние могло измениться между предварительным чтением
		// и началом транзакции
		b, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to lock booking: %v", ErrInternal, err)
		}

		if !b.CanBeEdited() {
			uc.logger.Warn("EditBooking: booking id=%d became non-editable, state=%s", req.BookingID, b.State)
			return ErrInvalidState
		}

		// 5.2. Применяем изменения поверх текущих значений
		oldStartDate := b.StartDate

		if req.StartDate != nil {
			b.StartDate = *req.StartDate
		}
		if req.DurationDays != nil {
			b.DurationDays = *req.DurationDays
		}
		if req.MealPlan != nil {
			b.MealPlan = *req.MealPlan
		}
		if req.Guests != nil {
			b.Guests = *req.Guests
		}
		if req.GuestEntries != nil {
			b.GuestEntries = req.GuestEntries
		} else if req.Guests != nil {
			// Количества изменились без нового списка гостей:
			// согласуем существующий список с новыми количествами
			b.GuestEntries = guestroster.Normalize(b.GuestEntries, b.Guests.Adults, b.Guests.Children)
		}

		// 5.3. Перепроверяем комбинацию и гостей как при создании;
		// опущенные типы гостей выводятся позиционно из количеств
		if err := validateCombination(tour, b.StartDate, b.DurationDays, b.MealPlan); err != nil {
			uc.logger.Warn("EditBooking: combination check failed: %v", err)
			return err
		}
		b.GuestEntries = guestroster.FillTypes(b.GuestEntries, b.Guests)
		if err := validateGuests(tour, b.Guests, b.GuestEntries); err != nil {
			uc.logger.Warn("EditBooking: guests check failed: %v", err)
			return err
		}

		dateChanged := !b.StartDate.Equal(oldStartDate)
		if dateChanged {
			if b.StartDate.Before(asOf) {
				return ErrStartDateInPast
			}

			// 5.4. Переносим бронь места на новую дату: сначала
			// резервируется новая, затем возвращается старая; при
			// нехватке мест вся правка откатывается
			if err := uc.ledger.Seed(txCtx, tour.ID, b.StartDate, tour.PackagesFor(b.StartDate)); err != nil {
				return fmt.Errorf("%w: failed to seed capacity: %v", ErrInternal, err)
			}
			if err := uc.ledger.Move(txCtx, b.ID, b.StartDate); err != nil {
				if errors.Is(err, capacityLedger.ErrCapacityExhausted) {
					uc.logger.Warn("EditBooking: capacity exhausted for tour=%d, date=%s", tour.ID, b.StartDate)
					return ErrCapacityExhausted
				}
				return fmt.Errorf("%w: failed to move reservation: %v", ErrInternal, err)
			}
		}

		// 5.5. Пересчитываем стоимость по актуальным тарифам
		totalPrice, err := pricing.Compute(tour, b.DurationDays, b.MealPlan, b.Guests)
		if err != nil {
			return fmt.Errorf("%w: pricing failed: %v", ErrInternal, err)
		}
		b.TotalPrice = totalPrice

		// 5.6. Сохраняем изменения
		if err := uc.bookingRepo.UpdateDetails(txCtx, b); err != nil {
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		result = b
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("EditBooking: successfully updated booking id=%d, price=%.2f", result.ID, result.TotalPrice)

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
