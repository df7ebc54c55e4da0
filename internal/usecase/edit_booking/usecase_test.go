package edit_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TA-BookingEngine/internal/domain"
	bookingRepo "github.com/m04kA/TA-BookingEngine/internal/infra/storage/booking"
	capacityLedger "github.com/m04kA/TA-BookingEngine/internal/infra/storage/capacity"
	"github.com/m04kA/TA-BookingEngine/pkg/ptr"
	"github.com/m04kA/TA-BookingEngine/pkg/types"
)

// --- Фейки для зависимостей use case ---

type fakeBookingRepo struct {
	mu   sync.Mutex
	byID map[int64]*domain.Booking
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	f := &fakeBookingRepo{byID: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		f.byID[b.ID] = b
	}
	return f
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeBookingRepo) UpdateDetails(_ context.Context, b *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *b
	copied.UpdatedAt = time.Now()
	f.byID[b.ID] = &copied
	return nil
}

// fakeLedger отслеживает порядок вызовов: перенос должен резервировать
// новую дату до возврата старой
type fakeLedger struct {
	mu          sync.Mutex
	remaining   map[types.Date]int
	reservation map[int64]types.Date
	moveErr     error
	calls       []string
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		remaining:   make(map[types.Date]int),
		reservation: make(map[int64]types.Date),
	}
}

func (f *fakeLedger) Seed(_ context.Context, _ int64, startDate types.Date, total int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "seed:"+string(startDate))
	if _, ok := f.remaining[startDate]; !ok {
		f.remaining[startDate] = total
	}
	return nil
}

func (f *fakeLedger) Move(_ context.Context, bookingID int64, newStartDate types.Date) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "move:"+string(newStartDate))
	if f.moveErr != nil {
		return f.moveErr
	}
	if f.remaining[newStartDate] <= 0 {
		return capacityLedger.ErrCapacityExhausted
	}
	f.remaining[newStartDate]--
	if old, ok := f.reservation[bookingID]; ok {
		f.remaining[old]++
	}
	f.reservation[bookingID] = newStartDate
	return nil
}

type fakeCatalog struct {
	tour *domain.Tour
}

func (f *fakeCatalog) GetTour(_ context.Context, _ int64) (*domain.Tour, error) {
	return f.tour, nil
}

type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

type fixedTime struct {
	t time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.t
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Тестовые данные ---

func testTour() *domain.Tour {
	return &domain.Tour{
		ID:          42,
		Destination: "Antalya",
		StartDates:  []types.Date{"2026-06-01", "2026-06-15"},
		Durations: []domain.DurationOption{
			{Days: 7, Label: "1 week"},
			{Days: 14, Label: "2 weeks"},
		},
		MealPlans: []domain.MealPlan{domain.MealBB, domain.MealHB},
		PriceByDuration: map[int]float64{
			7:  900,
			14: 1600,
		},
		MealSupplementPerDay: map[domain.MealPlan]float64{
			domain.MealBB: 0,
			domain.MealHB: 12,
		},
		MaxAdults:   4,
		MaxChildren: 3,
		AvailablePackages: map[types.Date]int{
			"2026-06-01": 5,
			"2026-06-15": 1,
		},
		FreeCancellationDaysBefore: 14,
	}
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:           100,
		UserID:       7,
		TourID:       42,
		StartDate:    "2026-06-01",
		DurationDays: 7,
		MealPlan:     domain.MealBB,
		Guests:       domain.GuestCounts{Adults: 2},
		GuestEntries: []domain.GuestEntry{
			{Type: domain.GuestAdult, FirstName: "Anna", LastName: "Smith"},
			{Type: domain.GuestAdult, FirstName: "Boris", LastName: "Smith"},
		},
		State:      domain.StateBooked,
		TotalPrice: 1800,
	}
}

func newTestUseCase(repo *fakeBookingRepo, ledger *fakeLedger) *UseCase {
	uc := NewUseCase(repo, ledger, &fakeCatalog{tour: testTour()}, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{t: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

// --- Тесты ---

func TestExecute_ChangeMealPlanRecomputesPrice(t *testing.T) {
	repo := newFakeBookingRepo(testBooking())
	uc := newTestUseCase(repo, newFakeLedger())

	mealPlan := domain.MealHB
	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 100,
		UserID:    7,
		MealPlan:  &mealPlan,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.MealHB, resp.MealPlan)
	// (900 + 12*7) * 2 гостя
	assert.Equal(t, float64(900+12*7)*2, resp.TotalPrice)
	// остальные поля не изменились
	assert.Equal(t, types.Date("2026-06-01"), resp.StartDate)
	assert.Equal(t, 7, resp.DurationDays)
}

func TestExecute_ChangeDateMovesReservation(t *testing.T) {
	repo := newFakeBookingRepo(testBooking())
	ledger := newFakeLedger()
	ledger.remaining["2026-06-01"] = 4
	ledger.reservation[100] = "2026-06-01"

	uc := newTestUseCase(repo, ledger)

	newDate := types.Date("2026-06-15")
	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 100,
		UserID:    7,
		StartDate: &newDate,
	})
	require.NoError(t, err)

	assert.Equal(t, newDate, resp.StartDate)
	assert.Equal(t, newDate, ledger.reservation[100])
	// пакет старой даты возвращён
	assert.Equal(t, 5, ledger.remaining["2026-06-01"])
	assert.Equal(t, 0, ledger.remaining["2026-06-15"])
	// отсечка пересчитана от новой даты
	assert.Equal(t, types.Date("2026-06-01"), resp.FreeCancellationUntil)
	// новая дата резервируется до возврата старой
	assert.Equal(t, []string{"seed:2026-06-15", "move:2026-06-15"}, ledger.calls)
}

func TestExecute_ChangeDateCapacityExhausted(t *testing.T) {
	booking := testBooking()
	repo := newFakeBookingRepo(booking)
	ledger := newFakeLedger()
	ledger.remaining["2026-06-01"] = 4
	ledger.remaining["2026-06-15"] = 0
	ledger.reservation[100] = "2026-06-01"

	uc := newTestUseCase(repo, ledger)

	newDate := types.Date("2026-06-15")
	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 100,
		UserID:    7,
		StartDate: &newDate,
	})
	assert.ErrorIs(t, err, ErrCapacityExhausted)

	// бронь осталась на старой дате
	assert.Equal(t, types.Date("2026-06-01"), ledger.reservation[100])
	assert.Equal(t, 4, ledger.remaining["2026-06-01"])
}

func TestExecute_ShrinkGuestsNormalizesRoster(t *testing.T) {
	repo := newFakeBookingRepo(testBooking())
	uc := newTestUseCase(repo, newFakeLedger())

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 100,
		UserID:    7,
		Guests:    &domain.GuestCounts{Adults: 1},
	})
	require.NoError(t, err)

	require.Len(t, resp.GuestEntries, 1)
	assert.Equal(t, "Anna", resp.GuestEntries[0].FirstName)
	assert.Equal(t, float64(900), resp.TotalPrice)
}

// Новый список гостей без поля type принимается: типы выводятся
// позиционно из количеств
func TestExecute_ReplaceEntriesWithoutTypes(t *testing.T) {
	repo := newFakeBookingRepo(testBooking())
	uc := newTestUseCase(repo, newFakeLedger())

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 100,
		UserID:    7,
		Guests:    &domain.GuestCounts{Adults: 1, Children: 1},
		GuestEntries: []domain.GuestEntry{
			{FirstName: "Anna", LastName: "Smith"},
			{FirstName: "Kim", LastName: "Smith"},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.GuestEntries, 2)
	assert.Equal(t, domain.GuestAdult, resp.GuestEntries[0].Type)
	assert.Equal(t, domain.GuestChild, resp.GuestEntries[1].Type)
}

func TestExecute_AccessDenied(t *testing.T) {
	repo := newFakeBookingRepo(testBooking())
	uc := newTestUseCase(repo, newFakeLedger())

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    100,
		UserID:       999,
		DurationDays: ptr.Ptr(14),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_NotEditableStates(t *testing.T) {
	for _, state := range []domain.BookingState{
		domain.StateStarted, domain.StateFinished, domain.StateCancelled,
	} {
		t.Run(string(state), func(t *testing.T) {
			booking := testBooking()
			booking.State = state
			repo := newFakeBookingRepo(booking)
			uc := newTestUseCase(repo, newFakeLedger())

			_, err := uc.Execute(context.Background(), &Request{
				BookingID:    100,
				UserID:       7,
				DurationDays: ptr.Ptr(14),
			})
			assert.ErrorIs(t, err, ErrInvalidState)
		})
	}
}

func TestExecute_BookingNotFound(t *testing.T) {
	repo := newFakeBookingRepo()
	uc := newTestUseCase(repo, newFakeLedger())

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    100,
		UserID:       7,
		DurationDays: ptr.Ptr(14),
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
