package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TA-BookingEngine/internal/domain"
	capacityLedger "github.com/m04kA/TA-BookingEngine/internal/infra/storage/capacity"
	catalogClient "github.com/m04kA/TA-BookingEngine/internal/integrations/tourcatalog"
	"github.com/m04kA/TA-BookingEngine/pkg/types"
)

// --- Фейки для зависимостей use case ---

type fakeBookingRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*domain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{byID: make(map[int64]*domain.Booking)}
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	created := *b
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.byID[created.ID] = &created
	return &created, nil
}

type fakeLedger struct {
	mu        sync.Mutex
	seeded    bool
	remaining int
	reserved  []int64
}

func (f *fakeLedger) Seed(_ context.Context, _ int64, _ types.Date, total int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.seeded {
		f.remaining = total
		f.seeded = true
	}
	return nil
}

func (f *fakeLedger) Reserve(_ context.Context, bookingID, _ int64, _ types.Date) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.remaining <= 0 {
		return capacityLedger.ErrCapacityExhausted
	}
	f.remaining--
	f.reserved = append(f.reserved, bookingID)
	return nil
}

type fakeCatalog struct {
	tour *domain.Tour
	err  error
}

func (f *fakeCatalog) GetTour(_ context.Context, _ int64) (*domain.Tour, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tour, nil
}

// fakeTxManager сериализует транзакции мьютексом, имитируя
// serializable-изоляцию БД
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

func validRequest() *Request {
	return &Request{
		UserID:       7,
		TourID:       42,
		StartDate:    "2026-06-01",
		DurationDays: 7,
		MealPlan:     domain.MealHB,
		Guests:       domain.GuestCounts{Adults: 2},
		GuestEntries: []domain.GuestEntry{
			{Type: domain.GuestAdult, FirstName: "Anna", LastName: "Smith"},
			{Type: domain.GuestAdult, FirstName: "Boris", LastName: "Smith"},
		},
	}
}

func newTestUseCase(repo *fakeBookingRepo, ledger *fakeLedger, catalog *fakeCatalog) *UseCase {
	uc := NewUseCase(repo, ledger, catalog, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{t: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

// --- Тесты ---

func TestExecute_Success(t *testing.T) {
	repo := newFakeBookingRepo()
	ledger := &fakeLedger{}
	uc := newTestUseCase(repo, ledger, &fakeCatalog{tour: testTour()})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StateBooked), resp.State)
	// (900 + 12*7) * 2 гостя
	assert.Equal(t, float64(900+12*7)*2, resp.TotalPrice)
	// отсечка бесплатной отмены: 2026-06-01 - 14 дней
	assert.Equal(t, types.Date("2026-05-18"), resp.FreeCancellationUntil)
	assert.Len(t, ledger.reserved, 1)
	assert.Equal(t, resp.ID, ledger.reserved[0])
}

// Клиенты передают personalDetails без поля type: типы выводятся
// позиционно из количеств, бронирование создаётся
func TestExecute_GuestTypesOmitted(t *testing.T) {
	repo := newFakeBookingRepo()
	ledger := &fakeLedger{}
	uc := newTestUseCase(repo, ledger, &fakeCatalog{tour: testTour()})

	req := validRequest()
	req.Guests = domain.GuestCounts{Adults: 2, Children: 1}
	req.GuestEntries = []domain.GuestEntry{
		{FirstName: "Anna", LastName: "Smith"},
		{FirstName: "Boris", LastName: "Smith"},
		{FirstName: "Kim", LastName: "Smith"},
	}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.GuestEntries, 3)
	assert.Equal(t, domain.GuestAdult, resp.GuestEntries[0].Type)
	assert.Equal(t, domain.GuestAdult, resp.GuestEntries[1].Type)
	assert.Equal(t, domain.GuestChild, resp.GuestEntries[2].Type)
}

func TestExecute_TourNotFound(t *testing.T) {
	uc := newTestUseCase(newFakeBookingRepo(), &fakeLedger{}, &fakeCatalog{err: catalogClient.ErrTourNotFound})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTourNotFound)
}

func TestExecute_CombinationNotOffered(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"unknown start date", func(r *Request) { r.StartDate = "2026-07-01" }},
		{"unknown duration", func(r *Request) { r.DurationDays = 10 }},
		{"unknown meal plan", func(r *Request) { r.MealPlan = domain.MealAI }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeBookingRepo()
			uc := newTestUseCase(repo, &fakeLedger{}, &fakeCatalog{tour: testTour()})

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrCombinationNotOffered)
			assert.Empty(t, repo.byID, "no booking must be created")
		})
	}
}

func TestExecute_InvalidGuests(t *testing.T) {
	uc := newTestUseCase(newFakeBookingRepo(), &fakeLedger{}, &fakeCatalog{tour: testTour()})

	req := validRequest()
	req.Guests = domain.GuestCounts{Adults: 0, Children: 2}
	req.GuestEntries = nil

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidGuests)
}

func TestExecute_StartDateInPast(t *testing.T) {
	repo := newFakeBookingRepo()
	ledger := &fakeLedger{}
	uc := newTestUseCase(repo, ledger, &fakeCatalog{tour: testTour()})
	uc.timeProvider = &fixedTime{t: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrStartDateInPast)
}

func TestExecute_CapacityExhausted(t *testing.T) {
	repo := newFakeBookingRepo()
	ledger := &fakeLedger{seeded: true, remaining: 0}
	uc := newTestUseCase(repo, ledger, &fakeCatalog{tour: testTour()})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCapacityExhausted)
}

// Последний пакет достаётся ровно одному из конкурирующих запросов
func TestExecute_ConcurrentLastPackage(t *testing.T) {
	repo := newFakeBookingRepo()
	ledger := &fakeLedger{}
	uc := newTestUseCase(repo, ledger, &fakeCatalog{tour: testTour()})

	const workers = 8
	req := validRequest()
	req.StartDate = "2026-06-15" // дата с единственным пакетом

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := *req
			r.UserID = int64(i + 1)
			_, errs[i] = uc.Execute(context.Background(), &r)
		}(i)
	}
	wg.Wait()

	success := 0
	for _, err := range errs {
		if err == nil {
			success++
		} else {
			assert.ErrorIs(t, err, ErrCapacityExhausted)
		}
	}
	assert.Equal(t, 1, success, "exactly one request must win the last package")
	assert.Len(t, ledger.reserved, 1)
}
