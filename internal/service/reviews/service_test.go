package reviews

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TA-BookingEngine/internal/domain"
	bookingRepo "github.com/m04kA/TA-BookingEngine/internal/infra/storage/booking"
	reviewRepo "github.com/m04kA/TA-BookingEngine/internal/infra/storage/review"
	"github.com/m04kA/TA-BookingEngine/internal/service/reviews/models"
)

// --- Фейки для зависимостей сервиса ---

type fakeBookingRepo struct {
	byID map[int64]*domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

type fakeReviewRepo struct {
	nextID    int64
	byBooking map[int64]*domain.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{byBooking: make(map[int64]*domain.Review)}
}

func (f *fakeReviewRepo) Create(_ context.Context, r *domain.Review) (*domain.Review, error) {
	if _, ok := f.byBooking[r.BookingID]; ok {
		return nil, reviewRepo.ErrAlreadyReviewed
	}
	f.nextID++
	created := *r
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	f.byBooking[r.BookingID] = &created
	return &created, nil
}

func (f *fakeReviewRepo) ListByTour(_ context.Context, tourID int64) ([]*domain.Review, error) {
	var out []*domain.Review
	for _, r := range f.byBooking {
		if r.TourID == tourID {
			out = append(out, r)
		}
	}
	return out, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Тестовые данные ---

func testBooking(state domain.BookingState) *domain.Booking {
	return &domain.Booking{
		ID:           100,
		UserID:       7,
		TourID:       42,
		StartDate:    "2026-06-01",
		DurationDays: 7,
		State:        state,
	}
}

func newTestService(b *domain.Booking) (*Service, *fakeReviewRepo) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{}}
	if b != nil {
		repo.byID[b.ID] = b
	}
	reviews := newFakeReviewRepo()
	return NewService(repo, reviews, nopLogger{}), reviews
}

// --- Тесты ---

func TestSubmit_Success(t *testing.T) {
	s, _ := newTestService(testBooking(domain.StateFinished))

	resp, err := s.Submit(context.Background(), &models.SubmitReviewRequest{
		BookingID: 100,
		UserID:    7,
		Rate:      5,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.BookingID)
	assert.Equal(t, int64(42), resp.TourID)
	assert.Equal(t, 5, resp.Rate)
}

func TestSubmit_AllowedDuringTour(t *testing.T) {
	s, _ := newTestService(testBooking(domain.StateStarted))

	_, err := s.Submit(context.Background(), &models.SubmitReviewRequest{
		BookingID: 100,
		UserID:    7,
		Rate:      4,
	})
	assert.NoError(t, err)
}

func TestSubmit_NotAllowedBeforeStart(t *testing.T) {
	for _, state := range []domain.BookingState{
		domain.StateBooked, domain.StateConfirmed, domain.StateCancelled,
	} {
		t.Run(string(state), func(t *testing.T) {
			s, _ := newTestService(testBooking(state))

			_, err := s.Submit(context.Background(), &models.SubmitReviewRequest{
				BookingID: 100,
				UserID:    7,
				Rate:      5,
			})
			assert.ErrorIs(t, err, ErrReviewNotAllowed)
		})
	}
}

func TestSubmit_LowRateRequiresComment(t *testing.T) {
	s, _ := newTestService(testBooking(domain.StateFinished))

	_, err := s.Submit(context.Background(), &models.SubmitReviewRequest{
		BookingID: 100,
		UserID:    7,
		Rate:      2,
		Comment:   "   ",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	resp, err := s.Submit(context.Background(), &models.SubmitReviewRequest{
		BookingID: 100,
		UserID:    7,
		Rate:      2,
		Comment:   "  room was not cleaned  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "room was not cleaned", resp.Comment)
}

func TestSubmit_DuplicateReview(t *testing.T) {
	s, _ := newTestService(testBooking(domain.StateFinished))

	req := &models.SubmitReviewRequest{BookingID: 100, UserID: 7, Rate: 5}

	_, err := s.Submit(context.Background(), req)
	require.NoError(t, err)

	_, err = s.Submit(context.Background(), req)
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestSubmit_ForeignBookingForbidden(t *testing.T) {
	s, _ := newTestService(testBooking(domain.StateFinished))

	_, err := s.Submit(context.Background(), &models.SubmitReviewRequest{
		BookingID: 100,
		UserID:    999,
		Rate:      5,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSubmit_BookingNotFound(t *testing.T) {
	s, _ := newTestService(nil)

	_, err := s.Submit(context.Background(), &models.SubmitReviewRequest{
		BookingID: 100,
		UserID:    7,
		Rate:      5,
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListByTour(t *testing.T) {
	s, reviews := newTestService(testBooking(domain.StateFinished))
	reviews.byBooking[200] = &domain.Review{ID: 1, BookingID: 200, TourID: 42, UserID: 8, Rate: 4}
	reviews.byBooking[201] = &domain.Review{ID: 2, BookingID: 201, TourID: 99, UserID: 9, Rate: 3}

	resp, err := s.ListByTour(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, int64(42), resp.TourID)
}
