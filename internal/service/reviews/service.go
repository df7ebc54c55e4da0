package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/TA-BookingEngine/internal/domain"
	bookingRepo "github.com/m04kA/TA-BookingEngine/internal/infra/storage/booking"
	reviewRepo "github.com/m04kA/TA-BookingEngine/internal/infra/storage/review"
	"github.com/m04kA/TA-BookingEngine/internal/reviewgate"
	"github.com/m04kA/TA-BookingEngine/internal/service/reviews/models"
)

// Service сервис отзывов: приём отзыва через шлюз состояния
// бронирования и чтение отзывов тура
type Service struct {
	bookingRepo BookingRepository
	reviewRepo  ReviewRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(bookingRepo BookingRepository, reviewRepo ReviewRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		reviewRepo:  reviewRepo,
		logger:      logger,
	}
}

// Submit принимает отзыв на бронирование
// Отзыв доступен владельцу бронирования после начала тура (started
// или finished), по одному отзыву на бронирование
func (s *Service) Submit(ctx context.Context, req *models.SubmitReviewRequest) (*models.ReviewResponse, error) {
	s.logger.Info("Submit: review for booking id=%d by user=%d", req.BookingID, req.UserID)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Submit: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: Submit - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != req.UserID {
		s.logger.Warn("Submit: access denied for user=%d to booking id=%d", req.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}

	if !reviewgate.CanReview(booking) {
		s.logger.Warn("Submit: booking id=%d in state=%s does not accept reviews", req.BookingID, booking.State)
		return nil, fmt.Errorf("%w: state %s", ErrReviewNotAllowed, booking.State)
	}

	if err := reviewgate.ValidateSubmission(req.Rate, req.Comment); err != nil {
		s.logger.Warn("Submit: validation failed for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	review := &domain.Review{
		BookingID: booking.ID,
		TourID:    booking.TourID,
		UserID:    booking.UserID,
		Rate:      req.Rate,
		Comment:   strings.TrimSpace(req.Comment),
	}

	created, err := s.reviewRepo.Create(ctx, review)
	if err != nil {
		if errors.Is(err, reviewRepo.ErrAlreadyReviewed) {
			s.logger.Warn("Submit: booking id=%d already reviewed", req.BookingID)
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("%w: Submit - create review: %v", ErrInternal, err)
	}

	s.logger.Info("Submit: created review id=%d for booking id=%d", created.ID, req.BookingID)
	return models.FromDomainReview(created), nil
}

// ListByTour получает отзывы тура, новые первыми
func (s *Service) ListByTour(ctx context.Context, tourID int64) (*models.ReviewListResponse, error) {
	s.logger.Info("ListByTour: reviews for tour=%d", tourID)

	if tourID <= 0 {
		return nil, fmt.Errorf("%w: tourID must be positive", ErrInvalidInput)
	}

	list, err := s.reviewRepo.ListByTour(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTour - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByTour: fetched %d reviews for tour=%d", len(list), tourID)
	return models.FromDomainReviewList(tourID, list), nil
}
