package reviewgate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/TA-BookingEngine/internal/domain"
)

var (
	// ErrInvalidRate возвращается при оценке вне диапазона 1..5
	ErrInvalidRate = errors.New("reviewgate: rate must be an integer between 1 and 5")

	// ErrCommentRequired возвращается, когда для низкой оценки
	// не указан комментарий
	ErrCommentRequired = errors.New("reviewgate: comment is required for rate 3 or below")

	// ErrCommentTooLong возвращается при превышении лимита длины комментария
	ErrCommentTooLong = errors.New("reviewgate: comment is too long")
)

// CanReview сообщает, принимает ли бронирование отзыв в текущем состоянии.
// Отзыв доступен только после начала тура: started или finished.
func CanReview(booking *domain.Booking) bool {
	return booking.State == domain.StateStarted || booking.State == domain.StateFinished
}

// ValidateSubmission проверяет содержимое отзыва: оценка 1..5,
// для оценки <= 3 обязателен непустой (после trim) комментарий
func ValidateSubmission(rate int, comment string) error {
	if rate < domain.MinReviewRate || rate > domain.MaxReviewRate {
		return fmt.Errorf("%w: got %d", ErrInvalidRate, rate)
	}

	if rate <= domain.CommentRequiredBelowRate && strings.TrimSpace(comment) == "" {
		return ErrCommentRequired
	}

	if len(comment) > domain.MaxReviewCommentLength {
		return fmt.Errorf("%w: %d characters, maximum %d", ErrCommentTooLong, len(comment), domain.MaxReviewCommentLength)
	}

	return nil
}
