package reviews

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается при попытке оставить отзыв
	// на чужое бронирование
	ErrAccessDenied = errors.New("access denied")

	// ErrReviewNotAllowed возвращается, когда состояние бронирования
	// ещё не допускает отзыв
	ErrReviewNotAllowed = errors.New("review is not allowed in the current booking state")

	// ErrAlreadyReviewed возвращается при повторном отзыве
	// на то же бронирование
	ErrAlreadyReviewed = errors.New("booking has already been reviewed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
