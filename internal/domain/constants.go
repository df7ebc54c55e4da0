package domain

// Guest name policy
const (
	MinGuestNameLength = 2
	MaxGuestNameLength = 50
)

// Review constraints
const (
	MinReviewRate = 1
	MaxReviewRate = 5
	// CommentRequiredBelowRate оценка, начиная с которой (включительно)
	// комментарий обязателен
	CommentRequiredBelowRate = 3
	MaxReviewCommentLength   = 2000
)

// Misc limits
const (
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStates состояния, в которых бронирование удерживает пакет тура
var ActiveStates = []BookingState{
	StateBooked,
	StateConfirmed,
	StateStarted,
	StateFinished,
}
