package reviewgate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/TA-BookingEngine/internal/domain"
)

func TestCanReview(t *testing.T) {
	tests := []struct {
		state domain.BookingState
		want  bool
	}{
		{domain.StateBooked, false},
		{domain.StateConfirmed, false},
		{domain.StateStarted, true},
		{domain.StateFinished, true},
		{domain.StateCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			booking := &domain.Booking{State: tt.state}
			assert.Equal(t, tt.want, CanReview(booking))
		})
	}
}

func TestValidateSubmission(t *testing.T) {
	tests := []struct {
		name    string
		rate    int
		comment string
		wantErr error
	}{
		{"high rate without comment", 5, "", nil},
		{"high rate with comment", 4, "great trip", nil},
		{"low rate with comment", 2, "hotel was noisy", nil},
		{"low rate without comment", 2, "", ErrCommentRequired},
		{"boundary rate 3 without comment", 3, "", ErrCommentRequired},
		{"whitespace comment does not count", 1, "   \t", ErrCommentRequired},
		{"rate too low", 0, "text", ErrInvalidRate},
		{"rate too high", 6, "text", ErrInvalidRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSubmission(tt.rate, tt.comment)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
