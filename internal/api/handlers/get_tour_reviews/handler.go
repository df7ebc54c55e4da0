package get_tour_reviews

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TA-BookingEngine/internal/api/handlers"
	"github.com/m04kA/TA-BookingEngine/internal/service/reviews"
)

const (
	msgInvalidTourID = "некорректный ID тура"
)

type Handler struct {
	service ReviewService
	logger  Logger
}

func NewHandler(service ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tours/{tourId}/reviews
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tourID, err := strconv.ParseInt(vars["tourId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tours/{id}/reviews - Invalid tour ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTourID)
		return
	}

	result, err := h.service.ListByTour(r.Context(), tourID)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrInvalidInput):
			h.logger.Warn("GET /tours/{id}/reviews - Invalid input: tour_id=%d", tourID)
			handlers.RespondBadRequest(w, msgInvalidTourID)

		default:
			h.logger.Error("GET /tours/{id}/reviews - Failed to get reviews: tour_id=%d, error=%v", tourID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tours/{id}/reviews - Fetched %d reviews: tour_id=%d", result.Total, tourID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
