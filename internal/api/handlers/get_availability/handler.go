package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TA-BookingEngine/internal/api/handlers"
	getAvailability "github.com/m04kA/TA-BookingEngine/internal/usecase/get_availability"
)

const (
	msgInvalidTourID = "некорректный ID тура"
	msgTourNotFound  = "тур не найден"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tours/{tourId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tourID, err := strconv.ParseInt(vars["tourId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tours/{id}/availability - Invalid tour ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTourID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{TourID: tourID})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrTourNotFound):
			h.logger.Warn("GET /tours/{id}/availability - Tour not found: tour_id=%d", tourID)
			handlers.RespondNotFound(w, msgTourNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /tours/{id}/availability - Invalid input: tour_id=%d", tourID)
			handlers.RespondBadRequest(w, msgInvalidTourID)

		default:
			h.logger.Error("GET /tours/{id}/availability - Failed to get availability: tour_id=%d, error=%v",
				tourID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tours/{id}/availability - Fetched availability: tour_id=%d, dates=%d",
		tourID, len(result.Dates))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
