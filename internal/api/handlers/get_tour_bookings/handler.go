package get_tour_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TA-BookingEngine/internal/api/handlers"
	"github.com/m04kA/TA-BookingEngine/internal/api/middleware"
	"github.com/m04kA/TA-BookingEngine/internal/service/bookings"
	"github.com/m04kA/TA-BookingEngine/internal/service/bookings/models"
	"github.com/m04kA/TA-BookingEngine/pkg/types"
)

const (
	msgInvalidTourID = "некорректный ID тура"
	msgInvalidDate   = "некорректный формат даты заезда, ожидается YYYY-MM-DD"
	msgForbidden     = "список бронирований тура доступен только агенту"
	msgInvalidState  = "некорректное состояние бронирования"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tours/{tourId}/bookings?startDate=2026-06-01&state=confirmed&includeCancelled=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	role := middleware.Role(r.Context())

	vars := mux.Vars(r)
	tourID, err := strconv.ParseInt(vars["tourId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tours/{id}/bookings - Invalid tour ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTourID)
		return
	}

	serviceReq := &models.GetTourBookingsRequest{
		TourID: tourID,
		UserID: userID,
		Role:   role,
	}

	query := r.URL.Query()
	if v := query.Get("startDate"); v != "" {
		startDate, err := types.NewDateFromString(v)
		if err != nil {
			h.logger.Warn("GET /tours/{id}/bookings - Invalid start date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		serviceReq.StartDate = &startDate
	}
	if v := query.Get("state"); v != "" {
		serviceReq.State = &v
	}
	serviceReq.IncludeCancelled = query.Get("includeCancelled") == "true"

	result, err := h.service.GetTourBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /tours/{id}/bookings - Access denied: tour_id=%d, user_id=%d", tourID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /tours/{id}/bookings - Invalid state filter: tour_id=%d", tourID)
			handlers.RespondBadRequest(w, msgInvalidState)

		default:
			h.logger.Error("GET /tours/{id}/bookings - Failed to get bookings: tour_id=%d, error=%v", tourID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tours/{id}/bookings - Fetched %d bookings: tour_id=%d", result.Total, tourID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
