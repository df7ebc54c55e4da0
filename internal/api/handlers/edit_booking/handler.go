package edit_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TA-BookingEngine/internal/api/handlers"
	"github.com/m04kA/TA-BookingEngine/internal/api/middleware"
	editBooking "github.com/m04kA/TA-BookingEngine/internal/usecase/edit_booking"
)

const (
	msgInvalidBookingID      = "некорректный ID бронирования"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDate           = "некорректный формат даты заезда, ожидается YYYY-MM-DD"
	msgNotFound              = "бронирование не найдено"
	msgTourNotFound          = "тур не найден"
	msgForbidden             = "доступ запрещен"
	msgNotEditable           = "бронирование нельзя изменить в текущем состоянии"
	msgCombinationNotOffered = "выбранная комбинация даты, длительности и питания не предлагается туром"
	msgInvalidGuests         = "некорректный состав гостей"
	msgStartDateInPast       = "дата заезда уже прошла"
	msgCapacityExhausted     = "на новую дату заезда не осталось пакетов"
	msgInvalidInput          = "некорректные входные данные"
)

type Handler struct {
	useCase EditBookingUseCase
	logger  Logger
}

func NewHandler(useCase EditBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req EditBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, userID)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, editBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, editBooking.ErrTourNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Tour not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgTourNotFound)

		case errors.Is(err, editBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id} - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, editBooking.ErrInvalidState):
			h.logger.Warn("PATCH /bookings/{id} - Not editable: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotEditable)

		case errors.Is(err, editBooking.ErrCombinationNotOffered):
			h.logger.Warn("PATCH /bookings/{id} - Combination not offered: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgCombinationNotOffered)

		case errors.Is(err, editBooking.ErrInvalidGuests):
			h.logger.Warn("PATCH /bookings/{id} - Invalid guests: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidGuests)

		case errors.Is(err, editBooking.ErrStartDateInPast):
			h.logger.Warn("PATCH /bookings/{id} - Start date in past: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgStartDateInPast)

		case errors.Is(err, editBooking.ErrCapacityExhausted):
			h.logger.Warn("PATCH /bookings/{id} - Capacity exhausted: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgCapacityExhausted)

		case errors.Is(err, editBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id} - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/{id} - Failed to edit booking: booking_id=%d, user_id=%d, error=%v",
				bookingID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("PATCH /bookings/{id} - Booking updated successfully: booking_id=%d, user_id=%d",
		bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
