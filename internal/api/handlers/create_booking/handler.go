package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/TA-BookingEngine/internal/api/handlers"
	"github.com/m04kA/TA-BookingEngine/internal/api/middleware"
	createBooking "github.com/m04kA/TA-BookingEngine/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDate           = "некорректный формат даты заезда, ожидается YYYY-MM-DD"
	msgTourNotFound          = "тур не найден"
	msgCombinationNotOffered = "выбранная комбинация даты, длительности и питания не предлагается туром"
	msgInvalidGuests         = "некорректный состав гостей"
	msgStartDateInPast       = "дата заезда уже прошла"
	msgCapacityExhausted     = "на выбранную дату не осталось пакетов"
	msgInvalidInput          = "некорректные входные данные"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrTourNotFound):
			h.logger.Warn("POST /bookings - Tour not found: tour_id=%d", req.TourID)
			handlers.RespondNotFound(w, msgTourNotFound)

		case errors.Is(err, createBooking.ErrCombinationNotOffered):
			h.logger.Warn("POST /bookings - Combination not offered: user_id=%d, tour_id=%d", userID, req.TourID)
			handlers.RespondBadRequest(w, msgCombinationNotOffered)

		case errors.Is(err, createBooking.ErrInvalidGuests):
			h.logger.Warn("POST /bookings - Invalid guests: user_id=%d, tour_id=%d, error=%v", userID, req.TourID, err)
			handlers.RespondBadRequest(w, msgInvalidGuests)

		case errors.Is(err, createBooking.ErrStartDateInPast):
			h.logger.Warn("POST /bookings - Start date in past: user_id=%d, tour_id=%d", userID, req.TourID)
			handlers.RespondBadRequest(w, msgStartDateInPast)

		case errors.Is(err, createBooking.ErrCapacityExhausted):
			h.logger.Warn("POST /bookings - Capacity exhausted: user_id=%d, tour_id=%d, start_date=%s",
				userID, req.TourID, req.StartDate)
			handlers.RespondConflict(w, msgCapacityExhausted)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, tour_id=%d, error=%v",
				userID, req.TourID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, tour_id=%d",
		result.ID, userID, req.TourID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
