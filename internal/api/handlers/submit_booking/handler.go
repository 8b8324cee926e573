package submit_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	submitBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/submit_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты записи, ожидается YYYY-MM-DD"
	msgCustomerNotFound   = "клиент не найден"
	msgStaffNotFound      = "мастер не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgPastDate           = "нельзя записаться на прошедшую дату"
	msgSlotNotAvailable   = "выбранное время недоступно у мастера"
	msgBatchOverlap       = "записи в пакете пересекаются по времени"
	msgBatchTooLarge      = "слишком много записей в пакете"
	msgInvalidInput       = "некорректные данные записи"
	msgSlotTaken          = "время уже занято другой записью"
	msgDayLocked          = "расписание мастера сейчас изменяется, повторите запрос"
	msgPartialFailure     = "пакет сохранён частично"
)

type Handler struct {
	useCase SubmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
// Все записи пакета проверяются до сохранения. При сбое сохранения уже созданные записи
// остаются, ответ 409/500 содержит created, failedIndex и notAttempted
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SubmitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if errors.Is(err, submitBooking.ErrPartialFailure) && result != nil {
			h.respondPartial(w, result, err, req.CustomerID)
			return
		}

		status, msg := classify(err)
		var entryErr *submitBooking.EntryError
		if status == http.StatusInternalServerError {
			h.logger.Error("POST /bookings - Failed to submit booking: customer_id=%d, error=%v", req.CustomerID, err)
			handlers.RespondInternalError(w)
			return
		}

		if errors.As(err, &entryErr) {
			h.logger.Warn("POST /bookings - Entry %d rejected: customer_id=%d, error=%v", entryErr.Index, req.CustomerID, err)
			handlers.RespondJSON(w, status, EntryErrorResponse{Error: msg, EntryIndex: entryErr.Index})
			return
		}
		h.logger.Warn("POST /bookings - Booking rejected: customer_id=%d, error=%v", req.CustomerID, err)
		handlers.RespondError(w, status, msg)
		return
	}

	h.logger.Info("POST /bookings - Appointments created: customer_id=%d, count=%d", req.CustomerID, len(result.Created))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) respondPartial(w http.ResponseWriter, result *submitBooking.Response, err error, customerID int64) {
	status := http.StatusInternalServerError
	if isConflict(err) {
		status = http.StatusConflict
	}

	response := FromUseCaseResponse(result)
	response.Error = msgPartialFailure

	if status == http.StatusConflict {
		h.logger.Warn("POST /bookings - Partial failure: customer_id=%d, created=%d, error=%v",
			customerID, len(result.Created), err)
	} else {
		h.logger.Error("POST /bookings - Partial failure: customer_id=%d, created=%d, error=%v",
			customerID, len(result.Created), err)
	}
	handlers.RespondJSON(w, status, response)
}

func isConflict(err error) bool {
	return errors.Is(err, submitBooking.ErrSlotTaken) ||
		errors.Is(err, submitBooking.ErrDayLocked) ||
		errors.Is(err, submitBooking.ErrSlotNotAvailable) ||
		errors.Is(err, submitBooking.ErrBatchOverlap)
}

// classify статус и сообщение для ошибки use case
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, submitBooking.ErrCustomerNotFound):
		return http.StatusNotFound, msgCustomerNotFound
	case errors.Is(err, submitBooking.ErrStaffNotFound):
		return http.StatusNotFound, msgStaffNotFound
	case errors.Is(err, submitBooking.ErrServiceNotFound):
		return http.StatusNotFound, msgServiceNotFound
	case errors.Is(err, submitBooking.ErrInvalidDate):
		return http.StatusBadRequest, msgPastDate
	case errors.Is(err, submitBooking.ErrBatchTooLarge):
		return http.StatusBadRequest, msgBatchTooLarge
	case errors.Is(err, submitBooking.ErrInvalidInput):
		return http.StatusBadRequest, msgInvalidInput
	case errors.Is(err, submitBooking.ErrSlotNotAvailable):
		return http.StatusConflict, msgSlotNotAvailable
	case errors.Is(err, submitBooking.ErrBatchOverlap):
		return http.StatusConflict, msgBatchOverlap
	case errors.Is(err, submitBooking.ErrSlotTaken):
		return http.StatusConflict, msgSlotTaken
	case errors.Is(err, submitBooking.ErrDayLocked):
		return http.StatusConflict, msgDayLocked
	default:
		return http.StatusInternalServerError, ""
	}
}
