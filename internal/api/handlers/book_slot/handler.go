package book_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	bookSlot "github.com/m04kA/SMC-SalonService/internal/usecase/book_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgSlotTaken          = "выбранное время уже занято"
	msgBusinessNotFound   = "салон не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgCustomerNotFound   = "клиент не найден"
	msgCustomerBlocked    = "клиенту запрещена запись"
	msgBusinessClosed     = "салон не принимает записи на выбранное время"
	msgBusy               = "салон обрабатывает другую запись, повторите попытку"
)

type Handler struct {
	useCase BookSlotUseCase
	logger  Logger
}

func NewHandler(useCase BookSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req BookSlotRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		if errors.Is(err, ErrInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookSlot.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot taken: customer_id=%d, business_id=%d", customerID, req.BusinessID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, bookSlot.ErrBusinessNotFound):
			h.logger.Warn("POST /appointments - Business not found: business_id=%d", req.BusinessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, bookSlot.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: business_id=%d, service_id=%d", req.BusinessID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, bookSlot.ErrCustomerNotFound):
			h.logger.Warn("POST /appointments - Customer not found: customer_id=%d", customerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, bookSlot.ErrCustomerBlocked):
			h.logger.Warn("POST /appointments - Customer blocked: customer_id=%d", customerID)
			handlers.RespondForbidden(w, msgCustomerBlocked)

		case errors.Is(err, bookSlot.ErrBusinessClosed):
			h.logger.Warn("POST /appointments - Business closed: business_id=%d, %v", req.BusinessID, err)
			handlers.RespondUnprocessable(w, msgBusinessClosed)

		case errors.Is(err, bookSlot.ErrBusy):
			h.logger.Warn("POST /appointments - Business busy: business_id=%d", req.BusinessID)
			handlers.RespondServiceUnavailable(w, msgBusy)

		case errors.Is(err, bookSlot.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to book: customer_id=%d, business_id=%d, error=%v",
				customerID, req.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%d, customer_id=%d, business_id=%d",
		result.ID, customerID, req.BusinessID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
