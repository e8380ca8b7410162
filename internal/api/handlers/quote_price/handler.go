package quote_price

import (
	"errors"
	"net/http"

	"github.com/m04kA/GalliPark-BookingService/internal/api/handlers"
	quotePrice "github.com/m04kA/GalliPark-BookingService/internal/usecase/quote_price"
	"github.com/m04kA/GalliPark-BookingService/pkg/ptr"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequest     = "некорректные параметры расчёта"
	msgSpotNotFound       = "парковка не найдена"
	msgEventNotFound      = "событие не найдено"
)

type Handler struct {
	useCase QuotePriceUseCase
	logger  Logger
}

func NewHandler(useCase QuotePriceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/pricing/quote
// Ничего не сохраняет; итоговая цена при создании может отличаться, если изменятся события
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /pricing/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /pricing/quote - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("POST /pricing/quote - Rejected: spot_id=%d, reason=%v", req.SpotID, err)
			return
		}

		switch {
		case errors.Is(err, quotePrice.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, quotePrice.ErrSpotNotFound):
			h.logger.Warn("POST /pricing/quote - Spot not found: spot_id=%d", req.SpotID)
			handlers.RespondNotFound(w, msgSpotNotFound)

		case errors.Is(err, quotePrice.ErrEventNotFound):
			h.logger.Warn("POST /pricing/quote - Event not found: event_id=%d", ptr.Deref(req.UtsavEventID, 0))
			handlers.RespondNotFound(w, msgEventNotFound)

		default:
			h.logger.Error("POST /pricing/quote - Failed: spot_id=%d, error=%v", req.SpotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /pricing/quote - OK: spot_id=%d, total=%s", req.SpotID, result.TotalPrice)
	handlers.RespondJSON(w, http.StatusOK, FromPricingResult(useCaseReq, result))
}
