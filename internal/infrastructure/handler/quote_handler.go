// Package handler exposes the quote service over HTTP
package handler

import (
	"errors"
	"net/http"

	"github.com/damon-houk/cotacao/internal/application/service"
	domainsvc "github.com/damon-houk/cotacao/internal/domain/service"
	"github.com/damon-houk/cotacao/internal/infrastructure/logger"
	"github.com/damon-houk/cotacao/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// QuoteHandler handles HTTP requests for live and stored quotes
type QuoteHandler struct {
	service *service.QuoteService
	render  negotiator
	logger  logger.Logger
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(service *service.QuoteService, log logger.Logger) *QuoteHandler {
	log = logger.OrDefault(log)

	return &QuoteHandler{
		service: service,
		render:  newNegotiator(log),
		logger:  log,
	}
}

// LiveQuote queries the provider for every date in the range
func (h *QuoteHandler) LiveQuote(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, domainsvc.SourceLive)
}

// StoredQuote answers from previously stored quotes only
func (h *QuoteHandler) StoredQuote(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, domainsvc.SourceStored)
}

func (h *QuoteHandler) handle(w http.ResponseWriter, r *http.Request, source domainsvc.SourceKind) {
	requestID := middleware.GetRequestID(r.Context())
	vars := mux.Vars(r)

	req := service.QuoteRequest{
		Source:    source,
		Currency:  vars["currency"],
		StartDate: vars["start"],
		EndDate:   vars["end"],
	}

	h.logger.Info("Handling quote request", map[string]interface{}{
		"request_id": requestID,
		"source":     string(source),
		"currency":   req.Currency,
		"start_date": req.StartDate,
		"end_date":   req.EndDate,
	})

	renderer := h.render.pick(r)

	result, err := h.service.Handle(r.Context(), req)
	if err != nil {
		status, message, description := classifyError(err)

		fields := map[string]interface{}{
			"request_id": requestID,
			"source":     string(source),
			"status":     status,
			"error":      err.Error(),
		}
		if status >= http.StatusInternalServerError {
			h.logger.Error("Quote request failed", fields)
		} else {
			h.logger.Warn("Quote request rejected", fields)
		}

		h.render.logRenderError(requestID, renderer.Error(w, status, ErrorResponse{
			Error:       message,
			Status:      status,
			Description: description,
			RequestID:   requestID,
		}))
		return
	}

	h.logger.Info("Quote request served", map[string]interface{}{
		"request_id": requestID,
		"source":     string(source),
		"currency":   result.Currency.String(),
		"results":    len(result.Results),
	})

	h.render.logRenderError(requestID, renderer.Quote(w, http.StatusOK, newQuoteResponse(result)))
}

// classifyError maps service errors to a status code and user facing text
func classifyError(err error) (int, string, string) {
	switch {
	case errors.Is(err, service.ErrInvalidCurrency):
		return http.StatusBadRequest, "Invalid currency",
			"Currency must be one of BRL, EUR or JPY"
	case errors.Is(err, service.ErrDateParse):
		return http.StatusBadRequest, "Invalid date format",
			"Dates must be in YYYY-MM-DD format"
	case errors.Is(err, service.ErrInvalidDateOrder):
		return http.StatusUnprocessableEntity, "Invalid date range",
			"The start date must not be after the end date and neither may be in the future"
	case errors.Is(err, service.ErrRangeTooLong):
		// reported in-band, the request itself was well formed
		return http.StatusOK, "Date range too long",
			"The date range must cover at most 5 days"
	case errors.Is(err, service.ErrNoStoredData):
		return http.StatusPaymentRequired, "Quote not stored", err.Error()
	default:
		return http.StatusInternalServerError, "Internal server error",
			"An unexpected error occurred. Please try again later."
	}
}

// RegisterRoutes registers the quote handler routes
func (h *QuoteHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/cotacao/{currency}/{start}/", h.LiveQuote).Methods(http.MethodGet)
	router.HandleFunc("/cotacao/{currency}/{start}/{end}/", h.LiveQuote).Methods(http.MethodGet)
	router.HandleFunc("/cotacao-armazenada/{currency}/{start}/", h.StoredQuote).Methods(http.MethodGet)
	router.HandleFunc("/cotacao-armazenada/{currency}/{start}/{end}/", h.StoredQuote).Methods(http.MethodGet)

	h.logger.Info("Quote routes registered", map[string]interface{}{
		"routes": []string{
			"GET /cotacao/{currency}/{start}/[{end}/]",
			"GET /cotacao-armazenada/{currency}/{start}/[{end}/]",
		},
	})
}
