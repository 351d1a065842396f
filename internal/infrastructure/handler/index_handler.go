package handler

import (
	"net/http"

	"github.com/damon-houk/cotacao/internal/application/service"
	"github.com/damon-houk/cotacao/internal/domain/entity"
	"github.com/damon-houk/cotacao/internal/infrastructure/logger"
	"github.com/damon-houk/cotacao/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// IndexHandler serves the landing page
type IndexHandler struct {
	today  func() string
	render negotiator
	logger logger.Logger
}

// NewIndexHandler creates an index handler showing today's date from quotes
func NewIndexHandler(quotes *service.QuoteService, log logger.Logger) *IndexHandler {
	log = logger.OrDefault(log)

	return &IndexHandler{
		today:  func() string { return entity.FormatDate(quotes.Today()) },
		render: newNegotiator(log),
		logger: log,
	}
}

func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	err := h.render.pick(r).Index(w, http.StatusOK, newIndexResponse(h.today()))
	h.render.logRenderError(requestID, err)
}

// RegisterRoutes registers the index routes
func (h *IndexHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/", h.Index).Methods(http.MethodGet)
	router.HandleFunc("/cotacao/", h.Index).Methods(http.MethodGet)
}
