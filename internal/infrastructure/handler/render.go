package handler

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"github.com/damon-houk/cotacao/internal/infrastructure/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Renderer writes the three kinds of page the service produces
type Renderer interface {
	Index(w http.ResponseWriter, status int, page IndexResponse) error
	Quote(w http.ResponseWriter, status int, page QuoteResponse) error
	Error(w http.ResponseWriter, status int, page ErrorResponse) error
}

// HTMLRenderer renders the embedded templates
type HTMLRenderer struct {
	templates *template.Template
}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{templates: pageTemplates}
}

func (r *HTMLRenderer) Index(w http.ResponseWriter, status int, page IndexResponse) error {
	return r.render(w, status, "index", page)
}

func (r *HTMLRenderer) Quote(w http.ResponseWriter, status int, page QuoteResponse) error {
	return r.render(w, status, "quote", newQuotePage(page))
}

func (r *HTMLRenderer) Error(w http.ResponseWriter, status int, page ErrorResponse) error {
	return r.render(w, status, "error", page)
}

// render executes into a buffer first so a template failure can still become a 500
func (r *HTMLRenderer) render(w http.ResponseWriter, status int, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// JSONRenderer writes the page models as JSON
type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

func (JSONRenderer) Index(w http.ResponseWriter, status int, page IndexResponse) error {
	return writeJSON(w, status, page)
}

func (JSONRenderer) Quote(w http.ResponseWriter, status int, page QuoteResponse) error {
	return writeJSON(w, status, page)
}

func (JSONRenderer) Error(w http.ResponseWriter, status int, page ErrorResponse) error {
	return writeJSON(w, status, page)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// negotiator picks the JSON renderer for clients that ask for it
type negotiator struct {
	html   Renderer
	json   Renderer
	logger logger.Logger
}

func newNegotiator(log logger.Logger) negotiator {
	return negotiator{
		html:   NewHTMLRenderer(),
		json:   NewJSONRenderer(),
		logger: logger.OrDefault(log),
	}
}

func (n negotiator) pick(r *http.Request) Renderer {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return n.json
	}
	return n.html
}

func (n negotiator) logRenderError(requestID string, err error) {
	if err == nil {
		return
	}
	n.logger.Error("Failed to render response", map[string]interface{}{
		"request_id": requestID,
		"error":      err.Error(),
	})
}
