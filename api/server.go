// Package api exposes the card codec over HTTP.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ustc21xyx/cardmeta"
	"github.com/ustc21xyx/cardmeta/png"
)

// request bodies are whole image files; cap them
const maxImageBytes = 64 << 20

// Config holds the HTTP server settings.
type Config struct {
	Addr string
}

// Server handles card extract/embed/strip requests.
type Server struct {
	metrics *Metrics
}

// NewServer returns a Server registering its metrics with reg.
func NewServer(reg prometheus.Registerer) *Server {
	return &Server{metrics: NewMetrics(reg)}
}

// Router builds the chi router for s.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.metrics.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))
		r.Post("/cards/extract", s.metrics.InstrumentHandler("POST", "/api/v1/cards/extract", s.handleExtract))
		r.Post("/cards/embed", s.metrics.InstrumentHandler("POST", "/api/v1/cards/embed", s.handleEmbed))
		r.Post("/cards/strip", s.metrics.InstrumentHandler("POST", "/api/v1/cards/strip", s.handleStrip))
	})

	return r
}

// Start runs the HTTP server until it fails.
func Start(cfg Config) error {
	s := NewServer(prometheus.DefaultRegisterer)
	return http.ListenAndServe(cfg.Addr, s.Router())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "ok"})
}

// extractResponse is the payload of a successful extract call.
type extractResponse struct {
	Keyword string          `json:"keyword"`
	Name    string          `json:"name,omitempty"`
	Spec    string          `json:"spec,omitempty"`
	Card    json.RawMessage `json:"card"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	p, err := readImage(r.Body)
	if err != nil {
		sendError(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	e, err := png.Extract(p)
	if err != nil {
		s.metrics.RecordOp("extract", false)
		switch errors.Cause(err) {
		case png.ErrCardNotFound:
			sendError(w, "no character card found", http.StatusNotFound)
		default:
			if _, ok := err.(*png.DecodeError); ok {
				sendError(w, err.Error(), http.StatusUnprocessableEntity)
			} else {
				sendError(w, err.Error(), http.StatusInternalServerError)
			}
		}
		return
	}

	card, err := cardmeta.ParseCard([]byte(e.Text))
	if err != nil {
		s.metrics.RecordOp("extract", false)
		sendError(w, "embedded card is not valid JSON", http.StatusUnprocessableEntity)
		return
	}

	s.metrics.RecordOp("extract", true)
	sendSuccess(w, extractResponse{
		Keyword: e.Keyword,
		Name:    card.Name(),
		Spec:    card.Version(),
		Card:    json.RawMessage(e.Text),
	})
}

func (s *Server) handleEmbed(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		sendError(w, "expected multipart form with image and card parts", http.StatusBadRequest)
		return
	}

	f, _, err := r.FormFile("image")
	if err != nil {
		sendError(w, "missing image part", http.StatusBadRequest)
		return
	}
	defer f.Close()

	p, err := readImage(f)
	if err != nil {
		sendError(w, "failed to read image part", http.StatusBadRequest)
		return
	}

	text := r.FormValue("card")
	if text == "" || !json.Valid([]byte(text)) {
		sendError(w, "card part must be a JSON document", http.StatusBadRequest)
		return
	}

	opt := png.EmbedOptions{
		WriteChara: boolValue(r.FormValue("chara"), true),
		WriteCCv3:  boolValue(r.FormValue("ccv3"), true),
	}

	out, err := png.Embed(p, text, &opt)
	if err != nil {
		s.metrics.RecordOp("embed", false)
		switch errors.Cause(err) {
		case png.ErrNotPNG, png.ErrMissingIEND:
			sendError(w, err.Error(), http.StatusBadRequest)
		default:
			sendError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	s.metrics.RecordOp("embed", true)
	sendPNG(w, out)
}

func (s *Server) handleStrip(w http.ResponseWriter, r *http.Request) {
	p, err := readImage(r.Body)
	if err != nil {
		sendError(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	out, err := png.Strip(p)
	if err != nil {
		s.metrics.RecordOp("strip", false)
		switch errors.Cause(err) {
		case png.ErrNotPNG, png.ErrMissingIEND:
			sendError(w, err.Error(), http.StatusBadRequest)
		default:
			sendError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	s.metrics.RecordOp("strip", true)
	sendPNG(w, out)
}

func readImage(r io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, maxImageBytes))
}

func boolValue(s string, def bool) bool {
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return v
}
