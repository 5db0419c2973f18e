package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	uuid "github.com/satori/go.uuid"

	"github.com/pivolan/userbase_dashboard/dashboard"
	"github.com/pivolan/userbase_dashboard/dataset"
	"github.com/pivolan/userbase_dashboard/domain/models"
	"github.com/pivolan/userbase_dashboard/engine"
	"github.com/pivolan/userbase_dashboard/plot"
	"github.com/pivolan/userbase_dashboard/report"
)

type webHandler struct {
	ds      *dataset.Dataset
	options models.DatasetOptions
	log     *slog.Logger
}

func newWebHandler(ds *dataset.Dataset, logger *slog.Logger) *webHandler {
	return &webHandler{
		ds:      ds,
		options: ds.Options(),
		log:     logger.With("module", "web"),
	}
}

func (h *webHandler) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.handleDashboard)
	mux.HandleFunc("GET /api/options", h.handleOptions)
	mux.HandleFunc("GET /api/dashboard", h.handleBundle)
	mux.HandleFunc("GET /api/dashboard.txt", h.handleReport)
	mux.HandleFunc("GET /chart/{name}", h.handleChart)
	return h.withRequestLog(mux)
}

// parseSelection builds a filter from repeatable tier/country params and an
// optional age_min/age_max pair. A missing bound falls back to the dataset bound;
// an inverted range is kept and simply matches nothing.
func parseSelection(q url.Values, options models.DatasetOptions) (models.FilterSelection, error) {
	tiers := trimValues(q["tier"])
	countries := trimValues(q["country"])

	minRaw := strings.TrimSpace(q.Get("age_min"))
	maxRaw := strings.TrimSpace(q.Get("age_max"))
	if minRaw == "" && maxRaw == "" {
		return models.NewFilterSelection(tiers, countries, nil), nil
	}

	ageRange := models.AgeRange{Min: options.AgeMin, Max: options.AgeMax}
	var err error
	if minRaw != "" {
		if ageRange.Min, err = strconv.Atoi(minRaw); err != nil {
			return models.FilterSelection{}, fmt.Errorf("age_min: %q is not an integer", minRaw)
		}
	}
	if maxRaw != "" {
		if ageRange.Max, err = strconv.Atoi(maxRaw); err != nil {
			return models.FilterSelection{}, fmt.Errorf("age_max: %q is not an integer", maxRaw)
		}
	}
	return models.NewFilterSelection(tiers, countries, &ageRange), nil
}

// trimValues keeps repeated params whole, category names may contain commas.
func trimValues(raw []string) []string {
	var out []string
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (h *webHandler) apply(w http.ResponseWriter, r *http.Request) (models.AggregateBundle, models.FilterSelection, bool) {
	sel, err := parseSelection(r.URL.Query(), h.options)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return models.AggregateBundle{}, sel, false
	}
	return engine.Apply(h.ds, sel), sel, true
}

func (h *webHandler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	bundle, sel, ok := h.apply(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboard.Render(w, bundle, h.options, sel); err != nil {
		h.log.Error("render dashboard", "error", err)
		http.Error(w, "Error rendering dashboard", http.StatusInternalServerError)
	}
}

func (h *webHandler) handleOptions(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.options)
}

func (h *webHandler) handleBundle(w http.ResponseWriter, r *http.Request) {
	bundle, _, ok := h.apply(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, bundle)
}

func (h *webHandler) handleReport(w http.ResponseWriter, r *http.Request) {
	bundle, _, ok := h.apply(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, report.GenerateReport(bundle, report.ParseFormat(r.URL.Query().Get("format"))))
}

func (h *webHandler) handleChart(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(r.PathValue("name"), ".png")
	if !ok || plot.Title(name) == "" {
		http.NotFound(w, r)
		return
	}
	bundle, _, ok := h.apply(w, r)
	if !ok {
		return
	}

	img, err := plot.DrawChart(bundle, name)
	if errors.Is(err, plot.ErrNoData) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		h.log.Error("draw chart", "chart", name, "error", err)
		http.Error(w, "Error drawing chart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(img)
}

func (h *webHandler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("encode response", "error", err)
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (h *webHandler) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewV4().String()
		w.Header().Set("X-Request-Id", requestID)

		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(lrw, r)

		h.log.Info("request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", lrw.statusCode,
			"duration", time.Since(start),
		)
	})
}
