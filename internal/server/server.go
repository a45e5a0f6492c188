// Package server exposes the calculation engine over a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iwvelando/auction-analyzer/internal/analysis"
	"github.com/iwvelando/auction-analyzer/internal/calculator"
	"github.com/iwvelando/auction-analyzer/internal/optimizer"
	"github.com/iwvelando/auction-analyzer/pkg/constants"
	"github.com/iwvelando/auction-analyzer/pkg/optimization"
	"github.com/iwvelando/auction-analyzer/pkg/output"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"
)

type handler struct {
	logger        *zap.Logger
	calc          *calculator.Calculator
	schema        *jsonschema.Schema
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the calculation API.
// A nil calc uses the default rates.
func NewHandler(logger *zap.Logger, calc *calculator.Calculator, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if calc == nil {
		var err error
		calc, err = calculator.New(calculator.DefaultRates())
		if err != nil {
			panic(fmt.Sprintf("default rates are invalid: %v", err))
		}
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	schema, err := compilePropertySchema()
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded property schema: %v", err))
	}

	h := &handler{
		logger:        logger,
		calc:          calc,
		schema:        schema,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
	}

	r := chi.NewRouter()
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.respondError(w, r, http.StatusNotFound, http.StatusText(http.StatusNotFound), "server.NotFound")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.respondError(w, r, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), "server.MethodNotAllowed")
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/calculate", h.handleCalculate)
		r.Get("/rates", h.handleRates)
		r.Get("/version", h.handleVersion)
	})

	return r
}

type calculateResponse struct {
	RequestID string                   `json:"requestId"`
	Input     calculator.PropertyInput `json:"input"`
	Result    calculator.Result        `json:"result"`
	Formatted map[string]string        `json:"formatted"`
	Warnings  []string                 `json:"warnings,omitempty"`
	MaxBid    *optimization.Summary    `json:"maxBid,omitempty"`
	Duration  string                   `json:"duration"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	start := time.Now()

	target, err := maxBidTarget(r)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxUploadSize))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err), op)
		return
	}

	if err := validateBody(h.schema, body); err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	rates := h.calc.Rates()
	in := calculator.PropertyInput{
		ITBIPercent:          rates.DefaultITBIPercent,
		AnalysisPeriodMonths: constants.DefaultAnalysisPeriodMonths,
	}
	if err := json.Unmarshal(body, &in); err != nil {
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode property: %v", err), op)
		return
	}

	report, err := analysis.Evaluate(h.logger, h.calc, in)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, analysis.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		h.respondError(w, r, status, err.Error(), op)
		return
	}

	if target != nil {
		summary, err := analysis.MaxBid(h.logger, h.calc, report.Input, *target)
		if err != nil {
			h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
			return
		}
		report.MaxBid = summary
	}

	h.writeJSON(w, http.StatusOK, calculateResponse{
		RequestID: RequestID(r.Context()),
		Input:     report.Input,
		Result:    report.Result,
		Formatted: output.Formatted(report.Result),
		Warnings:  report.Warnings,
		MaxBid:    report.MaxBid,
		Duration:  time.Since(start).String(),
	})
}

// maxBidTarget reads the optional maxBidMetric and maxBidTarget query
// parameters. It returns nil when no metric is requested.
func maxBidTarget(r *http.Request) (*optimizer.Target, error) {
	query := r.URL.Query()
	metric := query.Get("maxBidMetric")
	if metric == "" {
		return nil, nil
	}
	target := &optimizer.Target{Metric: metric}
	if raw := query.Get("maxBidTarget"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid maxBidTarget %q: %w", raw, err)
		}
		target.Minimum = value
	}
	return target, nil
}

func (h *handler) handleRates(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.calc.Rates())
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.String("requestId", RequestID(r.Context())),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
