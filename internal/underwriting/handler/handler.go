// Package handler exposes the underwriting pipeline over HTTP: a service
// info endpoint, a health probe, and the authenticated v1 evaluation routes.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"underwriter/internal/platform/middleware"
	"underwriter/internal/underwriting/models"
	"underwriter/internal/underwriting/service"
	dErrors "underwriter/pkg/domain-errors"
	"underwriter/pkg/platform/httputil"
)

const serviceVersion = "1.0.0"

// Service is the underwriting pipeline surface the handlers call.
type Service interface {
	Evaluate(ctx context.Context, app *models.Application) (*service.Result, error)
	EvaluateBatch(ctx context.Context, apps []models.Application) []service.BatchItem
}

// Handler wires underwriting endpoints to the pipeline service.
type Handler struct {
	service Service
	logger  *slog.Logger
	now     func() time.Time
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: svc,
		logger:  logger,
		now:     time.Now,
	}
}

// Register mounts the underwriting routes. Auth is applied by the caller on
// the v1 subtree, not here, so health probes stay unauthenticated.
func (h *Handler) Register(r chi.Router) {
	r.Post("/underwriting", h.HandleEvaluate)
	r.Post("/underwriting/batch", h.HandleEvaluateBatch)
}

// envelope is the uniform JSON response wrapper.
type envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	httputil.WriteJSON(w, status, envelope{
		Success:   status < http.StatusBadRequest,
		Message:   message,
		Data:      data,
		Timestamp: h.now().UTC().Format(time.RFC3339),
		RequestID: middleware.GetRequestID(r.Context()),
	})
}

// HandleRoot handles GET / with service discovery info.
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"service": "Insurance Underwriting API",
		"version": serviceVersion,
		"status":  "operational",
		"endpoints": map[string]string{
			"health":       "/health",
			"underwriting": "/api/v1/underwriting",
			"batch":        "/api/v1/underwriting/batch",
		},
	})
}

// HandleHealth handles GET /health.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"components": map[string]string{
			"rule_engine":  "available",
			"classifier":   "available",
			"verification": "available",
		},
	})
}

// evaluateRequest wraps a single application submission.
type evaluateRequest struct {
	ApplicantData models.Application `json:"applicant_data"`
}

// batchRequest wraps a batch submission.
type batchRequest struct {
	Applications []models.Application `json:"applications"`
}

// decisionPayload pairs the structured decision with its rendered report.
type decisionPayload struct {
	Decision *models.Decision `json:"decision"`
	Report   string           `json:"report"`
}

// HandleEvaluate handles POST /api/v1/underwriting.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid JSON body"))
		return
	}

	res, err := h.service.Evaluate(ctx, &req.ApplicantData)
	if err != nil {
		h.writeEvaluationError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, "Underwriting completed successfully", decisionPayload{
		Decision: res.Decision,
		Report:   RenderReport(res, h.now()),
	})
}

// HandleEvaluateBatch handles POST /api/v1/underwriting/batch. Item errors
// are positional; the batch itself succeeds unless the body is malformed or
// empty.
func (h *Handler) HandleEvaluateBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid JSON body"))
		return
	}
	if len(req.Applications) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "applications list is empty"))
		return
	}

	items := h.service.EvaluateBatch(ctx, req.Applications)

	type batchItem struct {
		Decision *models.Decision   `json:"decision,omitempty"`
		Error    string             `json:"error,omitempty"`
		Errors   []models.Violation `json:"validation_errors,omitempty"`
	}
	out := make([]batchItem, len(items))
	succeeded := 0
	for i, item := range items {
		if item.Err != nil {
			out[i].Error = item.Err.Error()
			var vErr *models.ValidationError
			if errors.As(item.Err, &vErr) {
				out[i].Errors = vErr.Violations
			}
			continue
		}
		out[i].Decision = item.Result.Decision
		succeeded++
	}

	h.respond(w, r, http.StatusOK, "Batch underwriting completed", map[string]any{
		"total":     len(out),
		"succeeded": succeeded,
		"failed":    len(out) - succeeded,
		"results":   out,
	})
}

// writeEvaluationError maps pipeline errors to the response envelope.
// Validation failures carry every violation so the caller can fix the
// submission in one round trip.
func (h *Handler) writeEvaluationError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		httputil.WriteJSON(w, http.StatusBadRequest, map[string]any{
			"success":           false,
			"message":           "Applicant data validation failed",
			"validation_errors": vErr.Violations,
			"request_id":        middleware.GetRequestID(r.Context()),
		})
		return
	}

	h.logger.ErrorContext(r.Context(), "underwriting request failed",
		"request_id", middleware.GetRequestID(r.Context()),
		"error", err,
	)
	httputil.WriteError(w, err)
}
