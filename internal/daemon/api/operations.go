package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/tombee/textchef/internal/daemon/httputil"
	"github.com/tombee/textchef/internal/log"
	"github.com/tombee/textchef/internal/tracing"
)

// ExecuteRequest is the body of POST /api/execute.
type ExecuteRequest struct {
	Operation  *string        `json:"operation"`
	Input      *string        `json:"input"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// handleListOperations handles GET /api/operations.
func (r *Router) handleListOperations(w http.ResponseWriter, req *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, r.registry.List())
}

// handleExecute handles POST /api/execute. Every well-formed request gets a
// 200 with a Result, including failures of the operation itself.
func (r *Router) handleExecute(w http.ResponseWriter, req *http.Request) {
	var body ExecuteRequest
	if err := httputil.DecodeJSON(w, req, r.config.MaxRequestBytes, &body); err != nil {
		if errors.Is(err, httputil.ErrBodyTooLarge) {
			httputil.WriteError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", r.config.MaxRequestBytes))
			return
		}
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.Operation == nil {
		httputil.WriteError(w, http.StatusBadRequest, "missing field: operation")
		return
	}
	if body.Input == nil {
		httputil.WriteError(w, http.StatusBadRequest, "missing field: input")
		return
	}

	params, err := stringParams(body.Parameters)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	requestID := log.RequestIDFromContext(req.Context())
	_, span := tracing.StartExecution(req.Context(), r.tracer, *body.Operation, len(*body.Input), requestID)
	result := r.registry.Execute(*body.Operation, *body.Input, params)
	failure := ""
	if result.Error != nil {
		failure = *result.Error
	}
	span.End(result.Success, failure)

	if !result.Success {
		r.logger.Debug("operation failed",
			slog.String(log.RequestIDKey, requestID),
			slog.String(log.OperationKey, *body.Operation),
			slog.String("error", failure),
		)
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// stringParams flattens parameter values to the text the registry coerces.
// Strings pass through; numbers and booleans use their JSON spelling.
func stringParams(in map[string]any) (map[string]string, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch val := v.(type) {
		case string:
			out[k] = val
		case float64:
			out[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(val)
		case nil:
			// An explicit null is treated as absent.
		default:
			return nil, fmt.Errorf("parameter %q must be a string, number or boolean", k)
		}
	}
	return out, nil
}
