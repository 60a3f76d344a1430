package biosdkhandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ruteri/biosdk-services/api"
	"github.com/ruteri/biosdk-services/provider"
)

const (
	// BasePath is the prefix of every biosdk route.
	BasePath = "/biosdk-service"

	// SessionIDHeader echoes the session id assigned to a call.
	SessionIDHeader = "X-Biosdk-Session-Id"

	// ResponseTimeLayout formats ResponseDto.ResponseTime.
	ResponseTimeLayout = "2006-01-02T15:04:05.000Z"

	// maxBodySize bounds request bodies. Samples and galleries carry
	// biometric images, so the limit is generous.
	maxBodySize = 64 * 1024 * 1024
)

// errMalformedEnvelope is reported when the transport body is not a RequestDto.
var errMalformedEnvelope = errors.New("malformed request envelope")

// Handler exposes a provider.ServiceProvider over HTTP.
type Handler struct {
	provider provider.ServiceProvider
	engineID string
	log      *slog.Logger

	now func() time.Time
}

// NewHandler creates a handler dispatching to p. engineID is reported by
// the status route only.
func NewHandler(p provider.ServiceProvider, engineID string, log *slog.Logger) *Handler {
	return &Handler{
		provider: p,
		engineID: engineID,
		log:      log,
		now:      time.Now,
	}
}

// RegisterRoutes mounts the biosdk routes on r under BasePath.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route(BasePath, func(r chi.Router) {
		r.Get("/", h.HandleStatusText)
		r.Get("/s", h.HandleStatus)

		r.Post("/init", h.dispatch(func(ctx context.Context, req api.RequestDto) (any, error) {
			return h.provider.Init(ctx, req)
		}))
		r.Post("/check-quality", h.dispatch(func(ctx context.Context, req api.RequestDto) (any, error) {
			return h.provider.CheckQuality(ctx, req)
		}))
		r.Post("/match", h.dispatch(func(ctx context.Context, req api.RequestDto) (any, error) {
			return h.provider.Match(ctx, req)
		}))
		r.Post("/extract-template", h.dispatch(func(ctx context.Context, req api.RequestDto) (any, error) {
			return h.provider.ExtractTemplate(ctx, req)
		}))
		r.Post("/segment", h.dispatch(func(ctx context.Context, req api.RequestDto) (any, error) {
			return h.provider.Segment(ctx, req)
		}))
		r.Post("/convert-format", h.dispatch(h.provider.ConvertFormat))
	})
}

// HandleStatusText reports liveness of the biosdk routes as plain text.
func (h *Handler) HandleStatusText(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("biosdk service is running, engine " + h.engineID))
}

// HandleStatus reports the spec version served and the loaded engine.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, api.ServiceStatus{
		Status:       "running",
		SpecVersions: []string{h.provider.SpecVersion()},
		EngineID:     h.engineID,
	})
}

type operation func(ctx context.Context, req api.RequestDto) (any, error)

// dispatch wraps an operation with envelope parsing, session id assignment
// and ResponseDto rendering.
func (h *Handler) dispatch(op operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := uuid.NewString()
		ctx := provider.WithSessionID(r.Context(), sessionID)
		w.Header().Set(SessionIDHeader, sessionID)

		var req api.RequestDto
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
			h.log.Warn("Could not parse request envelope", "sessionId", sessionID, "err", err)
			h.writeError(w, req.Version, http.StatusBadRequest, api.ErrorDto{
				ErrorCode: string(provider.InvalidRequestBody),
				Message:   errMalformedEnvelope.Error() + ": " + err.Error(),
			})
			return
		}

		result, err := op(ctx, req)
		if err != nil {
			status, dto := errorResponse(err)
			h.writeError(w, req.Version, status, dto)
			return
		}

		h.writeJSON(w, http.StatusOK, api.ResponseDto{
			Version:      h.version(req.Version),
			ResponseTime: h.responseTime(),
			Response:     result,
			Errors:       []api.ErrorDto{},
		})
	}
}

// errorResponse maps a dispatcher error onto an HTTP status and ErrorDto.
func errorResponse(err error) (int, api.ErrorDto) {
	var perr *provider.Error
	if !errors.As(err, &perr) {
		return http.StatusInternalServerError, api.ErrorDto{
			ErrorCode: string(provider.UncheckedException),
			Message:   err.Error(),
		}
	}

	status := http.StatusInternalServerError
	switch perr.Code {
	case provider.InvalidRequestBody, provider.UnsupportedVersion:
		status = http.StatusBadRequest
	}
	return status, api.ErrorDto{ErrorCode: string(perr.Code), Message: perr.Message}
}

func (h *Handler) writeError(w http.ResponseWriter, version string, status int, dto api.ErrorDto) {
	h.writeJSON(w, status, api.ResponseDto{
		Version:      h.version(version),
		ResponseTime: h.responseTime(),
		Errors:       []api.ErrorDto{dto},
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("Failed to encode response", "err", err)
	}
}

func (h *Handler) version(requested string) string {
	if requested != "" {
		return requested
	}
	return h.provider.SpecVersion()
}

func (h *Handler) responseTime() string {
	return h.now().UTC().Format(ResponseTimeLayout)
}
