package provider

import (
	"context"
	"encoding/json"
	"log/slog"
)

const (
	// LogSessionIDKey is the attribute carrying the per-call session id.
	LogSessionIDKey = "sessionId"
	// LogIDTypeKey is the attribute carrying the identity-type tag.
	LogIDTypeKey = "idType"
	// IDType tags every record emitted by the dispatcher.
	IDType = "BIOSDK"

	// RequestLogMessage and ResponseLogMessage are emitted when request and
	// response logging is enabled.
	RequestLogMessage  = "biosdk request"
	ResponseLogMessage = "biosdk response"

	noSessionID = "-"
)

type sessionKey struct{}

// WithSessionID returns a copy of ctx carrying the session id used to key
// dispatcher log records.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

// SessionID returns the session id stored in ctx, or "-".
func SessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionKey{}).(string); ok && id != "" {
		return id
	}
	return noSessionID
}

// logPayload emits v as JSON under msg when enabled. Nothing about v is
// logged otherwise, biometric payloads stay out of the logs by default.
func logPayload[T any](log *slog.Logger, enabled bool, msg string, v T) {
	if !enabled {
		return
	}
	body, err := json.Marshal(v)
	if err != nil {
		log.Debug(msg, "err", err)
		return
	}
	log.Debug(msg, "payload", string(body))
}
