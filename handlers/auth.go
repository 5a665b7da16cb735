package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/upb/cognito-auth-gateway/app"
	"github.com/upb/cognito-auth-gateway/auth"
	"github.com/upb/cognito-auth-gateway/internal/observability"
	"github.com/upb/cognito-auth-gateway/utils"
	"go.uber.org/zap"
)

// maxBodyBytes caps the request body read from HTTP clients
const maxBodyBytes = 64 << 10

// PathAuthHandler serves POST /auth/{signup,login,confirm}
func PathAuthHandler(deps *app.Dependencies) http.HandlerFunc {
	return gatewayHandler(deps.PathGateway, deps.Logger)
}

// ActionAuthHandler serves POST /auth with an "action" field in the body
func ActionAuthHandler(deps *app.Dependencies) http.HandlerFunc {
	return gatewayHandler(deps.ActionGateway, deps.Logger)
}

// gatewayHandler renders an HTTP request as an API Gateway style event and
// writes the gateway response back verbatim.
func gatewayHandler(gw *auth.Gateway, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				_ = utils.WriteError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			observability.LoggerFromContext(r.Context(), logger).Warn("failed to read request body", zap.Error(err))
			_ = utils.WriteError(w, http.StatusBadRequest, "failed to read request body")
			return
		}

		event := auth.Event{
			"body":    string(body),
			"rawPath": r.URL.Path,
			"requestContext": map[string]any{
				"http": map[string]any{
					"path":   r.URL.Path,
					"method": r.Method,
				},
			},
		}

		resp := gw.Handle(r.Context(), event)
		if err := utils.WriteRaw(w, resp.StatusCode, resp.Headers, resp.Body); err != nil {
			observability.LoggerFromContext(r.Context(), logger).Error("failed to write response", zap.Error(err))
		}
	}
}
