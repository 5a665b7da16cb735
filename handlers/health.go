package handlers

import (
	"net/http"
	"time"

	"github.com/upb/cognito-auth-gateway/app"
	"github.com/upb/cognito-auth-gateway/utils"
)

// Version is the gateway build version, overridden with -ldflags
var Version = "0.1.0"

// HealthCheck returns a simple health check handler
func HealthCheck(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteJSON(w, http.StatusOK, map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// StatusHandler returns application status information
func StatusHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := map[string]interface{}{
			"version":     Version,
			"environment": deps.Config.Environment,
			"runtime":     deps.Config.Runtime,
			"routingMode": deps.Config.Auth.RoutingMode,
			"region":      deps.Config.Cognito.Region,
			"metrics":     deps.MetricsHandler != nil,
		}
		_ = utils.WriteJSON(w, http.StatusOK, response)
	}
}
