package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/upb/cognito-auth-gateway/auth"
	"github.com/upb/cognito-auth-gateway/cognito"
	"github.com/upb/cognito-auth-gateway/config"
	"github.com/upb/cognito-auth-gateway/identity"
	"github.com/upb/cognito-auth-gateway/internal/audit"
	"github.com/upb/cognito-auth-gateway/internal/observability"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config  *config.Config
	Logger  *zap.Logger
	Metrics observability.Metrics

	// MetricsHandler serves the Prometheus registry; nil when metrics are disabled
	MetricsHandler http.Handler

	// Identity provider shared by every gateway
	Provider identity.Provider
	Audit    audit.Recorder

	// Gateways, one per discriminator source
	PathGateway   *auth.Gateway
	ActionGateway *auth.Gateway
}

// NewDependencies creates and wires up all application dependencies,
// including the Cognito client built from cfg.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	client, err := cognito.NewCognitoClient(ctx, cognito.Config{
		Region:       cfg.Cognito.Region,
		UserPoolID:   cfg.Cognito.UserPoolID,
		ClientID:     cfg.Cognito.ClientID,
		ClientSecret: cfg.Cognito.ClientSecret,
		Endpoint:     cfg.Cognito.Endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cognito client: %w", err)
	}

	logger.Info("cognito client initialized",
		zap.String("region", cfg.Cognito.Region),
		zap.String("user_pool_id", cfg.Cognito.UserPoolID),
		zap.Bool("client_secret", cfg.Cognito.ClientSecret != ""),
		zap.Bool("custom_endpoint", cfg.Cognito.Endpoint != ""))

	return NewDependenciesWithProvider(cfg, logger, client)
}

// NewDependenciesWithProvider wires everything around an existing provider
func NewDependenciesWithProvider(cfg *config.Config, logger *zap.Logger, provider identity.Provider) (*Dependencies, error) {
	if provider == nil {
		return nil, fmt.Errorf("identity provider is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	deps := &Dependencies{
		Config:   cfg,
		Logger:   logger,
		Provider: provider,
		Audit:    audit.NewLogRecorder(logger),
	}

	deps.initMetrics(cfg)
	deps.initGateways(cfg)

	if cfg.IsProduction() && cfg.Auth.ExposeErrorDetail {
		logger.Warn("provider error details are returned to callers; set EXPOSE_ERROR_DETAIL=false to hide them")
	}

	logger.Info("all dependencies initialized successfully",
		zap.String("runtime", cfg.Runtime),
		zap.String("routing_mode", cfg.Auth.RoutingMode))
	return deps, nil
}

// initMetrics installs the Prometheus collectors or a no-op recorder
func (d *Dependencies) initMetrics(cfg *config.Config) {
	if !cfg.Observability.MetricsEnabled {
		d.Metrics = observability.NopMetrics{}
		return
	}
	m := observability.NewPrometheusMetrics("auth_gateway")
	d.Metrics = m
	d.MetricsHandler = m.Handler()
}

func (d *Dependencies) initGateways(cfg *config.Config) {
	opts := auth.GatewayOptions{
		Logger:            d.Logger,
		Metrics:           d.Metrics,
		Audit:             d.Audit,
		ExposeErrorDetail: cfg.Auth.ExposeErrorDetail,
	}
	d.PathGateway = auth.NewGateway(auth.PathClassifier{}, d.Provider, opts)
	d.ActionGateway = auth.NewGateway(auth.ActionClassifier{}, d.Provider, opts)
}

// Gateway returns the gateway selected by the configured routing mode
func (d *Dependencies) Gateway() *auth.Gateway {
	if d.Config != nil && d.Config.Auth.RoutingMode == config.RoutingModeAction {
		return d.ActionGateway
	}
	return d.PathGateway
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	if d.Logger != nil {
		d.Logger.Info("shutting down dependencies")
		// Sync fails on stderr/stdout on some platforms; nothing to recover
		_ = d.Logger.Sync()
	}
	return nil
}
