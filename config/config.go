package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// RuntimeLambda serves invocations through the AWS Lambda runtime API
	RuntimeLambda = "lambda"
	// RuntimeHTTP serves requests from a standalone HTTP server
	RuntimeHTTP = "http"

	// RoutingModePath selects the operation from the request path suffix
	RoutingModePath = "path"
	// RoutingModeAction selects the operation from the payload "action" field
	RoutingModeAction = "action"
)

// Config represents the complete application configuration
type Config struct {
	Server        ServerConfig
	Cognito       CognitoConfig
	Auth          AuthConfig
	Observability ObservabilityConfig
	Runtime       string
	Environment   string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	TLS             struct {
		Enabled  bool
		CertFile string
		KeyFile  string
	}
}

// CognitoConfig holds AWS Cognito user pool configuration
type CognitoConfig struct {
	Region       string
	UserPoolID   string
	ClientID     string
	ClientSecret string // Optional; when set every call carries a SECRET_HASH
	Endpoint     string // Optional endpoint override (e.g. a local Cognito emulator)
}

// AuthConfig holds request routing and error reporting behaviour
type AuthConfig struct {
	RoutingMode       string
	ExposeErrorDetail bool
}

// ObservabilityConfig holds logging and metrics configuration
type ObservabilityConfig struct {
	LogLevel       string
	LogFormat      string // json or console; console by default in development
	MetricsEnabled bool
}

// New creates a new Config instance by loading environment variables
func New(ctx context.Context) (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Runtime:     getEnv("RUNTIME", defaultRuntime()),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getPort(),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			TLS: struct {
				Enabled  bool
				CertFile string
				KeyFile  string
			}{
				Enabled:  getEnvAsBool("TLS_ENABLED", false),
				CertFile: getEnv("TLS_CERT_FILE", "certs/cert.pem"),
				KeyFile:  getEnv("TLS_KEY_FILE", "certs/key.pem"),
			},
		},
		Cognito: CognitoConfig{
			Region:       getEnvFirst([]string{"COGNITO_REGION", "AWS_REGION"}, "us-east-1"),
			UserPoolID:   getEnvFirst([]string{"COGNITO_USER_POOL_ID", "USER_POOL_ID"}, ""),
			ClientID:     getEnvFirst([]string{"COGNITO_CLIENT_ID", "CLIENT_ID"}, ""),
			ClientSecret: getEnv("COGNITO_CLIENT_SECRET", ""),
			Endpoint:     getEnv("COGNITO_ENDPOINT", ""),
		},
		Auth: AuthConfig{
			RoutingMode:       getEnv("ROUTING_MODE", RoutingModePath),
			ExposeErrorDetail: getEnvAsBool("EXPOSE_ERROR_DETAIL", true),
		},
		Observability: ObservabilityConfig{
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			LogFormat:      getEnv("LOG_FORMAT", ""),
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
		},
	}

	if cfg.Observability.LogFormat == "" {
		cfg.Observability.LogFormat = "json"
		if cfg.IsDevelopment() {
			cfg.Observability.LogFormat = "console"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if all required configuration fields are set
func (c *Config) Validate() error {
	if c.Cognito.UserPoolID == "" {
		return fmt.Errorf("cognito user pool ID is required: set COGNITO_USER_POOL_ID or USER_POOL_ID")
	}
	if c.Cognito.ClientID == "" {
		return fmt.Errorf("cognito client ID is required: set COGNITO_CLIENT_ID or CLIENT_ID")
	}
	if c.Cognito.Region == "" {
		return fmt.Errorf("cognito region is required")
	}

	switch c.Runtime {
	case RuntimeLambda, RuntimeHTTP:
	default:
		return fmt.Errorf("invalid runtime %q: must be %q or %q", c.Runtime, RuntimeLambda, RuntimeHTTP)
	}

	switch c.Auth.RoutingMode {
	case RoutingModePath, RoutingModeAction:
	default:
		return fmt.Errorf("invalid routing mode %q: must be %q or %q", c.Auth.RoutingMode, RoutingModePath, RoutingModeAction)
	}

	if c.Runtime == RuntimeHTTP && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Observability.LogLevel == "" {
		return fmt.Errorf("log level is required")
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// IsLambda returns true when the process is driven by the Lambda runtime
func (c *Config) IsLambda() bool {
	return c.Runtime == RuntimeLambda
}

// Address returns the HTTP server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Helper functions

// defaultRuntime picks lambda when the Lambda runtime environment is present
func defaultRuntime() string {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		return RuntimeLambda
	}
	return RuntimeHTTP
}

// getPort returns the server port from PORT or SERVER_PORT env vars (default: 8080)
func getPort() int {
	if value := os.Getenv("PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	if value := os.Getenv("SERVER_PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	return 8080
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvFirst returns the first non-empty value among keys
func getEnvFirst(keys []string, defaultValue string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
