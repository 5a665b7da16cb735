package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/cognito-auth-gateway/app"
	"github.com/upb/cognito-auth-gateway/config"
	"github.com/upb/cognito-auth-gateway/identity"
	"go.uber.org/zap/zaptest"
)

// MockProvider mocks identity.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) SignUp(ctx context.Context, email, password string) (*identity.SignUpResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.SignUpResult), args.Error(1)
}

func (m *MockProvider) Authenticate(ctx context.Context, email, password string) (*identity.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.AuthResult), args.Error(1)
}

func (m *MockProvider) ConfirmSignUp(ctx context.Context, email, code string) error {
	return m.Called(ctx, email, code).Error(0)
}

func testDeps(t *testing.T, provider identity.Provider, mode string) *app.Dependencies {
	t.Helper()
	cfg := &config.Config{
		Environment: "test",
		Runtime:     config.RuntimeHTTP,
		Cognito: config.CognitoConfig{
			Region:     "us-east-1",
			UserPoolID: "us-east-1_test",
			ClientID:   "test-client",
		},
		Auth: config.AuthConfig{
			RoutingMode:       mode,
			ExposeErrorDetail: true,
		},
		Observability: config.ObservabilityConfig{
			LogLevel:       "error",
			MetricsEnabled: true,
		},
	}
	deps, err := app.NewDependenciesWithProvider(cfg, zaptest.NewLogger(t), provider)
	require.NoError(t, err)
	return deps
}
