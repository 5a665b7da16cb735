package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/cognito-auth-gateway/app"
	"github.com/upb/cognito-auth-gateway/config"
	"github.com/upb/cognito-auth-gateway/identity"
	"go.uber.org/zap/zaptest"
)

type fakeProvider struct {
	calls int
}

func (f *fakeProvider) SignUp(context.Context, string, string) (*identity.SignUpResult, error) {
	f.calls++
	return &identity.SignUpResult{UserSub: "sub-1"}, nil
}

func (f *fakeProvider) Authenticate(_ context.Context, email, password string) (*identity.AuthResult, error) {
	f.calls++
	if password != "correct" {
		return nil, identity.ErrNotAuthorized
	}
	return &identity.AuthResult{AccessToken: "at", IDToken: "it", RefreshToken: "rt", ExpiresIn: 3600, TokenType: "Bearer"}, nil
}

func (f *fakeProvider) ConfirmSignUp(context.Context, string, string) error {
	f.calls++
	return identity.ErrExpiredCode
}

func newTestServer(t *testing.T, metricsEnabled bool) (*httptest.Server, *fakeProvider) {
	t.Helper()
	cfg := &config.Config{
		Environment: "test",
		Runtime:     config.RuntimeHTTP,
		Cognito:     config.CognitoConfig{Region: "us-east-1", UserPoolID: "pool", ClientID: "client"},
		Auth:        config.AuthConfig{RoutingMode: config.RoutingModePath, ExposeErrorDetail: true},
		Observability: config.ObservabilityConfig{
			LogLevel:       "error",
			MetricsEnabled: metricsEnabled,
		},
	}
	provider := &fakeProvider{}
	deps, err := app.NewDependenciesWithProvider(cfg, zaptest.NewLogger(t), provider)
	require.NoError(t, err)

	ts := httptest.NewServer(SetupRoutes(deps))
	t.Cleanup(ts.Close)
	return ts, provider
}

func post(t *testing.T, url, body string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func TestAuthRoutes(t *testing.T) {
	ts, provider := newTestServer(t, true)

	testCases := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{"signup", "/auth/signup", `{"email":"a@b.com","password":"pw"}`, http.StatusOK, `{"message":"User created","userSub":"sub-1","userConfirmed":false}`},
		{"login", "/auth/login", `{"email":"a@b.com","password":"correct"}`, http.StatusOK, `{"accessToken":"at","idToken":"it","refreshToken":"rt","expiresIn":3600,"tokenType":"Bearer"}`},
		{"login rejected", "/auth/login", `{"email":"a@b.com","password":"nope"}`, http.StatusUnauthorized, `{"error":"Invalid username or password"}`},
		{"confirm expired", "/auth/confirm", `{"email":"a@b.com","code":"1"}`, http.StatusBadRequest, `{"error":"Confirmation code expired"}`},
		{"action login", "/auth", `{"action":"login","email":"a@b.com","password":"correct"}`, http.StatusOK, `{"accessToken":"at","idToken":"it","refreshToken":"rt","expiresIn":3600,"tokenType":"Bearer"}`},
		{"action unknown", "/auth", `{"action":"delete"}`, http.StatusBadRequest, `{"error":"Unknown action"}`},
		{"missing fields", "/auth/signup", `{"email":"a@b.com"}`, http.StatusBadRequest, `{"error":"email and password are required"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := post(t, ts.URL+tc.path, tc.body)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
			assert.JSONEq(t, tc.wantBody, body)
		})
	}

	assert.Equal(t, 5, provider.calls)
}

func TestHealthAndStatus(t *testing.T) {
	ts, _ := newTestServer(t, false)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])

	statusResp, err := http.Get(ts.URL + "/status")
	require.NoError(t, err)
	defer statusResp.Body.Close()
	assert.Equal(t, http.StatusOK, statusResp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	t.Run("exposed when enabled", func(t *testing.T) {
		ts, _ := newTestServer(t, true)
		post(t, ts.URL+"/auth/signup", `{"email":"a@b.com","password":"pw"}`)

		resp, err := http.Get(ts.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(data), "auth_gateway_requests_total")
	})

	t.Run("absent when disabled", func(t *testing.T) {
		ts, _ := newTestServer(t, false)

		resp, err := http.Get(ts.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestFallbackHandlers(t *testing.T) {
	ts, _ := newTestServer(t, false)

	resp, err := http.Get(ts.URL + "/nowhere")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "endpoint not found", body["error"])

	resp2, err := http.Get(ts.URL + "/auth/login")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp2.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	ts, _ := newTestServer(t, false)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/auth/login", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}
