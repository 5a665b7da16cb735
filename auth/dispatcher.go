package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/upb/cognito-auth-gateway/identity"
	"github.com/upb/cognito-auth-gateway/internal/observability"
	"github.com/upb/cognito-auth-gateway/utils"
	"go.uber.org/zap"
)

// Outcome labels recorded for requests that never reach a provider condition
const (
	OutcomeOK               = "ok"
	OutcomeMissingFields    = "missing_fields"
	OutcomeUnknownOperation = "unknown_operation"
	OutcomeProviderError    = "provider_error"
)

const genericFailureMessage = "Internal server error"

// Result is the status and JSON body produced for one request
type Result struct {
	Status  int
	Body    any
	Outcome string
}

// ErrorBody is the body of every failed request
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody is the body of a successful confirmation
type MessageBody struct {
	Message string `json:"message"`
}

// SignUpBody is the body of a successful sign-up
type SignUpBody struct {
	Message       string `json:"message"`
	UserSub       string `json:"userSub"`
	UserConfirmed bool   `json:"userConfirmed"`
}

// LoginBody is the body of a successful login: exactly the issued tokens
type LoginBody struct {
	AccessToken  string `json:"accessToken"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int32  `json:"expiresIn"`
	TokenType    string `json:"tokenType"`
}

type credentialsRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type confirmRequest struct {
	Email string `json:"email" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

// failure is how a known provider condition is reported for an operation.
// target is matched with errors.Is, which compares conditions.
type failure struct {
	target  error
	status  int
	message string
}

var (
	signUpFailures = []failure{
		{identity.ErrUsernameExists, http.StatusConflict, "User already exists"},
	}
	loginFailures = []failure{
		{identity.ErrNotAuthorized, http.StatusUnauthorized, "Invalid username or password"},
		{identity.ErrUserNotConfirmed, http.StatusForbidden, "User is not confirmed"},
	}
	confirmFailures = []failure{
		{identity.ErrCodeMismatch, http.StatusBadRequest, "Invalid confirmation code"},
		{identity.ErrExpiredCode, http.StatusBadRequest, "Confirmation code expired"},
	}
)

// Dispatcher validates a request, calls the identity provider and maps the
// outcome to a status and body. It holds no per-request state.
type Dispatcher struct {
	provider          identity.Provider
	logger            *zap.Logger
	exposeErrorDetail bool
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithLogger sets the fallback logger used when the context carries none
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithErrorDetail controls whether unclassified provider failures echo their
// description to the caller (the default) or answer with an opaque message.
func WithErrorDetail(expose bool) Option {
	return func(d *Dispatcher) {
		d.exposeErrorDetail = expose
	}
}

// NewDispatcher creates a dispatcher over provider
func NewDispatcher(provider identity.Provider, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		provider:          provider,
		logger:            zap.NewNop(),
		exposeErrorDetail: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch runs the operation selected by disc against payload
func (d *Dispatcher) Dispatch(ctx context.Context, disc Discriminator, payload Payload) Result {
	switch disc.Operation {
	case OpSignUp:
		return d.signUp(ctx, payload)
	case OpLogin:
		return d.login(ctx, payload)
	case OpConfirm:
		return d.confirm(ctx, payload)
	}

	return Result{
		Status:  http.StatusBadRequest,
		Body:    ErrorBody{Error: unknownMessage(disc.Source)},
		Outcome: OutcomeUnknownOperation,
	}
}

func unknownMessage(source Source) string {
	if source == SourceAction {
		return "Unknown action"
	}
	return "Unknown path"
}

func (d *Dispatcher) signUp(ctx context.Context, payload Payload) Result {
	req := credentialsRequest{Email: payload.Get(FieldEmail), Password: payload.Get(FieldPassword)}
	if err := utils.ValidateStruct(req); err != nil {
		return d.missingFields(ctx, err, "email and password are required")
	}

	out, err := d.provider.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return d.providerFailure(ctx, OpSignUp, err, signUpFailures)
	}

	return Result{
		Status: http.StatusOK,
		Body: SignUpBody{
			Message:       "User created",
			UserSub:       out.UserSub,
			UserConfirmed: out.UserConfirmed,
		},
		Outcome: OutcomeOK,
	}
}

func (d *Dispatcher) login(ctx context.Context, payload Payload) Result {
	req := credentialsRequest{Email: payload.Get(FieldEmail), Password: payload.Get(FieldPassword)}
	if err := utils.ValidateStruct(req); err != nil {
		return d.missingFields(ctx, err, "email and password are required")
	}

	out, err := d.provider.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return d.providerFailure(ctx, OpLogin, err, loginFailures)
	}

	if out.Subject != "" {
		d.log(ctx).Debug("login succeeded", zap.String("user_sub", out.Subject))
	}

	return Result{
		Status: http.StatusOK,
		Body: LoginBody{
			AccessToken:  out.AccessToken,
			IDToken:      out.IDToken,
			RefreshToken: out.RefreshToken,
			ExpiresIn:    out.ExpiresIn,
			TokenType:    out.TokenType,
		},
		Outcome: OutcomeOK,
	}
}

func (d *Dispatcher) confirm(ctx context.Context, payload Payload) Result {
	req := confirmRequest{Email: payload.Get(FieldEmail), Code: payload.Get(FieldCode)}
	if err := utils.ValidateStruct(req); err != nil {
		return d.missingFields(ctx, err, "email and code are required")
	}

	if err := d.provider.ConfirmSignUp(ctx, req.Email, req.Code); err != nil {
		return d.providerFailure(ctx, OpConfirm, err, confirmFailures)
	}

	return Result{
		Status:  http.StatusOK,
		Body:    MessageBody{Message: "User confirmed"},
		Outcome: OutcomeOK,
	}
}

func (d *Dispatcher) missingFields(ctx context.Context, err error, message string) Result {
	var verr *utils.ValidationError
	if errors.As(err, &verr) {
		d.log(ctx).Info("request rejected", zap.Strings("missing_fields", verr.FieldNames()))
	}

	return Result{
		Status:  http.StatusBadRequest,
		Body:    ErrorBody{Error: message},
		Outcome: OutcomeMissingFields,
	}
}

// providerFailure maps err through the operation's table of known
// conditions. Anything else is a 500.
func (d *Dispatcher) providerFailure(ctx context.Context, op Operation, err error, known []failure) Result {
	condition := identity.ConditionOf(err)
	for _, f := range known {
		if !errors.Is(err, f.target) {
			continue
		}
		d.log(ctx).Info("provider rejected request",
			zap.String("operation", string(op)),
			zap.String("condition", string(condition)),
			zap.Int("status", f.status))
		return Result{
			Status:  f.status,
			Body:    ErrorBody{Error: f.message},
			Outcome: string(condition),
		}
	}

	d.log(ctx).Error("provider call failed",
		zap.String("operation", string(op)),
		zap.String("condition", string(condition)),
		zap.String("code", identity.CodeOf(err)),
		zap.Error(err))

	message := genericFailureMessage
	if d.exposeErrorDetail {
		if desc := identity.Describe(err); desc != "" {
			message = desc
		}
	}

	return Result{
		Status:  http.StatusInternalServerError,
		Body:    ErrorBody{Error: message},
		Outcome: OutcomeProviderError,
	}
}

func (d *Dispatcher) log(ctx context.Context) *zap.Logger {
	return observability.LoggerFromContext(ctx, d.logger)
}
