package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/upb/cognito-auth-gateway/identity"
	"github.com/upb/cognito-auth-gateway/internal/audit"
	"github.com/upb/cognito-auth-gateway/internal/observability"
	"github.com/upb/cognito-auth-gateway/middleware"
	"go.uber.org/zap"
)

// GatewayOptions configures a Gateway. Nil fields fall back to no-op
// implementations.
type GatewayOptions struct {
	Logger            *zap.Logger
	Metrics           observability.Metrics
	Audit             audit.Recorder
	ExposeErrorDetail bool
}

// Gateway turns one inbound event into exactly one Response
type Gateway struct {
	classifier Classifier
	dispatcher *Dispatcher
	logger     *zap.Logger
	metrics    observability.Metrics
	audit      audit.Recorder
}

// NewGateway composes the normalizer, classifier and dispatcher
func NewGateway(classifier Classifier, provider identity.Provider, opts GatewayOptions) *Gateway {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = observability.NopMetrics{}
	}
	recorder := opts.Audit
	if recorder == nil {
		recorder = audit.NewLogRecorder(logger)
	}

	return &Gateway{
		classifier: classifier,
		dispatcher: NewDispatcher(provider, WithLogger(logger), WithErrorDetail(opts.ExposeErrorDetail)),
		logger:     logger,
		metrics:    metrics,
		audit:      recorder,
	}
}

// Handle processes event. It never fails: every problem is reported through
// the returned status code.
func (g *Gateway) Handle(ctx context.Context, event Event) (resp Response) {
	start := time.Now()
	ctx, requestID := middleware.EnsureRequestID(ctx)

	logger := observability.LoggerFromContext(ctx, g.logger.With(zap.String("request_id", requestID)))

	payload := Normalize(event)
	disc := g.classifier.Classify(event, payload)
	logger = logger.With(zap.String("operation", operationLabel(disc)))
	ctx = observability.WithLogger(ctx, logger)

	result := Result{Status: http.StatusInternalServerError, Outcome: OutcomeProviderError}
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("panic while handling request", zap.Any("panic", rec), zap.Stack("stack"))
			result = Result{
				Status:  http.StatusInternalServerError,
				Body:    ErrorBody{Error: genericFailureMessage},
				Outcome: OutcomeProviderError,
			}
			resp = NewResponse(result.Status, result.Body)
		}
		g.observe(ctx, requestID, disc, payload, result, time.Since(start))
	}()

	result = g.dispatcher.Dispatch(ctx, disc, payload)
	resp = NewResponse(result.Status, result.Body)

	logger.Info("request handled",
		zap.Int("status", resp.StatusCode),
		zap.String("outcome", result.Outcome),
		zap.Duration("duration", time.Since(start)))

	return resp
}

func (g *Gateway) observe(ctx context.Context, requestID string, disc Discriminator, payload Payload, result Result, elapsed time.Duration) {
	g.metrics.RecordRequest(observability.RequestLabels{
		Operation: string(disc.Operation),
		Source:    string(disc.Source),
		Status:    result.Status,
	}, elapsed)

	g.audit.Record(ctx, audit.Event{
		Timestamp: time.Now().UTC(),
		RequestID: requestID,
		Operation: operationLabel(disc),
		Principal: audit.MaskEmail(payload.Get(FieldEmail)),
		Status:    result.Status,
		Outcome:   result.Outcome,
	})
}

func operationLabel(disc Discriminator) string {
	if !disc.Known() {
		return "unknown"
	}
	return string(disc.Operation)
}
