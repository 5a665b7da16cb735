package audit

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Event captures one auth attempt. Never carries passwords, codes or tokens.
type Event struct {
	Timestamp time.Time
	RequestID string
	Operation string
	Principal string // masked email
	Status    int
	Outcome   string
}

// Recorder receives audit events.
type Recorder interface {
	Record(ctx context.Context, event Event)
}

// LogRecorder writes audit events as structured log lines on a dedicated
// "audit" logger.
type LogRecorder struct {
	logger *zap.Logger
}

// NewLogRecorder creates a recorder on top of logger
func NewLogRecorder(logger *zap.Logger) *LogRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogRecorder{logger: logger.Named("audit")}
}

// Record implements Recorder
func (r *LogRecorder) Record(_ context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	r.logger.Info("auth attempt",
		zap.Time("at", event.Timestamp),
		zap.String("request_id", event.RequestID),
		zap.String("operation", event.Operation),
		zap.String("principal", event.Principal),
		zap.Int("status", event.Status),
		zap.String("outcome", event.Outcome),
	)
}

// MaskEmail keeps the first character of the local part and the domain,
// e.g. "jane.doe@example.com" -> "j***@example.com".
func MaskEmail(email string) string {
	if email == "" {
		return ""
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}
