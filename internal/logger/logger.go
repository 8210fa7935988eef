// Package logger builds the structured JSON logger used across msgview and
// the event records it emits for tolerated input problems.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/welldanyogia/webrana-msgview/internal/message"
)

// ParseLevel maps debug, info, warn and error to slog levels. Anything else
// is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a JSON logger on stdout.
func New(level string) *slog.Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter creates a JSON logger writing to w.
func NewWithWriter(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(handler)
}

// LogAnomalies writes one warning per anomaly of a built view.
// The flag value is logged quoted and truncated; it comes from stored data.
func LogAnomalies(logger *slog.Logger, uri string, anomalies message.Anomalies) {
	for _, a := range anomalies {
		logger.Warn("message_anomaly",
			slog.String("event_type", "message_anomaly"),
			slog.String("uri", uri),
			slog.String("field", a.Field),
			slog.String("value", truncate(a.Value, maxValueLen)),
			slog.String("error", a.Error()),
			slog.Time("timestamp", time.Now().UTC()),
		)
	}
}

// BuildFailure logs a row that could not be turned into a view.
func BuildFailure(logger *slog.Logger, kind string, id int64, err error) {
	logger.Warn("message_build_failed",
		slog.String("event_type", "build_failure"),
		slog.String("kind", kind),
		slog.Int64("id", id),
		slog.String("error", err.Error()),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

const maxValueLen = 64

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
