package notify

import (
	"context"

	"github.com/charmbracelet/log"
)

// LogSink writes notifications to the service log. It stands in for a desktop
// notification when no messaging provider is configured.
type LogSink struct {
	logger *log.Logger
}

func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Notify(_ context.Context, title, body string) error {
	s.logger.Info("notify: "+title, "body", body)
	return nil
}

var _ Sink = (*LogSink)(nil)
