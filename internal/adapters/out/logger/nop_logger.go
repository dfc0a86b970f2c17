package logger

import "github.com/suchimauz/photographer-availability-resolver/internal/core/ports/out"

type NopLogger struct{}

func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

func (l *NopLogger) Debug(event string, fields out.LogFields) {}
func (l *NopLogger) Info(event string, fields out.LogFields)  {}
func (l *NopLogger) Warn(event string, fields out.LogFields)  {}
func (l *NopLogger) Error(event string, fields out.LogFields) {}

func (l *NopLogger) WithFields(fields out.LogFields) out.LoggerPort { return l }
func (l *NopLogger) WithModule(module string) out.LoggerPort        { return l }
