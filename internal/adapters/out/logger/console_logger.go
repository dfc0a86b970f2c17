package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/suchimauz/photographer-availability-resolver/internal/core/ports/out"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[37m"
)

var levelWeight = map[out.LogLevel]int{
	out.LogLevelDebug: 0,
	out.LogLevelInfo:  1,
	out.LogLevelWarn:  2,
	out.LogLevelError: 3,
}

type ConsoleLogger struct {
	defaultFields out.LogFields
	module        string
	location      *time.Location
	minLevel      out.LogLevel
	writer        io.Writer
	mu            *sync.Mutex
}

func NewConsoleLogger(timezone string, level string) (*ConsoleLogger, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	minLevel := out.LogLevel(strings.ToUpper(level))
	if _, ok := levelWeight[minLevel]; !ok {
		return nil, fmt.Errorf("unknown log level: %s", level)
	}

	return &ConsoleLogger{
		defaultFields: make(out.LogFields),
		location:      loc,
		minLevel:      minLevel,
		writer:        os.Stdout,
		mu:            &sync.Mutex{},
	}, nil
}

// SetOutput нужен для тестов и для вывода в stderr из CLI
func (l *ConsoleLogger) SetOutput(w io.Writer) {
	l.writer = w
}

func (l *ConsoleLogger) WithFields(fields out.LogFields) out.LoggerPort {
	newLogger := l.clone()

	// Добавляем новые поля поверх существующих
	for k, v := range fields {
		newLogger.defaultFields[k] = v
	}

	return newLogger
}

func (l *ConsoleLogger) WithModule(module string) out.LoggerPort {
	newLogger := l.clone()
	newLogger.module = module
	return newLogger
}

func (l *ConsoleLogger) clone() *ConsoleLogger {
	newLogger := &ConsoleLogger{
		defaultFields: make(out.LogFields, len(l.defaultFields)),
		module:        l.module,
		location:      l.location,
		minLevel:      l.minLevel,
		writer:        l.writer,
		mu:            l.mu,
	}
	for k, v := range l.defaultFields {
		newLogger.defaultFields[k] = v
	}
	return newLogger
}

func (l *ConsoleLogger) Debug(event string, fields out.LogFields) {
	l.log(out.LogLevelDebug, event, fields)
}

func (l *ConsoleLogger) Info(event string, fields out.LogFields) {
	l.log(out.LogLevelInfo, event, fields)
}

func (l *ConsoleLogger) Warn(event string, fields out.LogFields) {
	l.log(out.LogLevelWarn, event, fields)
}

func (l *ConsoleLogger) Error(event string, fields out.LogFields) {
	l.log(out.LogLevelError, event, fields)
}

func (l *ConsoleLogger) log(level out.LogLevel, event string, fields out.LogFields) {
	if levelWeight[level] < levelWeight[l.minLevel] {
		return
	}

	module := l.module
	if module == "" {
		module = "unknown"
	}

	// Объединяем поля
	mergedFields := make(out.LogFields, len(l.defaultFields)+len(fields)+1)
	for k, v := range l.defaultFields {
		mergedFields[k] = v
	}
	for k, v := range fields {
		mergedFields[k] = v
	}
	mergedFields["event"] = event

	timestamp := time.Now().In(l.location).Format("2006-01-02 15:04:05.000")

	var levelColor string
	switch level {
	case out.LogLevelDebug:
		levelColor = colorGray
	case out.LogLevelInfo:
		levelColor = colorGreen
	case out.LogLevelWarn:
		levelColor = colorYellow
	case out.LogLevelError:
		levelColor = colorRed
	}

	fieldsBytes, err := json.MarshalIndent(mergedFields, "", "  ")
	if err != nil {
		fieldsBytes = []byte(fmt.Sprintf("%+v", mergedFields))
	}

	logLine := fmt.Sprintf("%s[%s]%s %s[%s]%s %s[%s]%s\n%s\n",
		colorGray, timestamp, colorReset,
		levelColor, level, colorReset,
		colorCyan, module, colorReset,
		string(fieldsBytes),
	)

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.writer, logLine)
}
