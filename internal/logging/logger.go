package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger defines a minimal, printf-style logging contract.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Nop returns a logger that discards all output.
func Nop() Logger {
	return nopLogger{}
}

// OrNop returns logger when non-nil, otherwise a no-op logger.
func OrNop(logger Logger) Logger {
	if logger == nil {
		return Nop()
	}
	return logger
}

// fileLogger writes timestamped component logs to an optional log file.
type fileLogger struct {
	mu        *sync.Mutex
	file      *os.File
	logger    *log.Logger
	level     LogLevel
	component string
}

var (
	rootOnce   sync.Once
	rootLogger *fileLogger
)

// root returns the process-wide logger, creating it on first use. File output
// is only enabled when FINQA_LOG_DIR is set; otherwise logs are discarded so
// library consumers stay quiet by default.
func root() *fileLogger {
	rootOnce.Do(func() {
		rootLogger = newFileLogger("", DEBUG, defaultLogPath())
	})
	return rootLogger
}

func defaultLogPath() string {
	if dir := os.Getenv("FINQA_LOG_DIR"); dir != "" {
		return filepath.Join(dir, fmt.Sprintf("finqa_%s.log", time.Now().Format("20060102_150405")))
	}
	return ""
}

func newFileLogger(component string, level LogLevel, path string) *fileLogger {
	l := &fileLogger{
		mu:        &sync.Mutex{},
		level:     level,
		component: component,
	}

	if path == "" {
		return l
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Printf("failed to create log directory: %v", err)
		return l
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Printf("failed to open log file: %v", err)
		return l
	}
	l.file = file
	l.logger = log.New(file, "", 0)
	return l
}

// NewComponentLogger returns the default application logger scoped to a component.
func NewComponentLogger(component string) Logger {
	base := root()
	return &fileLogger{
		mu:        base.mu,
		file:      base.file,
		logger:    base.logger,
		level:     base.level,
		component: component,
	}
}

func (l *fileLogger) logf(level LogLevel, format string, args ...any) {
	if level < l.level || l.logger == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("[%s] [%s] [%s] %s",
		time.Now().Format("2006-01-02 15:04:05.000"), level, l.component, msg)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Println(line)
}

func (l *fileLogger) Debug(format string, args ...any) { l.logf(DEBUG, format, args...) }
func (l *fileLogger) Info(format string, args ...any)  { l.logf(INFO, format, args...) }
func (l *fileLogger) Warn(format string, args ...any)  { l.logf(WARN, format, args...) }
func (l *fileLogger) Error(format string, args ...any) { l.logf(ERROR, format, args...) }
