package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const prefix = "venue-booking"

// Logger логгер с printf-style API поверх charmbracelet/log.
// Пишет в stderr и, если указан файл, в файл с ротацией.
type Logger struct {
	l    *log.Logger
	file io.Closer
}

// New создает логгер. file может быть пустым - тогда только stderr.
// level: debug, info, warn, error.
func New(file, level string) (*Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	var (
		writer io.Writer = os.Stderr
		closer io.Closer
	)

	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return nil, fmt.Errorf("logger: create log directory: %w", err)
		}
		rotating := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}
		writer = io.MultiWriter(os.Stderr, rotating)
		closer = rotating
	}

	return &Logger{
		l: log.NewWithOptions(writer, log.Options{
			ReportTimestamp: true,
			Level:           lvl,
			Prefix:          prefix,
		}),
		file: closer,
	}, nil
}

// NewWithWriter создает логгер поверх произвольного writer (используется в тестах и CLI)
func NewWithWriter(w io.Writer, level string) *Logger {
	lvl, err := parseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return &Logger{
		l: log.NewWithOptions(w, log.Options{
			Level:  lvl,
			Prefix: prefix,
		}),
	}
}

// NewNop логгер, который ничего не пишет
func NewNop() *Logger {
	return NewWithWriter(io.Discard, "error")
}

func parseLevel(level string) (log.Level, error) {
	if strings.TrimSpace(level) == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("logger: invalid level %q: %w", level, err)
	}
	return lvl, nil
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.l.Debugf(format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.l.Infof(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.l.Warnf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.l.Errorf(format, v...)
}

// Fatal логирует и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.l.Fatalf(format, v...)
}

// With возвращает дочерний логгер с дополнительными полями (например, request_id)
func (l *Logger) With(keyvals ...interface{}) *Logger {
	return &Logger{l: l.l.With(keyvals...)}
}

// Close закрывает файл логов
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
