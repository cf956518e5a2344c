package utils

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus with additional functionality
type Logger struct {
	*logrus.Logger
	fields logrus.Fields
}

// NewLogger creates a logger configured from STATUSBOARD_LOG_LEVEL/LOG_LEVEL
// and STATUSBOARD_LOG_FORMAT/LOG_FORMAT. Unknown levels fall back to info.
func NewLogger() *Logger {
	logger := logrus.New()
	logger.SetLevel(parseLevel(GetEnv("STATUSBOARD_LOG_LEVEL", os.Getenv("LOG_LEVEL"))))
	logger.SetFormatter(newFormatter(GetEnv("STATUSBOARD_LOG_FORMAT", os.Getenv("LOG_FORMAT"))))

	return &Logger{
		Logger: logger,
		fields: make(logrus.Fields),
	}
}

func parseLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}

func newFormatter(format string) logrus.Formatter {
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return &logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		}
	}
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		ForceColors:     shouldUseColors(),
	}
}

// WithField returns a copy of the logger with key set
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.WithFields(logrus.Fields{key: value})
}

// WithFields returns a copy of the logger with fields merged over the current ones
func (l *Logger) WithFields(fields logrus.Fields) *Logger {
	merged := make(logrus.Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{Logger: l.Logger, fields: merged}
}

func (l *Logger) WithError(err error) *Logger {
	return l.WithField("error", err)
}

func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

func (l *Logger) WithStatusPage(name string) *Logger {
	return l.WithField("status_page", name)
}

// WithURL adds the upstream status page URL
func (l *Logger) WithURL(url string) *Logger {
	return l.WithField("url", url)
}

// WithTransition records a status change of one page
func (l *Logger) WithTransition(page, from, to string) *Logger {
	return l.WithFields(logrus.Fields{"status_page": page, "from": from, "to": to})
}

func (l *Logger) entry() *logrus.Entry {
	return l.Logger.WithFields(l.fields)
}

func (l *Logger) Debug(args ...interface{})                 { l.entry().Debug(args...) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.entry().Debugf(format, args...) }
func (l *Logger) Info(args ...interface{})                  { l.entry().Info(args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.entry().Infof(format, args...) }
func (l *Logger) Warn(args ...interface{})                  { l.entry().Warn(args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.entry().Warnf(format, args...) }
func (l *Logger) Error(args ...interface{})                 { l.entry().Error(args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.entry().Errorf(format, args...) }

// shouldUseColors determines if colored output should be used
func shouldUseColors() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return os.Getenv("FORCE_COLOR") != ""
}

var defaultLogger = NewLogger()

// SetGlobalLogger sets the global logger instance
func SetGlobalLogger(logger *Logger) {
	defaultLogger = logger
}

// GetGlobalLogger returns the global logger instance.
// Packages derive their own with GetGlobalLogger().WithComponent("name").
func GetGlobalLogger() *Logger {
	return defaultLogger
}

// SetLevelString parses level and applies it, keeping the current level on error
func (l *Logger) SetLevelString(level string) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	l.Logger.SetLevel(parsed)
	return nil
}
