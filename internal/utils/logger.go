package utils

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

const (
	defaultLogLevel = logrus.InfoLevel
	logFormatJSON   = "json"
)

// serviceHook tags every entry with the service name: as a message prefix
// for text output, as a field for JSON output.
type serviceHook struct {
	service string
	asField bool
}

func (h *serviceHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *serviceHook) Fire(entry *logrus.Entry) error {
	if h.asField {
		entry.Data["service"] = h.service
		return nil
	}
	entry.Message = "[" + h.service + "] " + entry.Message
	return nil
}

// InitLogger configures Logger from LOG_LEVEL and LOG_FORMAT. It may be
// called again; the service hook is replaced, not stacked.
func InitLogger(service string) {
	configureLogger(Logger, os.Stdout, service, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

func configureLogger(l *logrus.Logger, out io.Writer, service, levelStr, format string) {
	l.SetOutput(out)
	l.SetLevel(parseLogLevel(l, levelStr))

	asJSON := strings.EqualFold(strings.TrimSpace(format), logFormatJSON)
	if asJSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	l.ReplaceHooks(make(logrus.LevelHooks))
	l.AddHook(&serviceHook{service: service, asField: asJSON})
}

func parseLogLevel(l *logrus.Logger, s string) logrus.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return defaultLogLevel
	}
	level, err := logrus.ParseLevel(s)
	if err != nil {
		l.Warnf("Invalid LOG_LEVEL '%s', defaulting to %s", s, defaultLogLevel)
		return defaultLogLevel
	}
	return level
}
