// Package logger provides structured logging for the application, built on
// logrus. Besides base logger construction it carries the domain audit
// loggers: PassLogger for injury reconciliation passes and PredictionLogger
// for prediction and recommendation events.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the application logger at the given level. Unknown levels
// fall back to info with a warning. Production environments log JSON, every
// other environment gets colored text output.
func NewLogger(logLevel string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetLevel(parseLevel(log, logLevel))
	log.SetFormatter(formatterForEnvironment(os.Getenv("GRIDIRON_PROPHET_APP_ENVIRONMENT")))
	return log
}

func parseLevel(log *logrus.Logger, raw string) logrus.Level {
	level, err := logrus.ParseLevel(raw)
	if err != nil {
		log.Warnf("Invalid log level '%s', defaulting to info", raw)
		return logrus.InfoLevel
	}
	return level
}

func formatterForEnvironment(env string) logrus.Formatter {
	if strings.EqualFold(env, "production") {
		return &logrus.JSONFormatter{}
	}
	return &logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   true,
	}
}
