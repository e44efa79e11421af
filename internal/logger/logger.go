// Package logger builds the shared logrus instance plus the component
// loggers used by the prediction engine and the ingestion pipeline.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a logger at the given level. Unknown levels fall
// back to info. Production gets JSON lines; everything else gets
// colored text.
func NewLogger(logLevel string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
		l.Warnf("Invalid log level '%s', defaulting to info", logLevel)
	}
	l.SetLevel(level)
	l.SetFormatter(formatterForEnv(os.Getenv("ENVIRONMENT")))

	return l
}

func formatterForEnv(env string) logrus.Formatter {
	if env == "production" {
		return &logrus.JSONFormatter{}
	}
	return &logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   true,
	}
}
