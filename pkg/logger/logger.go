package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds the process logger.
// format is "json" or "text"; unknown levels fall back to info.
func New(level, format string) *logrus.Logger {
	logg := logrus.New()
	logg.SetOutput(os.Stdout)

	if strings.EqualFold(format, "text") {
		logg.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logg.SetFormatter(&logrus.JSONFormatter{})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logg.SetLevel(lvl)

	return logg
}

// Discard returns a logger that drops everything. Used by tests and by
// services constructed without a logger.
func Discard() *logrus.Logger {
	logg := logrus.New()
	logg.SetOutput(io.Discard)
	logg.SetLevel(logrus.PanicLevel)
	return logg
}

// LogError writes a structured error entry with the module and function that failed.
func LogError(logger *logrus.Logger, moduleName, funcName string, data any, err error) {
	if err == nil {
		return
	}
	logger.WithFields(logrus.Fields{
		"module":   moduleName,
		"function": funcName,
		"data":     data,
	}).Error(err)
}
