package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger with JSON output at level.
// Unknown levels fall back to info.
func Setup(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(ParseLevel(level))
}

func ParseLevel(level string) logrus.Level {
	l, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return l
}
