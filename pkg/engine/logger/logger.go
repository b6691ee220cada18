// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger. It is usable before Init with logrus defaults.
var Log = logrus.New()

// Init configures Log from LOG_LEVEL and LOG_FORMAT.
func Init() {
	Configure(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), os.Stdout)
}

// Configure sets the level, format ("json" or text) and output of Log.
// An unknown or empty level falls back to info.
func Configure(levelName, format string, out io.Writer) {
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	Log.SetOutput(out)
}

// For returns an entry tagged with the component name.
func For(component string) *logrus.Entry {
	return Log.WithField("component", component)
}
