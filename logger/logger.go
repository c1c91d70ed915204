// Package logger configures structured logging for the pipelines and
// the CLI: JSON lines to stderr plus a rotating per-run log file.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Fields aliases logrus.Fields for callers.
type Fields = logrus.Fields

// New builds a component-scoped entry. Logs go to stderr and, when dir
// is non-empty, to a rotating file under dir.
func New(component, dir, filename string) *logrus.Entry {
	log := logrus.New()
	log.SetLevel(levelFromEnv())
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	var out io.Writer = os.Stderr
	if dir != "" {
		if filename == "" {
			filename = component + ".log"
		}
		out = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   filepath.Join(dir, filename),
			MaxSize:    20, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
		})
	}
	log.SetOutput(out)

	return log.WithField("component", component)
}

func levelFromEnv() logrus.Level {
	s := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if s == "" {
		return logrus.InfoLevel
	}
	lvl, err := logrus.ParseLevel(s)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
