// Package logger initializes the application-internal logrus logger from
// the loaded configuration.
package logger

import (
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/certmint/certmint/cmd/certmint/config"
)

const logFileName = "certmint.log"

// Init configures the global logrus logger according to the logging
// section of the loaded config. It must be called after config.Load.
func Init() {
	c := config.Get().Logging.Internal

	level, err := log.ParseLevel(c.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	var writers []io.Writer
	if c.Dir != "" {
		f, err := os.OpenFile(
			filepath.Join(c.Dir, logFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644,
		)
		if err != nil {
			log.WithError(err).Error("could not open log file, logging to stderr")
		} else {
			writers = append(writers, f)
		}
	}
	if c.StdErr || len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}
	log.SetOutput(io.MultiWriter(writers...))
}
