package logging

import (
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// ErrLevel is returned by Setup for a level name logrus does not know.
var ErrLevel = errors.New("unknown log level")

// Setup configures the standard logrus logger. With a file path, output is
// appended there; otherwise it goes to fallback. The returned func closes
// the file, if any.
func Setup(level, file string, fallback io.Writer) (func() error, error) {
	lvl := log.InfoLevel
	if level != "" {
		var err error
		lvl, err = log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("%w %q", ErrLevel, level)
		}
	}
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if file == "" {
		log.SetOutput(fallback)
		return func() error { return nil }, nil
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return f.Close, nil
}
