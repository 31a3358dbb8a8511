package debug

import (
	"github.com/retroenv/retrogolib/log"
)

// NewLogger creates a logger with the level selected by the verbosity flags.
func NewLogger(verbose, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if verbose {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// LoggerOrDefault returns l, or a logger that only reports errors if l is nil.
func LoggerOrDefault(l *log.Logger) *log.Logger {
	if l != nil {
		return l
	}
	return NewLogger(false, true)
}
