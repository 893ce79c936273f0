// Package logger provides leveled logging for the Purview MCP server.
// All output goes to stderr so that stdout stays reserved for the stdio
// MCP transport.
package logger

import (
	"log"
	"os"
	"sync/atomic"
)

// Level represents a logging level.
type Level int32

const (
	// LevelError logs only errors.
	LevelError Level = iota
	// LevelWarn logs warnings and errors.
	LevelWarn
	// LevelInfo logs informational messages and above.
	LevelInfo
	// LevelDebug logs everything.
	LevelDebug
)

var (
	level  atomic.Int32
	stderr = log.New(os.Stderr, "", log.LstdFlags)
)

func init() {
	level.Store(int32(LevelInfo))
}

// SetLevel sets the global logging level.
func SetLevel(l Level) {
	level.Store(int32(l))
}

// SetVerbose enables debug logging when verbose is true.
func SetVerbose(verbose bool) {
	if verbose {
		SetLevel(LevelDebug)
	} else {
		SetLevel(LevelInfo)
	}
}

// GetLevel returns the current logging level.
func GetLevel() Level {
	return Level(level.Load())
}

// Debugf logs a debug message.
func Debugf(format string, args ...interface{}) {
	if GetLevel() >= LevelDebug {
		stderr.Printf("DEBUG: "+format, args...)
	}
}

// Infof logs an informational message.
func Infof(format string, args ...interface{}) {
	if GetLevel() >= LevelInfo {
		stderr.Printf("INFO: "+format, args...)
	}
}

// Warnf logs a warning message.
func Warnf(format string, args ...interface{}) {
	if GetLevel() >= LevelWarn {
		stderr.Printf("WARN: "+format, args...)
	}
}

// Errorf logs an error message.
func Errorf(format string, args ...interface{}) {
	if GetLevel() >= LevelError {
		stderr.Printf("ERROR: "+format, args...)
	}
}
