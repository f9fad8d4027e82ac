package logger

import "go.uber.org/zap"

// Standard field names for consistent structured logging across offsetter.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Files and locations
	FieldFile   = "file"
	FieldOutput = "output"

	// Layout domain
	FieldStruct  = "struct"
	FieldField   = "field"
	FieldOffset  = "offset"
	FieldSize    = "size"
	FieldSegment = "segment"
	FieldCount   = "count"

	// Generation
	FieldPackage = "package"
	FieldMode    = "mode"
	FieldChecked = "checked"

	// Errors
	FieldError = "error"
)

// Package-level logging helpers delegating to the global logger, so callers
// don't need to thread Logger through every function.

func Debugw(msg string, keysAndValues ...interface{}) { Logger.Debugw(msg, keysAndValues...) }
func Infow(msg string, keysAndValues ...interface{})  { Logger.Infow(msg, keysAndValues...) }
func Warnw(msg string, keysAndValues ...interface{})  { Logger.Warnw(msg, keysAndValues...) }
func Errorw(msg string, keysAndValues ...interface{}) { Logger.Errorw(msg, keysAndValues...) }

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	w := &Watcher{logger: logger.ComponentLogger("layoutfile.watch")}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
