package core

import "log"

// Logger is the app-wide logging contract. Error/Fatal accept extra args
// (wrapped errors, request info) that implementations may report upstream.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

type stdLogger struct {
	std *log.Logger
}

var _ Logger = (*stdLogger)(nil)

// NewStdLogger returns a Logger backed by the standard library only.
func NewStdLogger(std *log.Logger) Logger {
	return &stdLogger{std: std}
}

func (l stdLogger) Enable(bool) {}

func (l stdLogger) print(lvl, msg string, args []interface{}) {
	l.std.Printf("%s: %s", lvl, msg)
	for _, arg := range args {
		l.std.Printf("%+v", arg)
	}
}

func (l stdLogger) Debug(msg string, args ...interface{}) { l.print("DEBUG", msg, args) }
func (l stdLogger) Info(msg string, args ...interface{})  { l.print("INFO", msg, args) }
func (l stdLogger) Warn(msg string, args ...interface{})  { l.print("WARN", msg, args) }
func (l stdLogger) Error(msg string, args ...interface{}) { l.print("ERROR", msg, args) }

func (l stdLogger) Fatal(msg string, args ...interface{}) {
	l.print("FATAL", msg, args)
	l.std.Fatal(msg)
}
