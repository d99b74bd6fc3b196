// Package logging wraps the application's structured logger behind a small
// interface so components can be handed a logger (or a mock) explicitly.
package logging

// Logger is the structured logger used by every component.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a logger that attaches err to every entry.
	WithError(err error) Logger
	WithField(key string, value interface{}) Logger
	WithFields(fields ...Field) Logger
}

// Field is a key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field inline.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}
