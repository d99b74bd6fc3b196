package logging

// MockLogger records entries instead of writing them. Loggers derived through
// WithField/WithError share the parent's entry list.
type MockLogger struct {
	store         *entryStore
	pendingError  error
	pendingFields []Field
}

type entryStore struct {
	entries []LogEntry
}

// LogEntry is a single captured log call.
type LogEntry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

// NewMockLogger returns an empty MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{store: &entryStore{}}
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	if m.store == nil {
		m.store = &entryStore{}
	}
	all := make([]Field, 0, len(m.pendingFields)+len(fields))
	all = append(all, m.pendingFields...)
	all = append(all, fields...)
	m.store.entries = append(m.store.entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  all,
		Error:   m.pendingError,
	})
}

// Debug captures a DEBUG entry.
func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("DEBUG", msg, fields) }

// Info captures an INFO entry.
func (m *MockLogger) Info(msg string, fields ...Field) { m.record("INFO", msg, fields) }

// Warn captures a WARN entry.
func (m *MockLogger) Warn(msg string, fields ...Field) { m.record("WARN", msg, fields) }

// Error captures an ERROR entry.
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("ERROR", msg, fields) }

// WithError returns a logger sharing m's entries that records err on each one.
func (m *MockLogger) WithError(err error) Logger {
	if m.store == nil {
		m.store = &entryStore{}
	}
	return &MockLogger{store: m.store, pendingError: err, pendingFields: m.pendingFields}
}

// WithField returns a logger sharing m's entries that adds key=value to each one.
func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m.WithFields(Field{Key: key, Value: value})
}

// WithFields returns a logger sharing m's entries that adds fields to each one.
func (m *MockLogger) WithFields(fields ...Field) Logger {
	if m.store == nil {
		m.store = &entryStore{}
	}
	all := make([]Field, 0, len(m.pendingFields)+len(fields))
	all = append(all, m.pendingFields...)
	all = append(all, fields...)
	return &MockLogger{store: m.store, pendingError: m.pendingError, pendingFields: all}
}

// Entries returns every captured entry in order.
func (m *MockLogger) Entries() []LogEntry {
	if m.store == nil {
		return nil
	}
	return m.store.entries
}

// EntriesByLevel filters captured entries by level ("DEBUG", "INFO", "WARN", "ERROR").
func (m *MockLogger) EntriesByLevel(level string) []LogEntry {
	var out []LogEntry
	for _, e := range m.Entries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// HasEntry reports whether an entry with the given level and message was captured.
func (m *MockLogger) HasEntry(level, message string) bool {
	for _, e := range m.Entries() {
		if e.Level == level && e.Message == message {
			return true
		}
	}
	return false
}
