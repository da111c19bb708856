package logging

// MockLogger is a mock implementation of the Logger interface for testing.
// It captures log entries for verification in tests.
type MockLogger struct {
	Entries       []LogEntry
	pendingError  error
	pendingFields []Field
}

// LogEntry represents a single log entry captured by MockLogger.
type LogEntry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	allFields := append(m.pendingFields, fields...)
	m.Entries = append(m.Entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  allFields,
		Error:   m.pendingError,
	})
}

// Debug logs a debug-level message with optional fields.
func (m *MockLogger) Debug(msg string, fields ...Field) {
	m.record("DEBUG", msg, fields)
}

// Info logs an info-level message with optional fields.
func (m *MockLogger) Info(msg string, fields ...Field) {
	m.record("INFO", msg, fields)
}

// Warn logs a warning-level message with optional fields.
func (m *MockLogger) Warn(msg string, fields ...Field) {
	m.record("WARN", msg, fields)
}

// Error logs an error-level message with optional fields.
func (m *MockLogger) Error(msg string, fields ...Field) {
	m.record("ERROR", msg, fields)
}

// Fatal records a fatal-level entry. Unlike a real logger it does not exit,
// so tests can assert on fatal paths.
func (m *MockLogger) Fatal(msg string, fields ...Field) {
	m.record("FATAL", msg, fields)
}

// WithError returns a new logger with an error field attached.
func (m *MockLogger) WithError(err error) Logger {
	return &MockLogger{
		Entries:       m.Entries,
		pendingError:  err,
		pendingFields: m.pendingFields,
	}
}

// WithField returns a new logger with a single field attached.
func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m.WithFields(Field{Key: key, Value: value})
}

// WithFields returns a new logger with multiple fields attached.
func (m *MockLogger) WithFields(fields ...Field) Logger {
	combined := append(append([]Field{}, m.pendingFields...), fields...)
	return &MockLogger{
		Entries:       m.Entries,
		pendingError:  m.pendingError,
		pendingFields: combined,
	}
}

// HasEntry reports whether an entry with the given level and message was logged.
func (m *MockLogger) HasEntry(level, message string) bool {
	for _, e := range m.Entries {
		if e.Level == level && e.Message == message {
			return true
		}
	}
	return false
}
