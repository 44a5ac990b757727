package log

// MultiLogger fans events out to several loggers, e.g. a SlogAdapter for the
// console and a FileLogger for the capture file.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger returns a MultiLogger over the given loggers. Nil entries
// and NoopLoggers are skipped; nested MultiLoggers are flattened, keeping
// argument order.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		m.add(l)
	}
	return m
}

func (m *MultiLogger) add(l Logger) {
	switch l := l.(type) {
	case nil, NoopLogger, *NoopLogger:
		// Discards everything.
	case *MultiLogger:
		if l == nil {
			return
		}
		for _, inner := range l.loggers {
			m.add(inner)
		}
	default:
		m.loggers = append(m.loggers, l)
	}
}

// Len returns the number of sinks events are sent to.
func (m *MultiLogger) Len() int {
	return len(m.loggers)
}

// Log sends event to every logger in order.
func (m *MultiLogger) Log(event Event) {
	for _, l := range m.loggers {
		l.Log(event)
	}
}

// Compile-time interface satisfaction check.
var _ Logger = (*MultiLogger)(nil)
