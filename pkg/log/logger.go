package log

// Logger receives protocol events.
// Pass nil or NoopLogger to disable capture.
type Logger interface {
	// Log records an event. It is called from the client's driving loop and
	// should return quickly.
	Log(event Event)
}

// NoopLogger discards all events. The zero value is ready to use.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// Compile-time interface satisfaction check.
var _ Logger = NoopLogger{}
