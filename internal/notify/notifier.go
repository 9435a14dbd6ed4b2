package notify

// Notifier delivers one human-readable message to the operator. Send
// reports whether delivery succeeded; it never panics and converts I/O
// errors into a false return. Messages longer than the transport limit are
// truncated with a visible marker rather than rejected.
type Notifier interface {
	Send(message string) bool
}

// TruncationMarker is appended when a message is cut to fit the transport.
const TruncationMarker = "\n\n[...]"

// truncate cuts message to fit maxLen bytes, appending the marker.
func truncate(message string, maxLen int) string {
	if len(message) <= maxLen {
		return message
	}
	return message[:maxLen-len(TruncationMarker)] + TruncationMarker
}
