package util

// Error wraps a message in the {"error": ...} body handlers return on
// failure.
func Error(message string) map[string]string {
	return map[string]string{"error": message}
}
