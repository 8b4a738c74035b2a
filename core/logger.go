package core

// Logger logs messages along with optional args: errors, map[string]interface{} extras
// and domain values the implementation knows how to describe.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
