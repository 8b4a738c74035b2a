package apps

import "fmt"

// ArgumentError reports a command-line argument that could not be used.
type ArgumentError struct {
	Arg string
	msg string
}

func NewArgumentError(arg, format string, args ...interface{}) *ArgumentError {
	return &ArgumentError{Arg: arg, msg: fmt.Sprintf(format, args...)}
}

func (err *ArgumentError) Error() string {
	return "-" + err.Arg + ": " + err.msg
}
