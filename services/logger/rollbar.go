package logsvc

import (
	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"
	"github.com/rs/zerolog"

	"github.com/trezcool/masomo-web/core"
	"github.com/trezcool/masomo-web/core/notice"
)

// RollbarLogger reports to Rollbar and writes every entry to a zerolog logger.
type RollbarLogger struct {
	std zerolog.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std zerolog.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	rollbar.SetEnabled(conf.RollbarToken != "" && !conf.Debug && !conf.TestMode)
	return &RollbarLogger{std: std}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// expected fmt: msg | error, map[string]interface{}, notice.Notice
func (l RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	newArgs := make([]interface{}, 0, len(args)+1)
	newArgs = append(newArgs, msg)
	for _, arg := range args {
		if n, ok := arg.(notice.Notice); ok {
			newArgs = append(newArgs, noticeExtras(n))
		} else {
			newArgs = append(newArgs, arg)
		}
	}
	return newArgs
}

func (l RollbarLogger) print(ev *zerolog.Event, msg string, args []interface{}) {
	for _, arg := range args {
		switch a := arg.(type) {
		case error:
			ev = ev.Err(a)
		case map[string]interface{}:
			ev = ev.Fields(a)
		case notice.Notice:
			ev = ev.Fields(noticeExtras(a))
		default:
			ev = ev.Interface("arg", a)
		}
	}
	ev.Msg(msg)
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	rollbar.Debug(l.prepare(msg, args)...)
	l.print(l.std.Debug(), msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	rollbar.Info(l.prepare(msg, args)...)
	l.print(l.std.Info(), msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	rollbar.Warning(l.prepare(msg, args)...)
	l.print(l.std.Warn(), msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(l.prepare(msg, args)...)
	l.print(l.std.Error(), msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	rollbar.Critical(l.prepare(msg, args)...)
	rollbar.Wait()
	l.print(l.std.Fatal(), msg, args)
}

func noticeExtras(n notice.Notice) map[string]interface{} {
	return map[string]interface{}{
		"notice_id":    n.ID.String(),
		"notice_title": n.Title,
		"notice_date":  n.Date,
	}
}
