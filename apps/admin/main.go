package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rollbar/rollbar-go"
	"github.com/rs/zerolog"

	"github.com/trezcool/masomo-web/core"
	"github.com/trezcool/masomo-web/services/logger"
	"github.com/trezcool/masomo-web/services/submit"
)

func main() {
	conf := core.NewConfig()

	level := zerolog.InfoLevel
	if conf.Debug {
		level = zerolog.DebugLevel
	}
	std := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Str("app", "admin").
		Logger()
	logger := logsvc.NewRollbarLogger(std, conf)

	// start CLI
	cli := newCommandLine(conf, logger, submitsvc.NewConsoleSubmitter(os.Stdout, conf.AppName), os.Stdin, os.Stdout)
	err := cli.run(os.Args)
	rollbar.Wait()
	if err != nil {
		if err != errHelp {
			_, _ = fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
