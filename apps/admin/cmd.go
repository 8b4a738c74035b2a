package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/trezcool/masomo-web/core"
	"github.com/trezcool/masomo-web/core/dates"
	"github.com/trezcool/masomo-web/core/notice"
	"github.com/trezcool/masomo-web/core/seo"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf       *core.Config
	logger     core.Logger
	clock      *dates.Clock
	validate   *validator.Validate
	translator ut.Translator
	noticeSvc  *notice.Service
	seo        *seo.Builder

	in   *bufio.Reader
	inFd int
	out  io.Writer
}

func newCommandLine(conf *core.Config, logger core.Logger, submitter notice.Submitter, in io.Reader, out io.Writer) *commandLine {
	translator := core.NewTranslator()
	cli := &commandLine{
		conf:       conf,
		logger:     logger,
		clock:      dates.NewClock(conf.Location()),
		validate:   core.NewValidator(translator),
		translator: translator,
		noticeSvc:  notice.NewService(submitter, logger),
		seo:        seo.NewBuilder(conf.Site),
		in:         bufio.NewReader(in),
		inFd:       -1,
		out:        out,
	}
	if f, ok := in.(*os.File); ok {
		cli.inFd = int(f.Fd())
	}
	return cli
}

func (cli *commandLine) printUsage() {
	_, _ = fmt.Fprintln(cli.out, "Usage:")
	_, _ = fmt.Fprintln(cli.out, "  notice create -title TITLE -details DETAILS -date DATE - create a notice (missing values are prompted)")
	_, _ = fmt.Fprintln(cli.out, "  notice edit -from FILE [-title TITLE] [-details DETAILS] [-date DATE] [-save] - edit a notice document")
	_, _ = fmt.Fprintln(cli.out, "  notice check -title TITLE -details DETAILS -date DATE - validate notice values")
	_, _ = fmt.Fprintln(cli.out, "  date info -date DATE - describe a date")
	_, _ = fmt.Fprintln(cli.out, "  date age -birth DATE - age in whole years")
	_, _ = fmt.Fprintln(cli.out, "  date diff -from DATE -to DATE - days and hours between two dates")
	_, _ = fmt.Fprintln(cli.out, "  date shift -date DATE [-days N] [-months N] - move a date in the calendar")
	_, _ = fmt.Fprintln(cli.out, "  seo page [-title TITLE] [-path PATH] [-description TEXT] [-image URL] [-noindex] - page head tags")
	_, _ = fmt.Fprintln(cli.out, "  seo notice -from FILE - head tags of a notice's page")
	_, _ = fmt.Fprintln(cli.out, "  seo org - JSON-LD description of the school")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 3 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "notice":
		return cli.runNotice(args[2], args[3:])
	case "date":
		return cli.runDate(args[2], args[3:])
	case "seo":
		return cli.runSeo(args[2], args[3:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

// parseFlags parses args into fs, turning -h into errHelp.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	return nil
}

// isSet reports whether the flag name was given on the command line.
func isSet(fs *flag.FlagSet, name string) bool {
	var set bool
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// prompt asks for a value on the terminal. It returns "" when stdin is not a terminal.
func (cli *commandLine) prompt(label string) (string, error) {
	if cli.inFd < 0 || !isTerminalFunc(cli.inFd) {
		return "", nil
	}
	_, _ = fmt.Fprintf(cli.out, "%s: ", label)
	line, err := cli.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrap(err, "reading "+label)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// printFieldErrors writes {field: message} sorted by field and returns them as a validation error.
func (cli *commandLine) printFieldErrors(errs map[string]string) error {
	flds := core.SortedFieldErrors(errs)
	for _, fErr := range flds {
		_, _ = fmt.Fprintf(cli.out, "  %s: %s\n", fErr.Field, fErr.Error)
	}
	return core.NewValidationError(nil, flds...)
}
