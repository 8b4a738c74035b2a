package submitsvc

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-web/core/notice"
)

// ConsoleSubmitter prints every submitted notice as a document instead of publishing it.
type ConsoleSubmitter struct {
	out           io.Writer
	appName       string
	disableOutput bool
	nowFunc       func() time.Time // mockable

	mu        sync.Mutex
	submitted []notice.Notice
}

var _ notice.Submitter = (*ConsoleSubmitter)(nil)

func NewConsoleSubmitter(out io.Writer, appName string) *ConsoleSubmitter {
	return &ConsoleSubmitter{
		out:     out,
		appName: appName,
		nowFunc: time.Now,
	}
}

// NewConsoleSubmitterMock returns a submitter that only records what it receives.
func NewConsoleSubmitterMock() *ConsoleSubmitter {
	return &ConsoleSubmitter{
		out:           io.Discard,
		disableOutput: true,
		nowFunc:       time.Now,
	}
}

func (s *ConsoleSubmitter) Submit(ctx context.Context, n notice.Notice) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := notice.Marshal(n)
	if err != nil {
		return errors.Wrap(err, "rendering notice")
	}
	if !s.disableOutput {
		if err := s.write(n, doc); err != nil {
			return errors.Wrap(err, "writing notice")
		}
	}

	s.mu.Lock()
	s.submitted = append(s.submitted, n)
	s.mu.Unlock()
	return nil
}

func (s *ConsoleSubmitter) write(n notice.Notice, doc []byte) error {
	body := new(strings.Builder)

	// header
	if s.appName != "" {
		_, _ = fmt.Fprintf(body, "From: %s\n", s.appName)
	}
	_, _ = fmt.Fprintf(body, "Submitted-At: %s\n", s.nowFunc().UTC().Format(time.RFC1123Z))
	_, _ = fmt.Fprintf(body, "Notice-ID: %s\n", n.ID)
	_, _ = fmt.Fprint(body, "\n")

	body.Write(doc)

	_, err := io.WriteString(s.out, body.String())
	return err
}

// Submitted returns a copy of the notices received so far.
func (s *ConsoleSubmitter) Submitted() []notice.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]notice.Notice, len(s.submitted))
	copy(out, s.submitted)
	return out
}
