package notice

import (
	"context"
	"strings"
	"time"

	"github.com/trezcool/masomo-web/core"
)

var (
	testTranslator = core.NewTranslator()
	testValidate   = core.NewValidator(testTranslator)

	validTitle   = "Parents meeting"
	validDetails = "All parents are invited to the hall on Friday."
	validDate    = "2024-03-05"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

var _ core.Logger = nopLogger{}

type submitterMock struct {
	submitted []Notice
	err       error
}

func (s *submitterMock) Submit(_ context.Context, n Notice) error {
	if s.err != nil {
		return s.err
	}
	s.submitted = append(s.submitted, n)
	return nil
}

func newTestService(sub Submitter, now time.Time) *Service {
	svc := NewService(sub, nopLogger{})
	svc.nowFunc = func() time.Time { return now }
	return svc
}

func str(s string) *string { return &s }

func repeat(n int) string { return strings.Repeat("a", n) }
