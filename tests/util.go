package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/masomo-web/core"
	"github.com/trezcool/masomo-web/core/dates"
	"github.com/trezcool/masomo-web/core/notice"
)

// FixedClock returns a clock in now's location that always reads now.
func FixedClock(now time.Time) *dates.Clock {
	clock := dates.NewClock(now.Location())
	clock.NowFunc = func() time.Time { return now }
	return clock
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Fatal(string, ...interface{}) {}

var _ core.Logger = NopLogger{}

// CreateNotice submits a valid notice through svc and returns it.
func CreateNotice(t *testing.T, svc *notice.Service, title, details, date string, createdAt ...time.Time) notice.Notice {
	t.Helper()
	n, err := svc.Create(context.Background(), notice.NewNotice{
		Title:   title,
		Details: details,
		Date:    date,
	})
	if err != nil {
		t.Fatalf("CreateNotice() failed: %v", err)
	}
	if len(createdAt) > 0 {
		n.CreatedAt = createdAt[0].UTC()
		n.UpdatedAt = n.CreatedAt
	}
	return n
}

// Notice returns a valid notice without going through a service.
func Notice(title, details, date string) notice.Notice {
	now := time.Now().UTC()
	return notice.Notice{
		ID:        uuid.New(),
		Title:     title,
		Details:   details,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
