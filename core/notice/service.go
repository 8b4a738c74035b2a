package notice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-web/core"
)

type (
	// Submitter hands a validated Notice over to whatever publishes it.
	Submitter interface {
		Submit(ctx context.Context, n Notice) error
	}

	Service struct {
		submitter Submitter
		logger    core.Logger
		nowFunc   func() time.Time // mockable
	}
)

func NewService(submitter Submitter, logger core.Logger) *Service {
	return &Service{
		submitter: submitter,
		logger:    logger,
		nowFunc:   time.Now,
	}
}

// Create builds a new Notice from nn and submits it. nn must have been validated.
func (svc *Service) Create(ctx context.Context, nn NewNotice) (Notice, error) {
	now := svc.nowFunc().UTC()
	n := Notice{
		ID:        uuid.New(),
		Title:     nn.Title,
		Details:   nn.Details,
		Date:      nn.Date,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := svc.submitter.Submit(ctx, n); err != nil {
		return Notice{}, errors.Wrap(err, "submitting new notice")
	}
	svc.logger.Info("notice created", n)
	return n, nil
}

// Update applies nn to orig and submits the result. nn must have been validated.
func (svc *Service) Update(ctx context.Context, orig Notice, nn NewNotice) (Notice, error) {
	n := orig
	n.Title = nn.Title
	n.Details = nn.Details
	n.Date = nn.Date
	n.UpdatedAt = svc.nowFunc().UTC()
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = n.UpdatedAt
	}
	if err := svc.submitter.Submit(ctx, n); err != nil {
		return Notice{}, errors.Wrap(err, "submitting notice update")
	}
	svc.logger.Info("notice updated", n)
	return n, nil
}
