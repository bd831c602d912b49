package ghsync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zulandar/corkboard/internal/link"
	"gorm.io/gorm"
)

// ErrNotConnected is returned when no tracker credential is configured.
// It is a request-level failure, distinct from per-link sync errors.
var ErrNotConnected = errors.New("ghsync: not connected")

// IssueStater is the tracker operation the outbound path needs: set one
// issue's open/closed state and report the state the tracker settled on.
type IssueStater interface {
	SetIssueState(ctx context.Context, owner, repo string, number int, state string) (string, error)
}

// Report summarizes one outbound push: how many links were examined, how
// many were actually changed on the tracker, and any per-link failures.
type Report struct {
	Updated int
	Total   int
	Errors  []string
}

// Synchronizer pushes a card's completion state out to its linked issues.
type Synchronizer struct {
	db      *gorm.DB
	tracker IssueStater
}

// NewSynchronizer creates a Synchronizer. tracker may be nil when no
// credential is configured; Push then fails with ErrNotConnected.
func NewSynchronizer(db *gorm.DB, tracker IssueStater) *Synchronizer {
	return &Synchronizer{db: db, tracker: tracker}
}

// Push sets every linked issue's state to match the card's completion target.
// Links already in the desired state are skipped without a remote call. A
// failing link is recorded in the report and never aborts its siblings. On
// success the cached state is set to what the tracker returned, not what was
// requested; the tracker is authoritative.
func (s *Synchronizer) Push(ctx context.Context, cardID string, completed bool) (Report, error) {
	if s.tracker == nil {
		return Report{}, ErrNotConnected
	}
	db := s.db.WithContext(ctx)

	links, err := link.ForCard(db, cardID)
	if err != nil {
		return Report{}, err
	}

	desired := "open"
	if completed {
		desired = "closed"
	}

	rep := Report{Total: len(links)}
	for _, l := range links {
		if l.State == desired {
			continue
		}

		got, err := s.tracker.SetIssueState(ctx, l.Owner, l.Repo, l.Number, desired)
		if err != nil {
			rep.Errors = append(rep.Errors, fmt.Sprintf("%s/%s#%d: %v", l.Owner, l.Repo, l.Number, err))
			continue
		}
		if err := link.SetState(db, l.ID, got, time.Now()); err != nil {
			rep.Errors = append(rep.Errors, fmt.Sprintf("%s/%s#%d: %v", l.Owner, l.Repo, l.Number, err))
			continue
		}
		rep.Updated++
	}
	return rep, nil
}
