// Package sweep periodically re-reads linked issues from GitHub and feeds
// the results through the inbound reconciler, catching webhook deliveries
// that were missed entirely.
package sweep

import (
	"context"
	"fmt"

	"github.com/zulandar/corkboard/internal/ghsync"
	"github.com/zulandar/corkboard/internal/link"
	"gorm.io/gorm"
)

// IssueReader reads one issue's current open/closed state from the tracker.
type IssueReader interface {
	IssueState(ctx context.Context, owner, repo string, number int) (string, error)
}

// Sweeper walks every distinct linked issue and reconciles its state.
type Sweeper struct {
	db      *gorm.DB
	tracker IssueReader
	recon   *ghsync.Reconciler
}

// New creates a Sweeper.
func New(db *gorm.DB, tracker IssueReader, recon *ghsync.Reconciler) *Sweeper {
	return &Sweeper{db: db, tracker: tracker, recon: recon}
}

// Result summarizes one sweep pass.
type Result struct {
	Issues       int
	CardsUpdated int
	Errors       []string
}

// Run reconciles every linked issue once. A failing issue read is recorded
// and skipped; the sweep continues with the remaining issues.
func (s *Sweeper) Run(ctx context.Context) (Result, error) {
	keys, err := link.DistinctIssueKeys(s.db.WithContext(ctx))
	if err != nil {
		return Result{}, err
	}

	res := Result{Issues: len(keys)}
	for _, k := range keys {
		state, err := s.tracker.IssueState(ctx, k.Owner, k.Repo, k.Number)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%s/%s#%d: %v", k.Owner, k.Repo, k.Number, err))
			continue
		}

		out, err := s.recon.Apply(ctx, ghsync.IssueStateChange{
			Action: "sweep",
			Owner:  k.Owner,
			Repo:   k.Repo,
			Number: k.Number,
			State:  state,
		})
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%s/%s#%d: %v", k.Owner, k.Repo, k.Number, err))
			continue
		}
		res.CardsUpdated += out.CardsUpdated
	}
	return res, nil
}
