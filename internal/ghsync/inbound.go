package ghsync

import (
	"context"
	"time"

	"github.com/zulandar/corkboard/internal/card"
	"github.com/zulandar/corkboard/internal/link"
	"github.com/zulandar/corkboard/internal/models"
	"gorm.io/gorm"
)

// Reconciler applies tracker-side issue state changes to linked cards.
type Reconciler struct {
	db *gorm.DB
}

// NewReconciler creates a Reconciler backed by the given database.
func NewReconciler(db *gorm.DB) *Reconciler {
	return &Reconciler{db: db}
}

// InboundResult summarizes one reconciliation pass.
type InboundResult struct {
	Processed    bool
	Reason       string // set when not processed
	CardsUpdated int    // distinct cards whose completion flag changed
}

// Apply updates the cached state of every link pointing at the event's issue,
// then recomputes each affected card's completion flag. Applying the same
// event twice converges: the batch write is an unconditional overwrite and
// the recompute is a pure function of current link states.
func (r *Reconciler) Apply(ctx context.Context, ev IssueStateChange) (InboundResult, error) {
	db := r.db.WithContext(ctx)

	links, err := link.ForIssue(db, ev.Owner, ev.Repo, ev.Number)
	if err != nil {
		return InboundResult{}, err
	}
	if len(links) == 0 {
		// Normal outcome: most deliveries reference issues no card tracks.
		return InboundResult{Processed: false, Reason: "no linked cards"}, nil
	}

	if err := link.SetStateForIssue(db, ev.Owner, ev.Repo, ev.Number, ev.State, time.Now()); err != nil {
		return InboundResult{}, err
	}

	updated := 0
	for _, cardID := range distinctCardIDs(links) {
		changed, err := r.recompute(db, cardID)
		if err != nil {
			return InboundResult{}, err
		}
		if changed {
			updated++
		}
	}
	return InboundResult{Processed: true, CardsUpdated: updated}, nil
}

// recompute sets a card's completion flag to "all current links closed".
// It re-reads the link states so a concurrent update for a different issue
// on the same card is never clobbered by a stale snapshot. Cards with zero
// links are left untouched.
func (r *Reconciler) recompute(db *gorm.DB, cardID string) (bool, error) {
	links, err := link.ForCard(db, cardID)
	if err != nil {
		return false, err
	}
	if len(links) == 0 {
		return false, nil
	}

	allClosed := true
	for _, l := range links {
		if l.State != "closed" {
			allClosed = false
			break
		}
	}
	return card.SetCompleted(db, cardID, allClosed)
}

// distinctCardIDs deduplicates card ids, preserving first-seen order.
func distinctCardIDs(links []models.IssueLink) []string {
	seen := make(map[string]bool, len(links))
	var ids []string
	for _, l := range links {
		if seen[l.CardID] {
			continue
		}
		seen[l.CardID] = true
		ids = append(ids, l.CardID)
	}
	return ids
}
