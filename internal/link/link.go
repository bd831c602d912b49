// Package link is the store for card ↔ tracker-issue bindings.
package link

import (
	"errors"
	"fmt"
	"time"

	"github.com/zulandar/corkboard/internal/models"
	"gorm.io/gorm"
)

// ErrDuplicate is returned when a card already links the same issue.
var ErrDuplicate = errors.New("link: card already links this issue")

// CreateOpts holds parameters for linking a card to a tracker issue.
type CreateOpts struct {
	CardID    string
	Kind      string // issue or pull_request
	Owner     string
	Repo      string
	Number    int
	URL       string
	Title     string
	State     string // open or closed
	CreatedBy string
}

// Create links a card to an issue. The (owner, repo, number, card) tuple is
// unique; linking the same issue to the same card twice fails.
func Create(db *gorm.DB, opts CreateOpts) (*models.IssueLink, error) {
	if opts.CardID == "" || opts.Owner == "" || opts.Repo == "" || opts.Number <= 0 {
		return nil, fmt.Errorf("link: card, owner, repo, and number are required")
	}
	if opts.Kind == "" {
		opts.Kind = "issue"
	}
	if opts.State == "" {
		opts.State = "open"
	}

	var existing int64
	db.Model(&models.IssueLink{}).
		Where("card_id = ? AND owner = ? AND repo = ? AND number = ?",
			opts.CardID, opts.Owner, opts.Repo, opts.Number).
		Count(&existing)
	if existing > 0 {
		return nil, ErrDuplicate
	}

	l := models.IssueLink{
		CardID:    opts.CardID,
		Kind:      opts.Kind,
		Owner:     opts.Owner,
		Repo:      opts.Repo,
		Number:    opts.Number,
		URL:       opts.URL,
		Title:     opts.Title,
		State:     opts.State,
		CreatedBy: opts.CreatedBy,
	}
	if err := db.Create(&l).Error; err != nil {
		return nil, fmt.Errorf("link: create for card %s: %w", opts.CardID, err)
	}
	return &l, nil
}

// ForCard returns all links belonging to a card.
func ForCard(db *gorm.DB, cardID string) ([]models.IssueLink, error) {
	var links []models.IssueLink
	if err := db.Where("card_id = ?", cardID).Order("id ASC").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("link: list for card %s: %w", cardID, err)
	}
	return links, nil
}

// ForIssue returns all links pointing at one tracker issue, across cards.
func ForIssue(db *gorm.DB, owner, repo string, number int) ([]models.IssueLink, error) {
	var links []models.IssueLink
	if err := db.Where("owner = ? AND repo = ? AND number = ?", owner, repo, number).
		Order("id ASC").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("link: list for %s/%s#%d: %w", owner, repo, number, err)
	}
	return links, nil
}

// SetStateForIssue overwrites the cached state and sync timestamp on every
// link pointing at one tracker issue, in a single batch write.
func SetStateForIssue(db *gorm.DB, owner, repo string, number int, state string, syncedAt time.Time) error {
	err := db.Model(&models.IssueLink{}).
		Where("owner = ? AND repo = ? AND number = ?", owner, repo, number).
		Updates(map[string]interface{}{
			"state":          state,
			"last_synced_at": syncedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("link: set state for %s/%s#%d: %w", owner, repo, number, err)
	}
	return nil
}

// SetState overwrites the cached state and sync timestamp on a single link,
// keyed by primary key so concurrent syncs serialize at the row.
func SetState(db *gorm.DB, id uint, state string, syncedAt time.Time) error {
	err := db.Model(&models.IssueLink{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"state":          state,
			"last_synced_at": syncedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("link: set state on link %d: %w", id, err)
	}
	return nil
}

// Delete unlinks a card from an issue. The remote issue is untouched.
func Delete(db *gorm.DB, id uint) error {
	res := db.Delete(&models.IssueLink{}, id)
	if res.Error != nil {
		return fmt.Errorf("link: delete %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("link: delete %d: not found", id)
	}
	return nil
}

// IssueKey identifies one tracker issue.
type IssueKey struct {
	Owner  string
	Repo   string
	Number int
}

// DistinctIssueKeys returns every distinct tracker issue that at least one
// card links. Used by the drift sweep.
func DistinctIssueKeys(db *gorm.DB) ([]IssueKey, error) {
	var keys []IssueKey
	err := db.Model(&models.IssueLink{}).
		Distinct("owner", "repo", "number").
		Order("owner ASC, repo ASC, number ASC").
		Find(&keys).Error
	if err != nil {
		return nil, fmt.Errorf("link: distinct issue keys: %w", err)
	}
	return keys, nil
}
