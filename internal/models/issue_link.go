package models

import "time"

// IssueLink binds one card to one external tracker issue. The same issue may
// be linked from many cards, and a card may link many issues, but the
// (owner, repo, number, card) tuple is unique.
type IssueLink struct {
	ID     uint   `gorm:"primaryKey;autoIncrement"`
	CardID string `gorm:"size:32;not null;index;uniqueIndex:idx_issue_card,priority:4"`
	Kind   string `gorm:"size:16;default:issue"` // issue or pull_request

	// External identity key.
	Owner  string `gorm:"size:64;not null;index:idx_issue_key,priority:1;uniqueIndex:idx_issue_card,priority:1"`
	Repo   string `gorm:"size:128;not null;index:idx_issue_key,priority:2;uniqueIndex:idx_issue_card,priority:2"`
	Number int    `gorm:"not null;index:idx_issue_key,priority:3;uniqueIndex:idx_issue_card,priority:3"`

	URL          string `gorm:"size:500"`
	Title        string `gorm:"size:500"` // cached from the tracker, may go stale
	State        string `gorm:"size:16;default:open"`
	CreatedBy    string `gorm:"size:64"`
	LastSyncedAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Card Card `gorm:"foreignKey:CardID"`
}
