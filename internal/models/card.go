package models

import "time"

// Card is a single task on a board list.
type Card struct {
	ID          string `gorm:"primaryKey;size:32"`
	ListID      string `gorm:"size:32;not null;index"`
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Position    float64
	IsCompleted bool `gorm:"default:false;index"`
	DueAt       *time.Time
	CreatedBy   string `gorm:"size:64"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	List List `gorm:"foreignKey:ListID"`
	// Deleting a card removes its links; deleting a link never touches the card.
	Links []IssueLink `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE"`
}
