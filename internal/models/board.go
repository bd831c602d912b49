package models

import "time"

// Board is the top-level container users organize work in.
type Board struct {
	ID          string `gorm:"primaryKey;size:32"`
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	OwnerID     string `gorm:"size:64;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Lists []List `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
}

// List is a column on a board; cards belong to exactly one list.
type List struct {
	ID        string `gorm:"primaryKey;size:32"`
	BoardID   string `gorm:"size:32;not null;index"`
	Title     string `gorm:"not null"`
	Position  float64
	CreatedAt time.Time
	UpdatedAt time.Time

	Board Board  `gorm:"foreignKey:BoardID"`
	Cards []Card `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE"`
}
