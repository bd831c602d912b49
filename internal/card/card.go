// Package card provides the card-store slice the sync subsystem reads and
// writes: completion state plus lookups. Full board/list/card CRUD lives in
// the application layer, not here.
package card

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/zulandar/corkboard/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a card id does not exist.
var ErrNotFound = errors.New("card: not found")

// GenerateID creates a unique card ID in crd-xxxxxx format (6-char hex).
func GenerateID() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("card: generate ID: %w", err)
	}
	return "crd-" + hex.EncodeToString(b), nil
}

// Get fetches a card by ID.
func Get(db *gorm.DB, id string) (*models.Card, error) {
	var c models.Card
	if err := db.Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("card: get %s: %w", id, err)
	}
	return &c, nil
}

// SetCompleted writes the completion flag only when it differs from the
// stored value. Returns true if a row was changed. The conditional WHERE
// makes concurrent writers of the same value converge instead of racing.
func SetCompleted(db *gorm.DB, id string, completed bool) (bool, error) {
	res := db.Model(&models.Card{}).
		Where("id = ? AND is_completed <> ?", id, completed).
		Update("is_completed", completed)
	if res.Error != nil {
		return false, fmt.Errorf("card: set completed on %s: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}
