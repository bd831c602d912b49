package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/corkboard/internal/card"
	"github.com/zulandar/corkboard/internal/ghsync"
)

// handleCardComplete is the seam card-mutation flows hit after toggling
// completion. The local write always lands; the outbound push is handed off
// to the dispatcher and never blocks or reverses the toggle.
func handleCardComplete(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			IsCompleted *bool `json:"isCompleted"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.IsCompleted == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "isCompleted is required"})
			return
		}

		id := c.Param("id")
		if _, err := card.Get(deps.DB, id); err != nil {
			if errors.Is(err, card.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
				return
			}
			log.Printf("server: get card %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
			return
		}

		if _, err := card.SetCompleted(deps.DB, id, *req.IsCompleted); err != nil {
			log.Printf("server: complete card %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
			return
		}

		if deps.Dispatcher != nil {
			deps.Dispatcher.Enqueue(id, *req.IsCompleted)
		}

		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"cardId":      id,
			"isCompleted": *req.IsCompleted,
		})
	}
}

// handleCardSync pushes a card's current completion state to its linked
// issues synchronously and returns the per-link report.
func handleCardSync(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		crd, err := card.Get(deps.DB, id)
		if err != nil {
			if errors.Is(err, card.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
				return
			}
			log.Printf("server: get card %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
			return
		}

		rep, err := deps.Sync.Push(c.Request.Context(), id, crd.IsCompleted)
		if err != nil {
			if errors.Is(err, ghsync.ErrNotConnected) {
				c.JSON(http.StatusForbidden, gin.H{"error": "not connected"})
				return
			}
			log.Printf("server: sync card %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "sync failed"})
			return
		}

		resp := gin.H{"success": true, "updated": rep.Updated, "total": rep.Total}
		if len(rep.Errors) > 0 {
			resp["errors"] = rep.Errors
		}
		c.JSON(http.StatusOK, resp)
	}
}
