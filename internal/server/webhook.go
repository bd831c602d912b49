package server

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/go-github/v68/github"
	"github.com/zulandar/corkboard/internal/ghsync"
)

// signatureHeader carries GitHub's hex HMAC-SHA256 of the raw body.
const signatureHeader = "X-Hub-Signature-256"

// maxWebhookBody caps webhook payload size. GitHub's own limit is 25 MB.
const maxWebhookBody = 25 << 20

// handleWebhook is the inbound entry point for GitHub deliveries. Three
// terminal outcomes: rejected (bad signature, before any parsing),
// acknowledged (ping), or routed through the reconciler. The handler is
// safely repeatable, so GitHub's retry-on-non-2xx behavior is harmless.
func handleWebhook(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
			return
		}

		// Verify against the raw bytes exactly as received.
		if !deps.Verifier.Verify(body, c.GetHeader(signatureHeader)) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
			return
		}

		switch ev := ghsync.Classify(github.WebHookType(c.Request), body).(type) {
		case ghsync.Ping:
			c.JSON(http.StatusOK, gin.H{
				"message":    "pong",
				"hookId":     ev.HookID,
				"repository": ev.Repository,
			})

		case ghsync.IssueStateChange:
			res, err := deps.Reconciler.Apply(c.Request.Context(), ev)
			if err != nil {
				log.Printf("server: reconcile %s/%s#%d: %v", ev.Owner, ev.Repo, ev.Number, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "reconciliation failed"})
				return
			}
			resp := gin.H{"success": true, "processed": res.Processed}
			if res.Processed {
				resp["cardsUpdated"] = res.CardsUpdated
			} else {
				resp["reason"] = res.Reason
			}
			c.JSON(http.StatusOK, resp)

		case ghsync.Ignored:
			c.JSON(http.StatusOK, gin.H{
				"success":   true,
				"processed": false,
				"reason":    "action ignored",
			})

		case ghsync.Unhandled:
			c.JSON(http.StatusOK, gin.H{
				"message": "Event not handled",
				"event":   ev.Type,
			})
		}
	}
}
