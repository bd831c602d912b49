// Package notify delivers sync-failure notifications to operators over chat
// platforms (Slack, Discord) or the process log.
package notify

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

// Failure describes one failed outbound sync for a card.
type Failure struct {
	CardID string
	Errors []string
	When   time.Time
}

// Notifier is implemented by each notification sink.
type Notifier interface {
	SyncFailure(ctx context.Context, f Failure) error
}

// Multi fans a failure out to several sinks. A sink error is logged and does
// not stop delivery to the remaining sinks.
type Multi struct {
	sinks []Notifier
}

// NewMulti creates a fan-out notifier over the given sinks.
func NewMulti(sinks ...Notifier) *Multi {
	return &Multi{sinks: sinks}
}

// SyncFailure delivers f to every sink.
func (m *Multi) SyncFailure(ctx context.Context, f Failure) error {
	for _, s := range m.sinks {
		if err := s.SyncFailure(ctx, f); err != nil {
			log.Printf("notify: sink failed: %v", err)
		}
	}
	return nil
}

// LogSink writes failures to the process log. Always configured, so sync
// failures stay observable even with no chat sink set up.
type LogSink struct{}

// SyncFailure logs the failure.
func (LogSink) SyncFailure(_ context.Context, f Failure) error {
	log.Printf("notify: sync failed for card %s: %s", f.CardID, strings.Join(f.Errors, "; "))
	return nil
}

// failureText renders a failure as a plain-text summary shared by the chat
// sinks.
func failureText(f Failure) string {
	return fmt.Sprintf("GitHub sync failed for card %s (%d error(s)):\n%s",
		f.CardID, len(f.Errors), strings.Join(f.Errors, "\n"))
}
