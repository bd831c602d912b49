// Package ghsync keeps a card's completion flag and its linked GitHub issues'
// open/closed state consistent: inbound webhook events update linked cards,
// and local completion toggles push state changes back to GitHub.
package ghsync

import (
	"github.com/google/go-github/v68/github"
)

// Event is a classified webhook delivery. Exactly one of the concrete types
// below is returned by Classify.
type Event interface {
	event()
}

// Ping is GitHub's liveness check, sent when a hook is first configured.
type Ping struct {
	HookID     int64
	Repository string // full name, e.g. "acme/widgets"
}

// IssueStateChange is an issue transitioning between open and closed.
// Only constructed for the opened, closed, and reopened actions.
type IssueStateChange struct {
	Action string
	Owner  string
	Repo   string
	Number int
	State  string // open or closed
}

// Ignored is an issues event whose action carries no state change
// (edited, labeled, assigned, ...).
type Ignored struct {
	Action string
}

// Unhandled is any delivery Corkboard does not react to.
type Unhandled struct {
	Type string
}

func (Ping) event()             {}
func (IssueStateChange) event() {}
func (Ignored) event()          {}
func (Unhandled) event()        {}

// Classify maps a raw webhook delivery to a typed event. It is a pure
// function: malformed or unrecognized payloads classify as Unhandled, never
// as an error.
func Classify(eventType string, payload []byte) Event {
	hook, err := github.ParseWebHook(eventType, payload)
	if err != nil {
		return Unhandled{Type: eventType}
	}

	switch ev := hook.(type) {
	case *github.PingEvent:
		return Ping{
			HookID:     ev.GetHookID(),
			Repository: ev.GetRepo().GetFullName(),
		}

	case *github.IssuesEvent:
		action := ev.GetAction()
		switch action {
		case "opened", "closed", "reopened":
		default:
			return Ignored{Action: action}
		}

		owner := ev.GetRepo().GetOwner().GetLogin()
		repo := ev.GetRepo().GetName()
		number := ev.GetIssue().GetNumber()
		if owner == "" || repo == "" || number == 0 {
			return Unhandled{Type: eventType}
		}

		state := ev.GetIssue().GetState()
		if state == "" {
			// Derive from the action when the payload omits it.
			if action == "closed" {
				state = "closed"
			} else {
				state = "open"
			}
		}

		return IssueStateChange{
			Action: action,
			Owner:  owner,
			Repo:   repo,
			Number: number,
			State:  state,
		}

	default:
		return Unhandled{Type: eventType}
	}
}
