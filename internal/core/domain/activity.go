package domain

import (
	"fmt"
	"strings"
	"time"
)

// ActivityKind is the resource an activity concerns.
type ActivityKind string

// Activity kinds.
const (
	KindDocument ActivityKind = "document"
	KindPersona  ActivityKind = "persona"
	KindTemplate ActivityKind = "template"
	KindAxiom    ActivityKind = "axiom"
	KindReview   ActivityKind = "review"
)

// ActivityAction is what happened to the resource.
type ActivityAction string

// Activity actions.
const (
	ActionCreated   ActivityAction = "created"
	ActionUpdated   ActivityAction = "updated"
	ActionDeleted   ActivityAction = "deleted"
	ActionSubmitted ActivityAction = "submitted"
)

// Activity is one entry of the local recent-activity log.
// It records what the user did from this machine; it is not a cache of entities.
type Activity struct {
	ID     string
	Action ActivityAction
	Kind   ActivityKind
	// Item is the display name of the entity (title, name).
	Item string
	// ItemID is the backend identifier of the entity.
	ItemID string
	At     time.Time
}

// Summary renders the activity as a single line, e.g. `Created persona "Dana"`.
func (a Activity) Summary() string {
	action := string(a.Action)
	if action != "" {
		action = strings.ToUpper(action[:1]) + action[1:]
	}
	if a.Item == "" {
		return fmt.Sprintf("%s %s", action, a.Kind)
	}
	return fmt.Sprintf("%s %s %q", action, a.Kind, a.Item)
}

// TimeAgo renders the age of the activity relative to now.
func (a Activity) TimeAgo(now time.Time) string {
	d := now.Sub(a.At)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	default:
		return plural(int(d/(24*time.Hour)), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
