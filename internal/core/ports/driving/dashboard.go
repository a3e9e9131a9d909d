package driving

import (
	"context"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
)

// DashboardService assembles the dashboard home screen.
type DashboardService interface {
	// Overview returns resource counts and recent activity.
	// A failing resource is reported in Overview.Errors, not as an error.
	Overview(ctx context.Context) (*Overview, error)

	// Activity returns up to limit recent local activities, newest first.
	Activity(ctx context.Context, limit int) ([]domain.Activity, error)
}

// Overview is the dashboard home screen content.
type Overview struct {
	// Greeting is "Welcome back, <first name>" or "Welcome back, there".
	Greeting string

	// Counts per resource kind. Missing when that resource failed to load.
	Counts map[domain.ActivityKind]int

	// Errors holds the user-facing failure per resource kind.
	Errors map[domain.ActivityKind]string

	// Recent is the latest local activity, newest first.
	Recent []domain.Activity
}

// Count returns the count for kind and whether it loaded.
func (o *Overview) Count(kind domain.ActivityKind) (int, bool) {
	n, ok := o.Counts[kind]
	return n, ok
}
