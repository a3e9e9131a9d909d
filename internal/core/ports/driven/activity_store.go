package driven

import (
	"context"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
)

// ActivityStore is the local log of actions taken from this client.
type ActivityStore interface {
	// Record appends an activity.
	Record(ctx context.Context, activity *domain.Activity) error

	// Recent returns up to limit activities, newest first.
	Recent(ctx context.Context, limit int) ([]domain.Activity, error)

	// Clear removes every activity.
	Clear(ctx context.Context) error
}
