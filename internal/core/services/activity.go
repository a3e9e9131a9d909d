package services

import (
	"context"
	"time"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driven"
	"github.com/kameleon-labs/kameleon-cli/internal/logger"
)

// recorder appends to the local activity log. A nil store records nothing,
// and a failing store never fails the operation that triggered it.
type recorder struct {
	store driven.ActivityStore
	now   func() time.Time
}

func newRecorder(store driven.ActivityStore) recorder {
	return recorder{store: store, now: time.Now}
}

func (r recorder) record(ctx context.Context, action domain.ActivityAction, kind domain.ActivityKind, item, itemID string) {
	if r.store == nil {
		return
	}
	a := &domain.Activity{
		Action: action,
		Kind:   kind,
		Item:   item,
		ItemID: itemID,
		At:     r.now(),
	}
	if err := r.store.Record(ctx, a); err != nil {
		logger.Warn("record activity %s %s: %v", action, kind, err)
	}
}

func requireID(id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return nil
}
