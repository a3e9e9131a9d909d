package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driven"
)

// Ensure ActivityStore implements the interface.
var _ driven.ActivityStore = (*ActivityStore)(nil)

// ActivityStore is an in-memory implementation of driven.ActivityStore.
type ActivityStore struct {
	mu         sync.RWMutex
	activities []domain.Activity
}

// NewActivityStore creates a new in-memory activity store.
func NewActivityStore() *ActivityStore {
	return &ActivityStore{}
}

// Record appends an activity, assigning an ID if it has none.
func (s *ActivityStore) Record(_ context.Context, activity *domain.Activity) error {
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = append(s.activities, *activity)
	return nil
}

// Recent returns up to limit activities, newest first.
func (s *ActivityStore) Recent(_ context.Context, limit int) ([]domain.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.activities) {
		limit = len(s.activities)
	}
	out := make([]domain.Activity, 0, limit)
	for i := len(s.activities) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.activities[i])
	}
	return out, nil
}

// Clear removes every activity.
func (s *ActivityStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = nil
	return nil
}
