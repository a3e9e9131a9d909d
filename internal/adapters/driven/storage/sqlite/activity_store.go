package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driven"
)

// activityStore implements driven.ActivityStore.
type activityStore struct {
	store *Store
}

var _ driven.ActivityStore = (*activityStore)(nil)

// Record appends an activity, assigning an ID if it has none.
func (s *activityStore) Record(ctx context.Context, activity *domain.Activity) error {
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO activity (id, action, kind, item, item_id, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		activity.ID,
		string(activity.Action),
		string(activity.Kind),
		activity.Item,
		activity.ItemID,
		formatTime(activity.At),
	)
	if err != nil {
		return fmt.Errorf("recording activity: %w", err)
	}
	return nil
}

// Recent returns up to limit activities, newest first. A non-positive limit returns all.
func (s *activityStore) Recent(ctx context.Context, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, action, kind, item, item_id, occurred_at
		FROM activity
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying activity: %w", err)
	}
	defer rows.Close()

	var activities []domain.Activity //nolint:prealloc // size unknown from query
	for rows.Next() {
		var a domain.Activity
		var action, kind string
		var at sql.NullString
		if err := rows.Scan(&a.ID, &action, &kind, &a.Item, &a.ItemID, &at); err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		a.Action = domain.ActivityAction(action)
		a.Kind = domain.ActivityKind(kind)
		a.At = parseNullableTime(at)
		activities = append(activities, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activity: %w", err)
	}
	return activities, nil
}

// Clear removes every activity.
func (s *activityStore) Clear(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM activity"); err != nil {
		return fmt.Errorf("clearing activity: %w", err)
	}
	return nil
}
