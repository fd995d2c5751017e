package store

import (
	"context"
	"fmt"

	"bizsearch.app/leadagent/internal/model"
)

type agentTaskStore struct {
	db DBTX
}

func newAgentTaskStore(db DBTX) AgentTaskStore {
	return &agentTaskStore{db: db}
}

func (s *agentTaskStore) Create(ctx context.Context, task *model.AgentTask) error {
	query, args, err := psql.
		Insert("agent_tasks").
		Columns(
			"id", "task_type", "status", "user_id", "listing_id", "listing_type",
			"metadata", "result", "completed_at",
		).
		Values(
			task.ID, task.Type, task.Status, task.UserID, task.ListingID,
			task.ListingType, task.Metadata, task.Result, task.CompletedAt,
		).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("building agent task insert: %w", err)
	}

	return s.db.QueryRow(ctx, query, args...).Scan(&task.CreatedAt)
}
