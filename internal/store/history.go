package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/snowgoose-ai/gateway/internal/model"
)

// SaveConversation inserts an archived conversation and returns its id.
func (s *Store) SaveConversation(ctx context.Context, userID int, title, conversation string) (int, error) {
	var id int
	err := s.pool.QueryRow(ctx,
		`INSERT INTO conversation_history (user_id, title, conversation) VALUES ($1, $2, $3) RETURNING id`,
		userID, title, conversation,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save conversation: %w", err)
	}
	return id, nil
}

// ListHistory returns a user's archived conversations, newest first.
func (s *Store) ListHistory(ctx context.Context, userID int) ([]model.ConversationHistory, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, COALESCE(title, ''), conversation, created_at
		FROM conversation_history WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var histories []model.ConversationHistory
	for rows.Next() {
		var h model.ConversationHistory
		if err := rows.Scan(&h.ID, &h.UserID, &h.Title, &h.Conversation, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		histories = append(histories, h)
	}
	return histories, rows.Err()
}

// DeleteHistory removes an archived conversation. Only the owning user may
// delete a row.
func (s *Store) DeleteHistory(ctx context.Context, id, userID int) error {
	var ownerID int
	err := s.pool.QueryRow(ctx,
		`SELECT user_id FROM conversation_history WHERE id = $1`, id,
	).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrHistoryNotFound
		}
		return fmt.Errorf("failed to load history: %w", err)
	}

	if ownerID != userID {
		return model.ErrNotOwner
	}

	if _, err := s.pool.Exec(ctx, `DELETE FROM conversation_history WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete history: %w", err)
	}
	return nil
}
