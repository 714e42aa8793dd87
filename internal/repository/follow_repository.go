package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type FollowRepositoryImpl struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) *FollowRepositoryImpl {
	return &FollowRepositoryImpl{db: db}
}

// Create stores the follow. An existing (user, author) pair is left as is.
func (r *FollowRepositoryImpl) Create(ctx context.Context, userID, authorID int64) error {
	query := `
		INSERT INTO follows (user_id, author_id)
		VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT follower_follows DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, userID, authorID); err != nil {
		return fmt.Errorf("ошибка при создании подписки: %w", err)
	}

	return nil
}

// Delete removes the follow. Deleting a follow that does not exist is not an error.
func (r *FollowRepositoryImpl) Delete(ctx context.Context, userID, authorID int64) error {
	query := `DELETE FROM follows WHERE user_id = $1 AND author_id = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, authorID); err != nil {
		return fmt.Errorf("ошибка при удалении подписки: %w", err)
	}

	return nil
}

func (r *FollowRepositoryImpl) Exists(ctx context.Context, userID, authorID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM follows WHERE user_id = $1 AND author_id = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, authorID); err != nil {
		return false, fmt.Errorf("ошибка при проверке подписки: %w", err)
	}

	return exists, nil
}

func (r *FollowRepositoryImpl) CountFollowers(ctx context.Context, authorID int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM follows WHERE author_id = $1`, authorID); err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте подписчиков: %w", err)
	}
	return count, nil
}

func (r *FollowRepositoryImpl) CountFollowing(ctx context.Context, userID int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM follows WHERE user_id = $1`, userID); err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте подписок: %w", err)
	}
	return count, nil
}
