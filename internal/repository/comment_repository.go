package repository

import (
	"context"
	"fmt"
	"time"

	"yatube/internal/models"

	"github.com/jmoiron/sqlx"
)

type CommentRepositoryImpl struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewCommentRepository(db *sqlx.DB) *CommentRepositoryImpl {
	return &CommentRepositoryImpl{db: db, now: time.Now}
}

func (r *CommentRepositoryImpl) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (post_id, author_id, text, created)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	comment.Created = r.now().UTC()

	err := r.db.QueryRowxContext(ctx, query, comment.PostID, comment.AuthorID, comment.Text, comment.Created).
		Scan(&comment.ID)
	if err != nil {
		if constraint, ok := violation(err, codeForeignKeyViolation); ok {
			switch constraint {
			case constraintCommentPost:
				return models.NewNotFoundError("пост", comment.PostID)
			case constraintCommentAuthor:
				return models.NewUnauthenticatedError()
			}
		}
		return fmt.Errorf("ошибка при создании комментария: %w", err)
	}

	return nil
}

func (r *CommentRepositoryImpl) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, c.text, c.created, u.username AS author_username
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created DESC, c.id DESC
	`

	comments := []models.Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("ошибка при получении комментариев: %w", err)
	}

	return comments, nil
}

func (r *CommentRepositoryImpl) Delete(ctx context.Context, commentID int64) error {
	query := `DELETE FROM comments WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, commentID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении комментария: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return models.NewNotFoundError("комментарий", commentID)
	}

	return nil
}
