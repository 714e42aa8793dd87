package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"yatube/internal/models"

	"github.com/jmoiron/sqlx"
)

// selectPosts joins the author and the optional group so a listing needs one round-trip.
const selectPosts = `
	SELECT p.id, p.text, p.pub_date, p.author_id, p.group_id, p.image,
		u.username AS author_username,
		g.slug AS group_slug,
		g.title AS group_title
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN post_groups g ON g.id = p.group_id
`

// postOrder is the only listing order: newest first, ties broken by id so
// pagination is stable when several posts share a pub_date.
const postOrder = ` ORDER BY p.pub_date DESC, p.id DESC`

type PostRepositoryImpl struct {
	db  *sqlx.DB
	now func() time.Time
}

// PostFilter narrows a listing. Nil fields do not filter.
type PostFilter struct {
	GroupID    *int64
	AuthorID   *int64
	FollowerID *int64
}

// where renders the filter as a WHERE clause with positional arguments.
func (f PostFilter) where() (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if f.GroupID != nil {
		args = append(args, *f.GroupID)
		conditions = append(conditions, fmt.Sprintf("p.group_id = $%d", len(args)))
	}
	if f.AuthorID != nil {
		args = append(args, *f.AuthorID)
		conditions = append(conditions, fmt.Sprintf("p.author_id = $%d", len(args)))
	}
	if f.FollowerID != nil {
		args = append(args, *f.FollowerID)
		conditions = append(conditions,
			fmt.Sprintf("p.author_id IN (SELECT f.author_id FROM follows f WHERE f.user_id = $%d)", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// postForeignKeyError maps a broken group or author reference to the matching
// model error. Other errors give nil.
func postForeignKeyError(err error) error {
	constraint, ok := violation(err, codeForeignKeyViolation)
	if !ok {
		return nil
	}

	switch constraint {
	case constraintPostGroup:
		return models.NewValidationError("group", "выбранная группа не существует")
	case constraintPostAuthor:
		return models.NewUnauthenticatedError()
	default:
		return nil
	}
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db, now: time.Now}
}

// Create inserts the post and stamps pub_date. pub_date is never written again.
func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (text, pub_date, author_id, group_id, image)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	post.PubDate = r.now().UTC()

	err := r.db.QueryRowxContext(ctx, query, post.Text, post.PubDate, post.AuthorID, post.GroupID, post.Image).
		Scan(&post.ID)
	if err != nil {
		if fkErr := postForeignKeyError(err); fkErr != nil {
			return fkErr
		}
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID int64) (*models.Post, error) {
	query := selectPosts + ` WHERE p.id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NewNotFoundError("пост", postID)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &post, nil
}

// Update rewrites the editable fields only: text, group and image.
func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			text = $1,
			group_id = $2,
			image = $3
		WHERE id = $4 AND author_id = $5
	`

	result, err := r.db.ExecContext(ctx, query, post.Text, post.GroupID, post.Image, post.ID, post.AuthorID)
	if err != nil {
		if fkErr := postForeignKeyError(err); fkErr != nil {
			return fkErr
		}
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return models.NewNotFoundError("пост", post.ID)
	}

	return nil
}

// Delete removes the post; its comments are removed by ON DELETE CASCADE.
func (r *PostRepositoryImpl) Delete(ctx context.Context, postID int64) error {
	query := `DELETE FROM posts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return models.NewNotFoundError("пост", postID)
	}

	return nil
}

func (r *PostRepositoryImpl) List(ctx context.Context, filter PostFilter, limit, offset int) ([]models.Post, error) {
	where, args := filter.where()
	args = append(args, limit, offset)

	query := selectPosts + where + postOrder +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("ошибка при получении списка постов: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) Count(ctx context.Context, filter PostFilter) (int, error) {
	where, args := filter.where()

	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts p`+where, args...); err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте постов: %w", err)
	}

	return count, nil
}
