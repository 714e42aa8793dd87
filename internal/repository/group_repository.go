package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"yatube/internal/models"

	"github.com/jmoiron/sqlx"
)

type GroupRepositoryImpl struct {
	db *sqlx.DB
}

func NewGroupRepository(db *sqlx.DB) *GroupRepositoryImpl {
	return &GroupRepositoryImpl{db: db}
}

func (r *GroupRepositoryImpl) Create(ctx context.Context, group *models.Group) error {
	query := `
		INSERT INTO post_groups (title, slug, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRowxContext(ctx, query, group.Title, group.Slug, group.Description).Scan(&group.ID)
	if err != nil {
		if _, ok := violation(err, codeUniqueViolation); ok {
			return models.NewValidationError("slug", fmt.Sprintf("группа со slug %s уже существует", group.Slug))
		}
		return fmt.Errorf("ошибка при создании группы: %w", err)
	}

	return nil
}

func (r *GroupRepositoryImpl) GetByID(ctx context.Context, groupID int64) (*models.Group, error) {
	query := `SELECT id, title, slug, description FROM post_groups WHERE id = $1`

	var group models.Group
	err := r.db.GetContext(ctx, &group, query, groupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NewNotFoundError("группа", groupID)
		}
		return nil, fmt.Errorf("ошибка при получении группы: %w", err)
	}

	return &group, nil
}

func (r *GroupRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	query := `SELECT id, title, slug, description FROM post_groups WHERE slug = $1`

	var group models.Group
	err := r.db.GetContext(ctx, &group, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NewNotFoundError("группа", slug)
		}
		return nil, fmt.Errorf("ошибка при получении группы: %w", err)
	}

	return &group, nil
}

func (r *GroupRepositoryImpl) List(ctx context.Context) ([]models.Group, error) {
	query := `SELECT id, title, slug, description FROM post_groups ORDER BY slug DESC`

	groups := []models.Group{}
	if err := r.db.SelectContext(ctx, &groups, query); err != nil {
		return nil, fmt.Errorf("ошибка при получении списка групп: %w", err)
	}

	return groups, nil
}

func (r *GroupRepositoryImpl) Update(ctx context.Context, group *models.Group) error {
	query := `
		UPDATE post_groups SET
			title = $1,
			slug = $2,
			description = $3
		WHERE id = $4
	`

	result, err := r.db.ExecContext(ctx, query, group.Title, group.Slug, group.Description, group.ID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении группы: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return models.NewNotFoundError("группа", group.ID)
	}

	return nil
}

// Delete removes the group. Its posts survive with group_id cleared (ON DELETE SET NULL).
func (r *GroupRepositoryImpl) Delete(ctx context.Context, slug string) error {
	query := `DELETE FROM post_groups WHERE slug = $1`

	result, err := r.db.ExecContext(ctx, query, slug)
	if err != nil {
		return fmt.Errorf("ошибка при удалении группы: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return models.NewNotFoundError("группа", slug)
	}

	return nil
}
