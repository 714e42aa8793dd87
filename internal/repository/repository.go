package repository

import (
	"context"

	"yatube/internal/models"

	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
	VerifyPassword(ctx context.Context, username, password string) (*models.User, error)
}

type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, groupID int64) (*models.Group, error)
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
	List(ctx context.Context) ([]models.Group, error)
	Update(ctx context.Context, group *models.Group) error
	Delete(ctx context.Context, slug string) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID int64) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID int64) error
	List(ctx context.Context, filter PostFilter, limit, offset int) ([]models.Post, error)
	Count(ctx context.Context, filter PostFilter) (int, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID int64) ([]models.Comment, error)
	Delete(ctx context.Context, commentID int64) error
}

type FollowRepository interface {
	Create(ctx context.Context, userID, authorID int64) error
	Delete(ctx context.Context, userID, authorID int64) error
	Exists(ctx context.Context, userID, authorID int64) (bool, error)
	CountFollowers(ctx context.Context, authorID int64) (int, error)
	CountFollowing(ctx context.Context, userID int64) (int, error)
}

type TablesRepository interface {
	CountTablesDB(ctx context.Context) (int, error)
}

type Repository struct {
	User    UserRepository
	Group   GroupRepository
	Post    PostRepository
	Comment CommentRepository
	Follow  FollowRepository
	Tables  TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Group:   NewGroupRepository(db),
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
		Follow:  NewFollowRepository(db),
		Tables:  NewTablesRepository(db),
	}
}
