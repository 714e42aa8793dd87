package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"yatube/internal/models"
	"yatube/internal/repository"
	"yatube/internal/storage"
)

// ImageUpload is an already sniffed image attachment.
type ImageUpload struct {
	FileName    string
	Reader      io.Reader
	Size        int64
	ContentType string
}

type CreatePostRequest struct {
	Text    string
	GroupID *int64
	Image   *ImageUpload
}

type UpdatePostRequest struct {
	PostID  int64
	Text    string
	GroupID *int64
	Image   *ImageUpload
}

type PostService interface {
	CreatePost(ctx context.Context, author *models.User, req CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, editor *models.User, req UpdatePostRequest) (*models.Post, error)
	GetPost(ctx context.Context, postID int64) (*models.Post, error)
	GetPostDetail(ctx context.Context, postID int64) (*models.PostDetail, error)
	DeletePost(ctx context.Context, editor *models.User, postID int64) error
	AddComment(ctx context.Context, author *models.User, postID int64, text string) (*models.Comment, error)
}

type postService struct {
	postRepo    repository.PostRepository
	groupRepo   repository.GroupRepository
	commentRepo repository.CommentRepository
	storage     storage.Storage
}

func NewPostService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	commentRepo repository.CommentRepository,
	storage storage.Storage,
) PostService {
	return &postService{
		postRepo:    postRepo,
		groupRepo:   groupRepo,
		commentRepo: commentRepo,
		storage:     storage,
	}
}

func (p *postService) CreatePost(ctx context.Context, author *models.User, req CreatePostRequest) (*models.Post, error) {
	if err := requireUser(author); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Text) == "" {
		return nil, models.NewValidationError("text", "Обязательное поле.")
	}

	if err := p.checkGroup(ctx, req.GroupID); err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     req.Text,
		AuthorID: author.ID,
		GroupID:  req.GroupID,
	}

	if req.Image != nil {
		objectName, err := p.upload(ctx, req.Image)
		if err != nil {
			return nil, err
		}
		post.Image = objectName
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		p.removeImage(ctx, post)
		return nil, err
	}

	return p.GetPost(ctx, post.ID)
}

// UpdatePost applies req when editor is the author. For anyone else the stored
// post is returned untouched together with a FORBIDDEN error.
func (p *postService) UpdatePost(ctx context.Context, editor *models.User, req UpdatePostRequest) (*models.Post, error) {
	if err := requireUser(editor); err != nil {
		return nil, err
	}

	post, err := p.GetPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	if !CanEditPost(editor, post) {
		return post, models.NewForbiddenError("редактировать пост может только автор")
	}

	if strings.TrimSpace(req.Text) == "" {
		return post, models.NewValidationError("text", "Обязательное поле.")
	}

	if err := p.checkGroup(ctx, req.GroupID); err != nil {
		return post, err
	}

	oldImage := post.Image
	updated := *post
	updated.Text = req.Text
	updated.GroupID = req.GroupID

	if req.Image != nil {
		objectName, err := p.upload(ctx, req.Image)
		if err != nil {
			return post, err
		}
		updated.Image = objectName
	}

	if err := p.postRepo.Update(ctx, &updated); err != nil {
		if updated.Image != oldImage {
			p.removeImage(ctx, &updated)
		}
		return post, err
	}

	if updated.Image != oldImage {
		p.removeImage(ctx, post)
	}

	return p.GetPost(ctx, post.ID)
}

func (p *postService) GetPost(ctx context.Context, postID int64) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	post.ImageURL = p.storage.ImageURL(post.Image)
	return post, nil
}

func (p *postService) GetPostDetail(ctx context.Context, postID int64) (*models.PostDetail, error) {
	post, err := p.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := p.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	authorPosts, err := p.postRepo.Count(ctx, repository.PostFilter{AuthorID: &post.AuthorID})
	if err != nil {
		return nil, err
	}

	return &models.PostDetail{
		Post:        post,
		Comments:    comments,
		AuthorPosts: authorPosts,
	}, nil
}

func (p *postService) DeletePost(ctx context.Context, editor *models.User, postID int64) error {
	if err := requireUser(editor); err != nil {
		return err
	}

	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if !CanEditPost(editor, post) {
		return models.NewForbiddenError("удалить пост может только автор")
	}

	if err := p.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	p.removeImage(ctx, post)
	return nil
}

func (p *postService) AddComment(ctx context.Context, author *models.User, postID int64, text string) (*models.Comment, error) {
	if err := requireUser(author); err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, models.NewValidationError("text", "Обязательное поле.")
	}

	if _, err := p.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:         postID,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		Text:           text,
	}

	if err := p.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (p *postService) checkGroup(ctx context.Context, groupID *int64) error {
	if groupID == nil {
		return nil
	}

	if _, err := p.groupRepo.GetByID(ctx, *groupID); err != nil {
		if models.IsNotFound(err) {
			return models.NewValidationError("group", fmt.Sprintf("группа %d не существует", *groupID))
		}
		return err
	}

	return nil
}

func (p *postService) upload(ctx context.Context, image *ImageUpload) (string, error) {
	objectName, err := p.storage.UploadImage(ctx, image.FileName, image.Reader, image.Size, image.ContentType)
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки изображения: %w", err)
	}
	return objectName, nil
}

// removeImage deletes the attachment of post; failures are only logged.
func (p *postService) removeImage(ctx context.Context, post *models.Post) {
	if !post.HasImage() {
		return
	}
	if err := p.storage.DeleteImage(ctx, post.Image); err != nil {
		slog.WarnContext(ctx, "не удалось удалить изображение", "object", post.Image, "error", err)
	}
}
