package service

import (
	"context"
	"strconv"

	"yatube/internal/models"
	"yatube/internal/repository"
	"yatube/internal/storage"
)

// PageSize is the number of posts on every listing page.
const PageSize = 10

// ParsePage turns the ?page= value into a page number; anything unusable is page 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

type FeedService interface {
	ListAll(ctx context.Context, page int) (*models.PostPage, error)
	ListByGroup(ctx context.Context, slug string, page int) (*models.Group, *models.PostPage, error)
	ListByAuthor(ctx context.Context, username string, page int) (*models.User, *models.PostPage, error)
	ListFollowedFeed(ctx context.Context, user *models.User, page int) (*models.PostPage, error)
	Profile(ctx context.Context, username string, viewer *models.User, page int) (*models.Profile, error)
}

type feedService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	storage    storage.Storage
}

func NewFeedService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	storage storage.Storage,
) FeedService {
	return &feedService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
		storage:    storage,
	}
}

func (s *feedService) ListAll(ctx context.Context, page int) (*models.PostPage, error) {
	return s.listPage(ctx, repository.PostFilter{}, page)
}

func (s *feedService) ListByGroup(ctx context.Context, slug string, page int) (*models.Group, *models.PostPage, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	postPage, err := s.listPage(ctx, repository.PostFilter{GroupID: &group.ID}, page)
	if err != nil {
		return nil, nil, err
	}

	return group, postPage, nil
}

func (s *feedService) ListByAuthor(ctx context.Context, username string, page int) (*models.User, *models.PostPage, error) {
	author, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	postPage, err := s.listPage(ctx, repository.PostFilter{AuthorID: &author.ID}, page)
	if err != nil {
		return nil, nil, err
	}

	return author, postPage, nil
}

func (s *feedService) ListFollowedFeed(ctx context.Context, user *models.User, page int) (*models.PostPage, error) {
	if user == nil {
		return nil, models.NewUnauthenticatedError()
	}

	return s.listPage(ctx, repository.PostFilter{FollowerID: &user.ID}, page)
}

func (s *feedService) Profile(ctx context.Context, username string, viewer *models.User, page int) (*models.Profile, error) {
	author, postPage, err := s.ListByAuthor(ctx, username, page)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{Author: author, Page: postPage}

	if viewer != nil && viewer.ID != author.ID {
		profile.Following, err = s.followRepo.Exists(ctx, viewer.ID, author.ID)
		if err != nil {
			return nil, err
		}
	}

	if profile.Followers, err = s.followRepo.CountFollowers(ctx, author.ID); err != nil {
		return nil, err
	}
	if profile.Follows, err = s.followRepo.CountFollowing(ctx, author.ID); err != nil {
		return nil, err
	}

	return profile, nil
}

// listPage returns page number page of the filtered listing. A page past the
// end comes back empty.
func (s *feedService) listPage(ctx context.Context, filter repository.PostFilter, page int) (*models.PostPage, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.postRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	postPage := &models.PostPage{
		Posts:  []models.Post{},
		Number: page,
		Size:   PageSize,
		Total:  total,
	}

	// checked before Offset so a huge page number cannot overflow it
	if page > postPage.TotalPages() {
		return postPage, nil
	}

	posts, err := s.postRepo.List(ctx, filter, PageSize, postPage.Offset())
	if err != nil {
		return nil, err
	}

	for i := range posts {
		posts[i].ImageURL = s.storage.ImageURL(posts[i].Image)
	}
	postPage.Posts = posts

	return postPage, nil
}
