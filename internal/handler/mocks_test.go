package handlers

import (
	"context"

	"yatube/internal/models"
	"yatube/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) GetUserFromToken(ctx context.Context, tokenString string) (*models.User, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) ListAll(ctx context.Context, page int) (*models.PostPage, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PostPage), args.Error(1)
}

func (m *MockFeedService) ListByGroup(ctx context.Context, slug string, page int) (*models.Group, *models.PostPage, error) {
	args := m.Called(ctx, slug, page)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Group), args.Get(1).(*models.PostPage), args.Error(2)
}

func (m *MockFeedService) ListByAuthor(ctx context.Context, username string, page int) (*models.User, *models.PostPage, error) {
	args := m.Called(ctx, username, page)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(*models.PostPage), args.Error(2)
}

func (m *MockFeedService) ListFollowedFeed(ctx context.Context, user *models.User, page int) (*models.PostPage, error) {
	args := m.Called(ctx, user, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PostPage), args.Error(1)
}

func (m *MockFeedService) Profile(ctx context.Context, username string, viewer *models.User, page int) (*models.Profile, error) {
	args := m.Called(ctx, username, viewer, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, author *models.User, req service.CreatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, author, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, editor *models.User, req service.UpdatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, editor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) GetPost(ctx context.Context, postID int64) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) GetPostDetail(ctx context.Context, postID int64) (*models.PostDetail, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PostDetail), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, editor *models.User, postID int64) error {
	args := m.Called(ctx, editor, postID)
	return args.Error(0)
}

func (m *MockPostService) AddComment(ctx context.Context, author *models.User, postID int64, text string) (*models.Comment, error) {
	args := m.Called(ctx, author, postID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

type MockFollowService struct {
	mock.Mock
}

func (m *MockFollowService) Follow(ctx context.Context, user *models.User, username string) (*models.User, error) {
	args := m.Called(ctx, user, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockFollowService) Unfollow(ctx context.Context, user *models.User, username string) (*models.User, error) {
	args := m.Called(ctx, user, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockGroupService struct {
	mock.Mock
}

func (m *MockGroupService) Create(ctx context.Context, req service.CreateGroupRequest) (*models.Group, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockGroupService) List(ctx context.Context) ([]models.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Group), args.Error(1)
}

func (m *MockGroupService) Delete(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

type MockTablesService struct {
	mock.Mock
}

func (m *MockTablesService) GetCountTablesDB(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
