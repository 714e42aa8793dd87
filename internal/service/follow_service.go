package service

import (
	"context"

	"yatube/internal/models"
	"yatube/internal/repository"
)

type FollowService interface {
	Follow(ctx context.Context, user *models.User, username string) (*models.User, error)
	Unfollow(ctx context.Context, user *models.User, username string) (*models.User, error)
}

type followService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

func NewFollowService(userRepo repository.UserRepository, followRepo repository.FollowRepository) FollowService {
	return &followService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// Follow subscribes user to username's posts and returns the author.
// Following yourself and following twice change nothing.
func (s *followService) Follow(ctx context.Context, user *models.User, username string) (*models.User, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if author.ID == user.ID {
		return author, nil
	}

	if err := s.followRepo.Create(ctx, user.ID, author.ID); err != nil {
		return nil, err
	}

	return author, nil
}

// Unfollow removes the subscription if there is one.
func (s *followService) Unfollow(ctx context.Context, user *models.User, username string) (*models.User, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.followRepo.Delete(ctx, user.ID, author.ID); err != nil {
		return nil, err
	}

	return author, nil
}
