package service

import (
	"context"

	"yatube/internal/models"
	"yatube/internal/repository"
)

type UserService interface {
	GetUser(ctx context.Context, username string) (*models.User, error)
	DeleteUser(ctx context.Context, username string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{
		userRepo: userRepo,
	}
}

func (s *userService) GetUser(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetUserByUsername(ctx, username)
}

// DeleteUser removes the account together with its posts, comments and follows.
func (s *userService) DeleteUser(ctx context.Context, username string) error {
	// get user by username
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	return s.userRepo.DeleteUser(ctx, user.ID)
}
