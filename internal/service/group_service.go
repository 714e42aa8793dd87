package service

import (
	"context"
	"strings"

	"yatube/internal/models"
	"yatube/internal/repository"

	"github.com/go-playground/validator/v10"
)

type CreateGroupRequest struct {
	Title       string `validate:"required,max=200"`
	Slug        string `validate:"required,max=50,slug"`
	Description string
}

type GroupService interface {
	Create(ctx context.Context, req CreateGroupRequest) (*models.Group, error)
	List(ctx context.Context) ([]models.Group, error)
	Delete(ctx context.Context, slug string) error
}

type groupService struct {
	groupRepo repository.GroupRepository
	validate  *validator.Validate
}

func NewGroupService(groupRepo repository.GroupRepository) GroupService {
	return &groupService{
		groupRepo: groupRepo,
		validate:  NewValidator(),
	}
}

func (s *groupService) Create(ctx context.Context, req CreateGroupRequest) (*models.Group, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Slug = strings.TrimSpace(req.Slug)

	if err := s.validate.Struct(req); err != nil {
		var field string
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			field = strings.ToLower(fieldErrs[0].Field())
		}
		return nil, models.NewValidationError(field, err.Error())
	}

	group := &models.Group{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
	}

	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

func (s *groupService) List(ctx context.Context) ([]models.Group, error) {
	return s.groupRepo.List(ctx)
}

// Delete removes the group; its posts stay and lose the group reference.
func (s *groupService) Delete(ctx context.Context, slug string) error {
	return s.groupRepo.Delete(ctx, slug)
}
