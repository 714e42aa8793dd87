package service

import (
	"yatube/internal/config"
	"yatube/internal/repository"
	"yatube/internal/storage"
)

type Service struct {
	Auth   AuthService
	Feed   FeedService
	Post   PostService
	Follow FollowService
	Group  GroupService
	User   UserService
	Tables TablesService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth:   NewAuthService(rep.User, cfg),
		Feed:   NewFeedService(rep.Post, rep.Group, rep.User, rep.Follow, storage),
		Post:   NewPostService(rep.Post, rep.Group, rep.Comment, storage),
		Follow: NewFollowService(rep.User, rep.Follow),
		Group:  NewGroupService(rep.Group),
		User:   NewUserService(rep.User),
		Tables: NewTablesService(rep.Tables),
	}
}
