package handlers

import (
	"net/http"

	"yatube/internal/config"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/service"

	"github.com/go-playground/validator/v10"
)

type Handlers struct {
	AuthService   service.AuthService
	FeedService   service.FeedService
	PostService   service.PostService
	FollowService service.FollowService
	GroupService  service.GroupService
	TablesService service.TablesService
	Cfg           *config.Config
	Validate      *validator.Validate
}

func NewHandlers(services *service.Service, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthService:   services.Auth,
		FeedService:   services.Feed,
		PostService:   services.Post,
		FollowService: services.Follow,
		GroupService:  services.Group,
		TablesService: services.Tables,
		Cfg:           cfg,
		Validate:      service.NewValidator(),
	}
}

func currentUser(r *http.Request) *models.User {
	return middleware.UserFromContext(r.Context())
}
