package handlers

import (
	"net/http"

	"yatube/internal/cache"
	"yatube/internal/middleware"

	"github.com/gorilla/mux"
)

// NewRouter builds the site. Only the index page goes through pageCache.
func NewRouter(h *Handlers, pageCache cache.ResponseCache) http.Handler {
	r := mux.NewRouter()

	login := middleware.RequireAuth(h.Cfg.LoginURL)
	cached := middleware.CachePage(pageCache, h.Cfg.Cache.TTL, "index")

	r.Handle("/", cached(http.HandlerFunc(h.Index))).Methods(http.MethodGet).Name("index")
	r.HandleFunc("/group/{slug}/", h.GroupPosts).Methods(http.MethodGet).Name("group_list")
	r.HandleFunc("/profile/{username}/", h.Profile).Methods(http.MethodGet).Name("profile")
	r.HandleFunc("/posts/{id:[0-9]+}/", h.PostDetail).Methods(http.MethodGet).Name("post_detail")
	r.Handle("/posts/{id:[0-9]+}/edit/", login(h.PostEdit)).Methods(http.MethodGet, http.MethodPost).Name("post_edit")
	r.Handle("/create/", login(h.PostCreate)).Methods(http.MethodGet, http.MethodPost).Name("post_create")
	r.Handle("/posts/{id:[0-9]+}/comment/", login(h.AddComment)).Methods(http.MethodPost).Name("add_comment")
	r.Handle("/follow/", login(h.FollowIndex)).Methods(http.MethodGet).Name("follow_index")
	r.Handle("/profile/{username}/follow/", login(h.ProfileFollow)).Methods(http.MethodPost).Name("profile_follow")
	r.Handle("/profile/{username}/unfollow/", login(h.ProfileUnfollow)).Methods(http.MethodPost).Name("profile_unfollow")

	r.HandleFunc("/auth/login/", h.Login).Methods(http.MethodGet, http.MethodPost).Name("login")
	r.HandleFunc("/auth/signup/", h.Signup).Methods(http.MethodPost).Name("signup")
	r.HandleFunc("/auth/logout/", h.Logout).Methods(http.MethodPost).Name("logout")

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(h.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(h.MethodNotAllowed)

	return middleware.Chain(
		r,
		middleware.Authenticate(h.AuthService),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)
}
