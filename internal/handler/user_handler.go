package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *Handlers) ProfileFollow(w http.ResponseWriter, r *http.Request) {
	author, err := h.FollowService.Follow(r.Context(), currentUser(r), mux.Vars(r)["username"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	http.Redirect(w, r, profileURL(author.Username), http.StatusFound)
}

func (h *Handlers) ProfileUnfollow(w http.ResponseWriter, r *http.Request) {
	author, err := h.FollowService.Unfollow(r.Context(), currentUser(r), mux.Vars(r)["username"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	http.Redirect(w, r, profileURL(author.Username), http.StatusFound)
}
