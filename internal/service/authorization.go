package service

import "yatube/internal/models"

// CanEditPost reports whether user may change or delete post.
func CanEditPost(user *models.User, post *models.Post) bool {
	return user != nil && post != nil && user.ID == post.AuthorID
}

func requireUser(user *models.User) error {
	if user == nil {
		return models.NewUnauthenticatedError()
	}
	return nil
}
