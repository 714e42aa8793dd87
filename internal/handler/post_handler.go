package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"yatube/internal/models"
	"yatube/internal/service"
	"yatube/internal/storage"

	"github.com/gorilla/mux"
)

const invalidImageMessage = "Загрузите правильное изображение. Файл, который вы загрузили, поврежден или не является изображением."

type postForm struct {
	Text  string `validate:"required"`
	Group string `validate:"omitempty,numeric"`
}

type PostFormValues struct {
	Text  string `json:"text"`
	Group *int64 `json:"group"`
}

type PostFormResponse struct {
	Form   PostFormValues `json:"form"`
	Errors FormErrors     `json:"errors,omitempty"`
	IsEdit bool           `json:"isEdit"`
	Post   *PostResponse  `json:"post,omitempty"`
	Groups []models.Group `json:"groups"`
}

type GroupPageResponse struct {
	Group *models.Group `json:"group"`
	Page  PageResponse  `json:"page"`
}

type ProfileResponse struct {
	Author    string       `json:"author"`
	Following bool         `json:"following"`
	Followers int          `json:"followers"`
	Follows   int          `json:"follows"`
	Page      PageResponse `json:"page"`
}

type PostDetailResponse struct {
	Post        PostResponse      `json:"post"`
	Comments    []CommentResponse `json:"comments"`
	AuthorPosts int               `json:"authorPosts"`
	CanEdit     bool              `json:"canEdit"`
}

func postDetailURL(postID int64) string {
	return fmt.Sprintf("/posts/%d/", postID)
}

func profileURL(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

func pageParam(r *http.Request) int {
	return service.ParsePage(r.URL.Query().Get("page"))
}

func postIDParam(r *http.Request) (int64, bool) {
	postID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return postID, err == nil && postID > 0
}

func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	page, err := h.FeedService.ListAll(r.Context(), pageParam(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, newPageResponse(page), http.StatusOK)
}

func (h *Handlers) GroupPosts(w http.ResponseWriter, r *http.Request) {
	group, page, err := h.FeedService.ListByGroup(r.Context(), mux.Vars(r)["slug"], pageParam(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, GroupPageResponse{Group: group, Page: newPageResponse(page)}, http.StatusOK)
}

func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.FeedService.Profile(r.Context(), mux.Vars(r)["username"], currentUser(r), pageParam(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, ProfileResponse{
		Author:    profile.Author.Username,
		Following: profile.Following,
		Followers: profile.Followers,
		Follows:   profile.Follows,
		Page:      newPageResponse(profile.Page),
	}, http.StatusOK)
}

func (h *Handlers) PostDetail(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDParam(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	detail, err := h.PostService.GetPostDetail(r.Context(), postID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, PostDetailResponse{
		Post:        newPostResponse(detail.Post),
		Comments:    newCommentResponses(detail.Comments),
		AuthorPosts: detail.AuthorPosts,
		CanEdit:     service.CanEditPost(currentUser(r), detail.Post),
	}, http.StatusOK)
}

func (h *Handlers) FollowIndex(w http.ResponseWriter, r *http.Request) {
	page, err := h.FeedService.ListFollowedFeed(r.Context(), currentUser(r), pageParam(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, newPageResponse(page), http.StatusOK)
}

func (h *Handlers) PostCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.writePostForm(w, r, PostFormResponse{})
		return
	}

	values, image, errs := h.readPostForm(w, r)
	if len(errs) > 0 {
		h.writePostForm(w, r, PostFormResponse{Form: values, Errors: errs})
		return
	}

	user := currentUser(r)
	_, err := h.PostService.CreatePost(r.Context(), user, service.CreatePostRequest{
		Text:    values.Text,
		GroupID: values.Group,
		Image:   image,
	})
	if err != nil {
		if models.IsValidation(err) {
			h.writePostForm(w, r, PostFormResponse{Form: values, Errors: h.formErrors(err)})
			return
		}
		h.writeServiceError(w, r, err)
		return
	}

	http.Redirect(w, r, profileURL(user.Username), http.StatusFound)
}

// PostEdit lets the author change a post. Anyone else is sent back to the post
// on GET and gets the unchanged post on POST.
func (h *Handlers) PostEdit(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDParam(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	post, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	user := currentUser(r)

	if r.Method == http.MethodGet {
		if !service.CanEditPost(user, post) {
			http.Redirect(w, r, postDetailURL(postID), http.StatusFound)
			return
		}
		h.writeEditForm(w, r, post, PostFormValues{Text: post.Text, Group: post.GroupID}, nil)
		return
	}

	values, image, errs := h.readPostForm(w, r)
	if len(errs) > 0 {
		h.writeEditForm(w, r, post, values, errs)
		return
	}

	updated, err := h.PostService.UpdatePost(r.Context(), user, service.UpdatePostRequest{
		PostID:  postID,
		Text:    values.Text,
		GroupID: values.Group,
		Image:   image,
	})
	switch {
	case err == nil:
		http.Redirect(w, r, postDetailURL(updated.ID), http.StatusFound)
	case models.IsForbidden(err) && updated != nil:
		h.writeEditForm(w, r, updated, PostFormValues{Text: updated.Text, Group: updated.GroupID}, nil)
	case models.IsValidation(err):
		h.writeEditForm(w, r, post, values, h.formErrors(err))
	default:
		h.writeServiceError(w, r, err)
	}
}

func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDParam(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	if err := h.parseForm(w, r); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	_, err := h.PostService.AddComment(r.Context(), currentUser(r), postID, r.PostFormValue("text"))
	if err != nil && !models.IsValidation(err) {
		h.writeServiceError(w, r, err)
		return
	}

	http.Redirect(w, r, postDetailURL(postID), http.StatusFound)
}

func (h *Handlers) parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(h.Cfg.MaxUploadSize)
	}
	return r.ParseForm()
}

// readPostForm parses the text, group and image fields. Problems are returned
// as form errors so the form can be shown again.
func (h *Handlers) readPostForm(w http.ResponseWriter, r *http.Request) (PostFormValues, *service.ImageUpload, FormErrors) {
	errs := FormErrors{}

	if err := h.parseForm(w, r); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			errs["image"] = "Файл слишком большой."
		} else {
			errs["__all__"] = "Неверный формат запроса."
		}
		return PostFormValues{}, nil, errs
	}

	form := postForm{
		Text:  r.PostFormValue("text"),
		Group: strings.TrimSpace(r.PostFormValue("group")),
	}
	values := PostFormValues{Text: form.Text}

	if err := h.Validate.Struct(form); err != nil {
		for field, msg := range h.formErrors(err) {
			errs[field] = msg
		}
	}
	if strings.TrimSpace(form.Text) == "" && errs["text"] == "" {
		errs["text"] = "Обязательное поле."
	}

	if form.Group != "" && errs["group"] == "" {
		groupID, err := strconv.ParseInt(form.Group, 10, 64)
		if err != nil {
			errs["group"] = "Выберите корректный вариант."
		} else {
			values.Group = &groupID
		}
	}

	image, err := readImage(r)
	if err != nil {
		errs["image"] = invalidImageMessage
	}

	if len(errs) > 0 {
		return values, nil, errs
	}
	return values, image, nil
}

func readImage(r *http.Request) (*service.ImageUpload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader, size, contentType, err := storage.SniffImage(file)
	if err != nil {
		return nil, err
	}

	return &service.ImageUpload{
		FileName:    header.Filename,
		Reader:      reader,
		Size:        size,
		ContentType: contentType,
	}, nil
}

func (h *Handlers) writePostForm(w http.ResponseWriter, r *http.Request, resp PostFormResponse) {
	groups, err := h.GroupService.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	resp.Groups = groups
	WriteSuccess(w, resp, http.StatusOK)
}

func (h *Handlers) writeEditForm(w http.ResponseWriter, r *http.Request, post *models.Post, values PostFormValues, errs FormErrors) {
	postResp := newPostResponse(post)
	h.writePostForm(w, r, PostFormResponse{
		Form:   values,
		Errors: errs,
		IsEdit: true,
		Post:   &postResp,
	})
}
