package handlers

import (
	"time"

	"yatube/internal/models"

	"github.com/dustin/go-humanize"
)

type GroupRef struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

type PostResponse struct {
	ID           int64     `json:"id"`
	Text         string    `json:"text"`
	DisplayText  string    `json:"displayText"`
	PubDate      time.Time `json:"pubDate"`
	PubDateHuman string    `json:"pubDateHuman"`
	Author       string    `json:"author"`
	Group        *GroupRef `json:"group"`
	ImageURL     string    `json:"imageUrl"`
}

type PageResponse struct {
	Posts      []PostResponse `json:"posts"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
	Total      int            `json:"total"`
	HasNext    bool           `json:"hasNext"`
	HasPrev    bool           `json:"hasPrev"`
}

type CommentResponse struct {
	ID           int64     `json:"id"`
	Author       string    `json:"author"`
	Text         string    `json:"text"`
	Created      time.Time `json:"created"`
	CreatedHuman string    `json:"createdHuman"`
}

func newPostResponse(post *models.Post) PostResponse {
	resp := PostResponse{
		ID:           post.ID,
		Text:         post.Text,
		DisplayText:  post.DisplayText(),
		PubDate:      post.PubDate,
		PubDateHuman: humanize.Time(post.PubDate),
		Author:       post.AuthorUsername,
		ImageURL:     post.ImageURL,
	}

	if post.GroupSlug != nil {
		resp.Group = &GroupRef{Slug: *post.GroupSlug}
		if post.GroupTitle != nil {
			resp.Group.Title = *post.GroupTitle
		}
	}

	return resp
}

func newPageResponse(page *models.PostPage) PageResponse {
	posts := make([]PostResponse, 0, len(page.Posts))
	for i := range page.Posts {
		posts = append(posts, newPostResponse(&page.Posts[i]))
	}

	return PageResponse{
		Posts:      posts,
		Page:       page.Number,
		TotalPages: page.TotalPages(),
		Total:      page.Total,
		HasNext:    page.HasNext(),
		HasPrev:    page.HasPrev(),
	}
}

func newCommentResponses(comments []models.Comment) []CommentResponse {
	resp := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		resp = append(resp, CommentResponse{
			ID:           c.ID,
			Author:       c.AuthorUsername,
			Text:         c.Text,
			Created:      c.Created,
			CreatedHuman: humanize.Time(c.Created),
		})
	}
	return resp
}
