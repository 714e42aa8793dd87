package models

import (
	"time"
)

// EmptyTextPlaceholder is shown instead of a post with no text.
const EmptyTextPlaceholder = "—empty—"

type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type Group struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Slug        string `json:"slug" db:"slug"`
	Description string `json:"description" db:"description"`
}

type Post struct {
	ID       int64     `json:"id" db:"id"`
	Text     string    `json:"text" db:"text"`
	PubDate  time.Time `json:"pubDate" db:"pub_date"`
	AuthorID int64     `json:"authorId" db:"author_id"`
	GroupID  *int64    `json:"groupId" db:"group_id"`
	Image    string    `json:"image" db:"image"`

	// read-side projections filled by the post queries
	AuthorUsername string  `json:"author" db:"author_username"`
	GroupSlug      *string `json:"groupSlug" db:"group_slug"`
	GroupTitle     *string `json:"groupTitle" db:"group_title"`
	ImageURL       string  `json:"imageUrl" db:"-"`
}

// DisplayText returns the text or a placeholder for an empty post.
func (p *Post) DisplayText() string {
	if p.Text == "" {
		return EmptyTextPlaceholder
	}
	return p.Text
}

// HasImage reports whether an attachment was stored for the post.
func (p *Post) HasImage() bool {
	return p.Image != ""
}

type Comment struct {
	ID             int64     `json:"id" db:"id"`
	PostID         int64     `json:"postId" db:"post_id"`
	AuthorID       int64     `json:"authorId" db:"author_id"`
	Text           string    `json:"text" db:"text"`
	Created        time.Time `json:"created" db:"created"`
	AuthorUsername string    `json:"author" db:"author_username"`
}

type Follow struct {
	ID       int64 `json:"id" db:"id"`
	UserID   int64 `json:"userId" db:"user_id"`
	AuthorID int64 `json:"authorId" db:"author_id"`
}

// PostPage is one page of an ordered post listing.
type PostPage struct {
	Posts  []Post
	Number int
	Size   int
	Total  int
}

func (p *PostPage) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return (p.Total + p.Size - 1) / p.Size
}

func (p *PostPage) HasNext() bool {
	return p.Number < p.TotalPages()
}

func (p *PostPage) HasPrev() bool {
	return p.Number > 1
}

// Offset is the index of the first item of the page in the full listing.
func (p *PostPage) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// PostDetail is a single post together with its discussion.
type PostDetail struct {
	Post        *Post
	Comments    []Comment
	AuthorPosts int
}

// Profile is an author's page as seen by a particular viewer.
type Profile struct {
	Author    *User
	Page      *PostPage
	Following bool
	Followers int
	Follows   int
}
