package repository

import (
	"errors"

	"github.com/lib/pq"
)

const (
	codeForeignKeyViolation pq.ErrorCode = "23503"
	codeUniqueViolation     pq.ErrorCode = "23505"
)

// Constraint names Postgres generates for the schema in migrations/.
const (
	constraintPostGroup     = "posts_group_id_fkey"
	constraintPostAuthor    = "posts_author_id_fkey"
	constraintCommentPost   = "comments_post_id_fkey"
	constraintCommentAuthor = "comments_author_id_fkey"
)

// violation returns the constraint name when err is a Postgres error with the given code.
func violation(err error, code pq.ErrorCode) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == code {
		return pqErr.Constraint, true
	}
	return "", false
}
