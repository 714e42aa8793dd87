package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPost_DisplayText(t *testing.T) {
	assert.Equal(t, EmptyTextPlaceholder, (&Post{}).DisplayText())
	assert.Equal(t, "hello", (&Post{Text: "hello"}).DisplayText())
}

func TestPostPage_Navigation(t *testing.T) {
	tests := []struct {
		name       string
		page       PostPage
		totalPages int
		hasNext    bool
		hasPrev    bool
		offset     int
	}{
		{"Первая страница из двух", PostPage{Number: 1, Size: 10, Total: 13}, 2, true, false, 0},
		{"Последняя страница", PostPage{Number: 2, Size: 10, Total: 13}, 2, false, true, 10},
		{"За пределами данных", PostPage{Number: 5, Size: 10, Total: 13}, 2, false, true, 40},
		{"Пустая выдача", PostPage{Number: 1, Size: 10, Total: 0}, 0, false, false, 0},
		{"Ровно одна страница", PostPage{Number: 1, Size: 10, Total: 10}, 1, false, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.totalPages, tt.page.TotalPages())
			assert.Equal(t, tt.hasNext, tt.page.HasNext())
			assert.Equal(t, tt.hasPrev, tt.page.HasPrev())
			assert.Equal(t, tt.offset, tt.page.Offset())
		})
	}
}

func TestAppError_Codes(t *testing.T) {
	notFound := fmt.Errorf("лента группы: %w", NewNotFoundError("группа", "cats"))
	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsForbidden(notFound))
	assert.Contains(t, notFound.Error(), "группа cats не найден")

	internal := NewInternalError("ошибка БД", errors.New("boom"))
	assert.Equal(t, "ошибка БД: boom", internal.Error())
	assert.ErrorContains(t, errors.Unwrap(internal), "boom")

	assert.True(t, IsForbidden(NewForbiddenError("нет прав")))
	assert.True(t, IsUnauthenticated(NewUnauthenticatedError()))
	assert.True(t, IsValidation(NewValidationError("text", "обязательное поле")))
	assert.False(t, IsNotFound(errors.New("plain")))
}
