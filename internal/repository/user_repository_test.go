package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"yatube/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var userColumns = []string{"id", "username", "password_hash", "created_at"}

func TestUserRepository_CreateUser(t *testing.T) {
	createdAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Успешное создание пользователя", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (username, password_hash)`)).
			WithArgs("leo", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, createdAt))

		user := &models.User{Username: "leo"}
		err := repo.CreateUser(context.Background(), user, "password123")

		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, createdAt, user.CreatedAt)
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка при дублировании username", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_username_key"})

		err := repo.CreateUser(context.Background(), &models.User{Username: "leo"}, "password123")

		assert.True(t, models.IsValidation(err))
	})

	t.Run("Ошибка базы данных", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(errors.New("connection reset"))

		err := repo.CreateUser(context.Background(), &models.User{Username: "leo"}, "password123")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ошибка при создании пользователя")
	})
}

func TestUserRepository_GetUserByUsername(t *testing.T) {
	t.Run("Пользователь найден", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, password_hash, created_at FROM users WHERE username = $1`)).
			WithArgs("leo").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, "leo", "hash", time.Now()))

		user, err := NewUserRepository(db).GetUserByUsername(context.Background(), "leo")

		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "leo", user.Username)
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(`FROM users WHERE username`).
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows(userColumns))

		user, err := NewUserRepository(db).GetUserByUsername(context.Background(), "ghost")

		assert.Nil(t, user)
		assert.True(t, models.IsNotFound(err))
	})
}

func TestUserRepository_GetUserByID(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnError(errors.New("connection reset"))

	user, err := NewUserRepository(db).GetUserByID(context.Background(), 5)

	assert.Nil(t, user)
	assert.False(t, models.IsNotFound(err))
	assert.Contains(t, err.Error(), "ошибка при получении пользователя")
}

func TestUserRepository_VerifyPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name        string
		password    string
		expectError bool
	}{
		{"Верный пароль", "secret1", false},
		{"Неверный пароль", "wrong", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			mock.ExpectQuery(`FROM users WHERE username`).
				WithArgs("leo").
				WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, "leo", string(hash), time.Now()))

			user, err := NewUserRepository(db).VerifyPassword(context.Background(), "leo", tt.password)

			if tt.expectError {
				assert.Nil(t, user)
				assert.EqualError(t, err, "неверный пароль")
			} else {
				require.NoError(t, err)
				assert.Equal(t, "leo", user.Username)
			}
		})
	}
}

func TestUserRepository_DeleteUser(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.DeleteUser(context.Background(), 1))
	assert.True(t, models.IsNotFound(repo.DeleteUser(context.Background(), 2)))
	assert.NoError(t, mock.ExpectationsWereMet())
}
