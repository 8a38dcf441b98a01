package postgres_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotes/internal/notes/adapters/postgres"
	"gonotes/internal/notes/domain/entities"
)

var userCols = []string{"id", "name", "email", "password_hash", "created_at", "updated_at"}

func TestUserRepositoryCreate(t *testing.T) {
	ctx := context.Background()
	input := &entities.User{Name: "Ann", Email: "ann@example.com", PasswordHash: "hash"}

	t.Run("success", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("INSERT INTO users .+ RETURNING").
			WithArgs("Ann", "ann@example.com", "hash").
			WillReturnRows(pgxmock.NewRows(userCols).AddRow(int64(5), "Ann", "ann@example.com", "hash", fixedTime, fixedTime))

		user, err := postgres.NewUserRepository(mock).Create(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, int64(5), user.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_lower_key"})

		_, err := postgres.NewUserRepository(mock).Create(ctx, input)
		assert.ErrorIs(t, err, entities.ErrEmailTaken)
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("INSERT INTO users").WillReturnError(errDBConn)

		_, err := postgres.NewUserRepository(mock).Create(ctx, input)
		assert.ErrorIs(t, err, errDBConn)
	})
}

func TestUserRepositoryFind(t *testing.T) {
	ctx := context.Background()

	t.Run("by id", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT .+ FROM users WHERE id = \\$1").WithArgs(int64(5)).
			WillReturnRows(pgxmock.NewRows(userCols).AddRow(int64(5), "Ann", "ann@example.com", "hash", fixedTime, fixedTime))

		user, err := postgres.NewUserRepository(mock).FindByID(ctx, 5)

		require.NoError(t, err)
		assert.Equal(t, "Ann", user.Name)
	})

	t.Run("by id not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT .+ FROM users").WithArgs(int64(5)).WillReturnError(pgx.ErrNoRows)

		_, err := postgres.NewUserRepository(mock).FindByID(ctx, 5)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)
	})

	t.Run("by email is case insensitive", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT .+ FROM users WHERE lower\\(email\\) = lower\\(\\$1\\)").WithArgs("ANN@example.com").
			WillReturnRows(pgxmock.NewRows(userCols).AddRow(int64(5), "Ann", "ann@example.com", "hash", fixedTime, fixedTime))

		user, err := postgres.NewUserRepository(mock).FindByEmail(ctx, "ANN@example.com")

		require.NoError(t, err)
		assert.Equal(t, int64(5), user.ID)
	})

	t.Run("by email not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT .+ FROM users").WithArgs("x@example.com").WillReturnError(pgx.ErrNoRows)

		_, err := postgres.NewUserRepository(mock).FindByEmail(ctx, "x@example.com")
		assert.ErrorIs(t, err, entities.ErrUserNotFound)
	})
}

func TestRepositoryFactory(t *testing.T) {
	factory := postgres.NewRepositoryFactory(newMock(t))

	assert.NotNil(t, factory.NoteRepository())
	assert.NotNil(t, factory.UserRepository())
}
