package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickretail/qpos/internal/models"
	repository "github.com/quickretail/qpos/internal/repositories"
)

func setupUserRepoTest(t *testing.T) (repository.UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	return repository.NewUserRepo(db), mock
}

func TestGetUserByUsername(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mock := setupUserRepoTest(t)

		mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs("asha").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "username", "name", "pin_hash", "role", "is_active",
			}).AddRow(int64(11), "asha", "Asha", "$2a$04$hash", "CASHIER", true))

		user, err := repo.GetByUsername(ctx, "asha")

		require.NoError(t, err)
		assert.Equal(t, int64(11), user.ID)
		assert.Equal(t, models.RoleCashier, user.Role)
		assert.True(t, user.IsActive)
	})

	t.Run("Failure - Not Found Passes Through", func(t *testing.T) {
		repo, mock := setupUserRepoTest(t)

		mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetByUsername(ctx, "ghost")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}
