package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/quickretail/qpos/internal/models"
	"github.com/quickretail/qpos/internal/utils"
)

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	user := &models.User{}

	query := `
		SELECT id, username, name, pin_hash, role, is_active
		FROM users
		WHERE username = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, username).Scan(
		&user.ID, &user.Username, &user.Name, &user.PINHash, &user.Role, &user.IsActive)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return user, nil
}
