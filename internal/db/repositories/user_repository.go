package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"skyward-va/concourse/internal/constants"
	"skyward-va/concourse/internal/models/entities"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db}
}

// FindUserByToken resolves a bearer API token to its user. Used by the auth
// middleware on every request.
func (r *UserRepository) FindUserByToken(ctx context.Context, token string) (*entities.User, error) {
	var user entities.User

	err := r.db.QueryRowxContext(ctx, constants.GetUserByApiToken, token).StructScan(&user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetAttendedCount returns a user's flights-attended counter.
func (r *UserRepository) GetAttendedCount(ctx context.Context, userID string) (int, error) {
	var count int

	err := r.db.QueryRowxContext(ctx, constants.GetAttendedCount, userID).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
