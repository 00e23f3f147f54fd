package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"skyward-va/concourse/internal/constants"
	"skyward-va/concourse/internal/models/entities"
)

type LeaderboardRepo struct {
	db *sqlx.DB
}

func NewLeaderboardRepo(db *sqlx.DB) *LeaderboardRepo {
	return &LeaderboardRepo{db}
}

// Top returns the highest point balances in descending order.
func (r *LeaderboardRepo) Top(ctx context.Context, limit int) ([]entities.LeaderboardEntry, error) {
	entries := []entities.LeaderboardEntry{}

	err := r.db.SelectContext(ctx, &entries, constants.GetLeaderboard, limit)
	if err != nil {
		return nil, err
	}

	return entries, nil
}
