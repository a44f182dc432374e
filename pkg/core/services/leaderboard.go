package services

import (
	"context"

	"github.com/timbercreek/coffee-connect/pkg/db"
)

// LeaderboardStore defines the database operations for the points leaderboard
type LeaderboardStore interface {
	ListUsersByPoints(ctx context.Context) ([]db.User, error)
}

// Leaderboard returns all members ordered by points, highest first.
func Leaderboard(ctx context.Context, store LeaderboardStore) ([]db.User, error) {
	users, err := store.ListUsersByPoints(ctx)
	if err != nil {
		return nil, storeErr("leaderboard", err)
	}
	return users, nil
}
