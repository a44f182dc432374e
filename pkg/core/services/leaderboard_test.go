package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timbercreek/coffee-connect/pkg/db"
)

func TestLeaderboard(t *testing.T) {
	ctx := context.Background()

	store := newMockStore()
	store.users["user-1"] = &db.User{ID: "user-1", Name: "Alice", Points: 55}
	store.users["user-2"] = &db.User{ID: "user-2", Name: "Bob", Points: 40}

	users, err := Leaderboard(ctx, store)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
