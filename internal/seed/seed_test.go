package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/clubroster/internal/dependencies/mocks"
	"github.com/mcoot/clubroster/internal/services/auth"
	"github.com/mcoot/clubroster/internal/storage/memory"
	"github.com/mcoot/clubroster/internal/testutil"
)

func newAuth(store *memory.Storage) *auth.Service {
	return auth.New(store, mocks.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		mocks.NewMockRandom(), auth.Config{BcryptCost: bcrypt.MinCost}, testutil.NopLogger())
}

func TestDemoSeedsLoginAndRoster(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	authService := newAuth(store)

	require.NoError(t, Demo(ctx, store, authService, testutil.NopLogger()))

	_, err := authService.Login(ctx, DemoEmail, DemoPassword)
	require.NoError(t, err)

	players, err := store.SearchPlayersByName(ctx, "", 100)
	require.NoError(t, err)
	assert.Len(t, players, len(DemoPlayers))
}

func TestDemoIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	authService := newAuth(store)

	require.NoError(t, Demo(ctx, store, authService, testutil.NopLogger()))
	require.NoError(t, Demo(ctx, store, authService, testutil.NopLogger()))

	players, err := store.SearchPlayersByName(ctx, "", 100)
	require.NoError(t, err)
	assert.Len(t, players, len(DemoPlayers))
}
