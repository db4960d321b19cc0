package refdata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/trendlinehq/builder-api/internal/builder"
	"github.com/trendlinehq/builder-api/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Referee{}, &models.Player{}))
	return NewStore(db, nil)
}

func seedReferees(t *testing.T, store *Store) {
	t.Helper()
	require.NoError(t, store.db.Create(&[]models.Referee{
		{Name: "Carl Cheffers", GameCount: 44},
		{Name: "Clete Blakeman", GameCount: 42},
		{Name: "Shawn Hochuli", GameCount: 43},
	}).Error)
}

func TestSearchReferees(t *testing.T) {
	store := newTestStore(t)
	seedReferees(t, store)

	results, err := store.SearchReferees(context.Background(), "cheffers", 0)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "Carl Cheffers", results[0].Name)

	all, err := store.SearchReferees(context.Background(), "", 2)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "Carl Cheffers", all[0].Name, "highest game count first")
}

func TestRefereeByNameCaseInsensitive(t *testing.T) {
	store := newTestStore(t)
	seedReferees(t, store)

	ref, err := store.RefereeByName(context.Background(), "carl cheffers")
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, 44, ref.GameCount)

	missing, err := store.RefereeByName(context.Background(), "Nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestResolveUpgradesPlaceholders(t *testing.T) {
	store := newTestStore(t)
	seedReferees(t, store)

	state := builder.DefaultState()
	state.QueryType = builder.QueryReferee
	state.Referee = &builder.RefereeRef{Name: "Carl Cheffers"}
	state.VersusTeam = &builder.TeamRef{ID: 14}

	store.Resolve(context.Background(), &state)

	assert.True(t, state.Referee.Resolved)
	assert.Equal(t, 44, state.Referee.GameCount)
	assert.True(t, state.VersusTeam.Resolved)
	assert.Equal(t, "Los Angeles Rams", state.VersusTeam.Name)
}

func TestResolveUnknownRefereeStaysPlaceholder(t *testing.T) {
	store := newTestStore(t)
	seedReferees(t, store)

	state := builder.DefaultState()
	state.Referee = &builder.RefereeRef{Name: "Ghost Ref"}

	store.Resolve(context.Background(), &state)
	assert.False(t, state.Referee.Resolved)
}
