package roster_test

import (
	"database/sql"
	"testing"

	"github.com/skovlund/birdieledger/internal/database"
	"github.com/skovlund/birdieledger/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (roster.PlayerStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := roster.New(db)
	return store, db, dbTeardown
}

func TestUpsertAndGetPlayer(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	hcp := 12.4
	err := store.UpsertPlayer(roster.PlayerInfo{ID: "p1", Name: "Michael", HandicapIndex: &hcp, IsSelf: true})
	require.NoError(t, err)

	p, err := store.GetPlayer("p1")
	require.NoError(t, err)
	assert.Equal(t, "Michael", p.Name)
	require.NotNil(t, p.HandicapIndex)
	assert.Equal(t, 12.4, *p.HandicapIndex)
	assert.True(t, p.IsSelf)
	assert.True(t, store.IsKnownPlayer("p1"))
	assert.False(t, store.IsKnownPlayer("nobody"))

	// Upsert replaces, it does not duplicate.
	err = store.UpsertPlayer(roster.PlayerInfo{ID: "p1", Name: "Michael K"})
	require.NoError(t, err)
	all, err := store.GetAllPlayers()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Michael K", all[0].Name)
	assert.Nil(t, all[0].HandicapIndex)
}

func TestAddAliasDeduplicates(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertPlayer(roster.PlayerInfo{ID: "p1", Name: "Michael"}))

	require.NoError(t, store.AddAlias("p1", "Miguel"))
	require.NoError(t, store.AddAlias("p1", "Miguel"))
	require.NoError(t, store.AddAlias("p1", "Mike"))
	require.NoError(t, store.AddAlias("p1", ""))

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM player_aliases WHERE player_id = 'p1'`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	p, err := store.GetPlayer("p1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Miguel", "Mike"}, p.Aliases)
}

func TestUpdateHandicapValidatesRange(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	hcp := 10.0
	require.NoError(t, store.UpsertPlayer(roster.PlayerInfo{ID: "p1", Name: "Michael", HandicapIndex: &hcp}))

	require.NoError(t, store.UpdateHandicap("p1", 14.5))

	// Out-of-range values are rejected and the stored value survives.
	assert.Error(t, store.UpdateHandicap("p1", 60))
	assert.Error(t, store.UpdateHandicap("p1", -11))

	p, err := store.GetPlayer("p1")
	require.NoError(t, err)
	require.NotNil(t, p.HandicapIndex)
	assert.Equal(t, 14.5, *p.HandicapIndex)

	assert.Error(t, store.UpdateHandicap("ghost", 10))
}
