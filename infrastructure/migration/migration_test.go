package migration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/lead-tracker-api/infrastructure/database"
	"github.com/vfg2006/lead-tracker-api/infrastructure/database/sqlite"
)

func TestRun_SQLiteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	conn, err := sqlite.NewConnection(ctx, sqlite.InMemory)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	applied, err := Run(ctx, conn)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, applied)

	again, err := Run(ctx, conn)
	require.NoError(t, err)
	assert.Empty(t, again)

	versions, err := Applied(ctx, conn)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, versions)

	for _, table := range []string{"contact_journeys", "call_performance_slots", "lead_events"} {
		var name string
		err := conn.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestListScripts_BothDialectsMatch(t *testing.T) {
	pg, err := listScripts(database.Postgres)
	require.NoError(t, err)
	lite, err := listScripts(database.SQLite)
	require.NoError(t, err)

	require.Len(t, pg, len(lite))
	for i := range pg {
		assert.Equal(t, pg[i].version, lite[i].version)
	}
}

func TestParseVersion(t *testing.T) {
	version, err := parseVersion("0002_create_call_performance_slots.sql")
	require.NoError(t, err)
	assert.Equal(t, 2, version)

	_, err = parseVersion("create_tables.sql")
	assert.Error(t, err)
}
