package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/scout/internal/model"
	"github.com/roach88/scout/internal/store"
)

func TestExportImportCSV(t *testing.T) {
	src := tempDB(t)
	seedDB(t, src, func(s *store.Store) {
		ctx := context.Background()
		require.NoError(t, s.PutTeam(ctx, model.Team{UID: 1234, TeamNum: 118, Overall: 90, HangAttempt: true}))
		require.NoError(t, s.PutMatch(ctx, model.NewMatch(1, true, false, roster(118, 254))))
	})
	dir := t.TempDir()
	teamsCSV := filepath.Join(dir, "teams.csv")
	matchesCSV := filepath.Join(dir, "matches.csv")

	_, _, err := runScout(t, src, "export", "csv", "teams", teamsCSV)
	require.NoError(t, err)
	_, _, err = runScout(t, src, "export", "csv", "matches", matchesCSV)
	require.NoError(t, err)

	data, err := os.ReadFile(teamsCSV)
	require.NoError(t, err)
	assert.Equal(t, "118,0,90,1,0,0,0,0,0,0,0,0\n", string(data))

	dst := tempDB(t)
	out, _, err := runScout(t, dst, "--format", "json", "import", "teams", teamsCSV)
	require.NoError(t, err)
	var res TransferResult
	decodeData(t, out, &res)
	assert.Equal(t, TransferResult{Kind: model.KindTeam, Path: teamsCSV, Records: 1}, res)

	out, _, err = runScout(t, dst, "import", "matches", matchesCSV)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 Matches")

	seedDB(t, dst, func(s *store.Store) {
		ctx := context.Background()
		teams, err := s.ListTeams(ctx)
		require.NoError(t, err)
		require.Len(t, teams, 1)
		assert.Equal(t, 118, teams[0].TeamNum)
		assert.Equal(t, 90, teams[0].Overall)

		m, found, err := s.GetMatch(ctx, 1)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, roster(118, 254), m.Slots)
	})
}

func TestExportJSON(t *testing.T) {
	dbPath := tempDB(t)
	seedDB(t, dbPath, func(s *store.Store) {
		require.NoError(t, s.PutMatch(context.Background(), model.NewMatch(1, true, false, roster(118))))
	})
	path := filepath.Join(t.TempDir(), "matches.json")

	out, _, err := runScout(t, dbPath, "export", "json", "matches", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported Matches to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"team1": "118"`)
}

func TestExportQR(t *testing.T) {
	dbPath := tempDB(t)
	seedDB(t, dbPath, func(s *store.Store) {
		require.NoError(t, s.PutMatch(context.Background(), model.NewMatch(1, true, false, roster(118))))
	})
	dir := t.TempDir()

	_, _, err := runScout(t, dbPath, "export", "qr", "matches", filepath.Join(dir, "MatchData.png"))
	require.NoError(t, err)

	csvPath := filepath.Join(dir, "matches.csv")
	qrPath := filepath.Join(dir, "qr.png")
	_, _, err = runScout(t, dbPath, "export", "csv", "matches", csvPath, "--qr", qrPath)
	require.NoError(t, err)

	for _, path := range []string{filepath.Join(dir, "MatchData.png"), qrPath} {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "\x89PNG"), "%s is not a PNG", path)
	}
	_, err = os.Stat(csvPath)
	assert.NoError(t, err)
}

func TestImport_Malformed(t *testing.T) {
	dbPath := tempDB(t)
	path := filepath.Join(t.TempDir(), "teams.csv")
	require.NoError(t, os.WriteFile(path, []byte("118,1,x,0,0,0,0,0,0,0,0,0\n"), 0o644))

	_, _, err := runScout(t, dbPath, "import", "teams", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "line 1, field overall")
}

func TestTransfer_InvalidKind(t *testing.T) {
	_, _, err := runScout(t, tempDB(t), "export", "csv", "robots", "out.csv")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestShowSQL(t *testing.T) {
	dbPath := tempDB(t)

	_, errOut, err := runScout(t, dbPath, "--show-sql", "match", "add", "7")
	require.NoError(t, err)
	assert.Contains(t, errOut, "SQL> INSERT OR REPLACE INTO Matches")
	assert.Contains(t, errOut, "VALUES (7, 0, 0, 0, 0, 0, 0, 0, 0)")

	_, errOut, err = runScout(t, dbPath, "--show-sql", "match", "list")
	require.NoError(t, err)
	assert.Contains(t, errOut, "MSG> Found 1 Matches")
}
