package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/scout/internal/model"
	"github.com/roach88/scout/internal/store"
)

// runScout executes the root command against dbPath and returns what it
// wrote to stdout and stderr.
func runScout(t *testing.T, dbPath string, args ...string) (string, string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(append([]string{"--db", dbPath}, args...))

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// tempDB returns a database path in a fresh temp dir.
func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "scout.db")
}

// seedDB opens dbPath directly and runs fn against the store.
func seedDB(t *testing.T, dbPath string, fn func(s *store.Store)) {
	t.Helper()
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()
	fn(st)
}

func roster(slots ...int) [model.RosterSize]int {
	var r [model.RosterSize]int
	copy(r[:], slots)
	return r
}

// decodeData unmarshals the data field of a JSON CLI response into v.
func decodeData(t *testing.T, out string, v interface{}) {
	t.Helper()

	var resp struct {
		Status  string          `json:"status"`
		Data    json.RawMessage `json:"data"`
		Session string          `json:"session"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), "output: %s", out)
	require.Equal(t, "ok", resp.Status)
	require.NotEmpty(t, resp.Session)
	require.NoError(t, json.Unmarshal(resp.Data, v))
}
