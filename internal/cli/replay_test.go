package cli

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/peano/internal/store"
	"github.com/roach88/peano/internal/testutil"
)

// recordRun evaluates exprs into a fresh database under the default test
// run ID and returns the database path.
func recordRun(t *testing.T, exprs ...string) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "peano.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)

	eng := newTestEngine(st)
	for _, src := range exprs {
		_, err := eng.Eval(context.Background(), src)
		require.NoError(t, err)
	}
	require.NoError(t, st.Close())
	return dbPath
}

// tamper rewrites the recorded error code of one evaluation.
func tamper(t *testing.T, dbPath string, seq int64, code string) {
	t.Helper()
	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(`UPDATE evaluations SET error_code = ? WHERE seq = ?`, code, seq)
	require.NoError(t, err)
}

func TestReplayRequiresDatabase(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewReplayCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"some-run"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--db is required")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestReplayUnknownRun(t *testing.T) {
	dbPath := recordRun(t, "1 + 1")

	_, _, err := execute(t, "replay", "--db", dbPath, "no-such-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run no-such-run not found")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestReplayDeterministic(t *testing.T) {
	dbPath := recordRun(t, "3 + 4", "1 / 0", "(x + 1)^2")

	out, _, err := execute(t, "replay", "--db", dbPath, testutil.DefaultRunID)
	require.NoError(t, err)
	assert.Equal(t,
		"Run "+testutil.DefaultRunID+": 3 evaluation(s) replayed\nOK all outcomes reproduced\n",
		out)
}

func TestReplayMismatch(t *testing.T) {
	dbPath := recordRun(t, "3 + 4", "1 - 2")
	tamper(t, dbPath, 2, "DIVISION_BY_ZERO")

	out, _, err := execute(t, "replay", "--db", dbPath, testutil.DefaultRunID)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, `seq 2 "1 - 2": recorded error DIVISION_BY_ZERO, replayed error UNDERFLOW`)
	assert.Contains(t, out, "FAIL 1 outcome(s) differ")
}

func TestReplayMismatchJSON(t *testing.T) {
	dbPath := recordRun(t, "1 - 2")
	tamper(t, dbPath, 1, "NOT_INVERTIBLE")

	out, _, err := execute(t, "--format", "json", "replay", "--db", dbPath, testutil.DefaultRunID)
	require.Error(t, err)

	var resp struct {
		Status string       `json:"status"`
		RunID  string       `json:"run_id"`
		Data   ReplayResult `json:"data"`
		Error  *CLIError    `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, testutil.DefaultRunID, resp.RunID)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "REPLAY_MISMATCH", resp.Error.Code)
	assert.False(t, resp.Data.Deterministic)
	require.Len(t, resp.Data.Mismatches, 1)
	assert.Equal(t, "error NOT_INVERTIBLE", resp.Data.Mismatches[0].Recorded)
	assert.Equal(t, "error UNDERFLOW", resp.Data.Mismatches[0].Replayed)
}

func TestDescribeOutcome(t *testing.T) {
	assert.Equal(t, "error UNDERFLOW", describeOutcome("", "UNDERFLOW"))
	assert.Equal(t, "value 0123456789ab", describeOutcome("0123456789abcdef", ""))
	assert.Equal(t, "value abc", describeOutcome("abc", ""))
}

func TestRunsList(t *testing.T) {
	dbPath := recordRun(t, "1 + 1", "1 - 2", "2 * 3")

	out, _, err := execute(t, "runs", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, testutil.DefaultRunID)
	assert.Contains(t, out, "3 evaluation(s), 1 failed")
}

func TestRunsListEmpty(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, _, err := execute(t, "runs", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No runs found")

	out, _, err = execute(t, "--format", "json", "runs", "--db", dbPath)
	require.NoError(t, err)
	var resp struct {
		Data []RunListEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Empty(t, resp.Data)
}

func TestRunsTimeline(t *testing.T) {
	dbPath := recordRun(t, "1 + 1", "1 - 2")

	out, _, err := execute(t, "runs", "--db", dbPath, testutil.DefaultRunID)
	require.NoError(t, err)
	assert.Contains(t, out, "Run "+testutil.DefaultRunID+" (repl, engine ")
	assert.Contains(t, out, "  [1] 1 + 1\n      = natural 2\n")
	assert.Contains(t, out, "  [2] 1 - 2\n      ! UNDERFLOW: ")
	assert.Contains(t, out, "2 evaluation(s): 1 value(s), 1 failure(s)")
}

func TestRunsTimelineFailedJSON(t *testing.T) {
	dbPath := recordRun(t, "1 + 1", "1 - 2", "3 / 0")

	out, _, err := execute(t, "--format", "json", "runs", "--db", dbPath, "--failed", testutil.DefaultRunID)
	require.NoError(t, err)

	var resp struct {
		Data RunTimeline `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data.Evaluations, 2)
	assert.Equal(t, "UNDERFLOW", resp.Data.Evaluations[0].ErrorCode)
	assert.Equal(t, "DIVISION_BY_ZERO", resp.Data.Evaluations[1].ErrorCode)
	assert.Equal(t, RunStats{Total: 3, Values: 1, Failures: 2}, resp.Data.Stats)
}

func TestRunsUnknownRun(t *testing.T) {
	dbPath := recordRun(t, "1")

	_, _, err := execute(t, "runs", "--db", dbPath, "missing")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
