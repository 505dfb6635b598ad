package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	t.Parallel()

	s := openTemp(t)
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, s.Record(ctx, Entry{Timestamp: base, Command: "npm", CommandLine: "npm install", Mode: "calm", Plugin: "npm", Duration: 1500 * time.Millisecond}))
	require.NoError(t, s.Record(ctx, Entry{Timestamp: base.Add(time.Minute), Command: "git", CommandLine: "git push", Mode: "full", ExitCode: 1, LogPath: "/tmp/x.yaml"}))

	entries, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "git", entries[0].Command)
	assert.Equal(t, 1, entries[0].ExitCode)
	assert.Equal(t, "/tmp/x.yaml", entries[0].LogPath)
	assert.Empty(t, entries[0].Plugin)
	assert.True(t, base.Add(time.Minute).Equal(entries[0].Timestamp))

	assert.Equal(t, "npm install", entries[1].CommandLine)
	assert.Equal(t, "npm", entries[1].Plugin)
	assert.Equal(t, 1500*time.Millisecond, entries[1].Duration)

	limited, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestFailureRate(t *testing.T) {
	t.Parallel()

	s := openTemp(t)
	ctx := context.Background()
	for _, code := range []int{0, 1, 2, 0} {
		require.NoError(t, s.Record(ctx, Entry{Command: "docker", CommandLine: "docker build .", ExitCode: code}))
	}

	rate, total, err := s.FailureRate(ctx, "docker")
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.InDelta(t, 0.5, rate, 1e-9)

	rate, total, err = s.FailureRate(ctx, "never-run")
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Zero(t, rate)
}

func TestDisabledStore(t *testing.T) {
	t.Parallel()

	s, err := Open("")
	require.NoError(t, err)
	assert.False(t, s.Enabled())

	ctx := context.Background()
	require.NoError(t, s.Record(ctx, Entry{Command: "npm"}))
	entries, err := s.Recent(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, entries)
	require.NoError(t, s.Close())

	var nilStore *Store
	assert.NoError(t, nilStore.Record(ctx, Entry{}))
}

func TestOpen_Reopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Record(context.Background(), Entry{Command: "yarn", CommandLine: "yarn build"}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	entries, err := s.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "yarn", entries[0].Command)
}

func TestRecent_CorruptTimestamp(t *testing.T) {
	t.Parallel()

	s := openTemp(t)
	ctx := context.Background()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (timestamp, command, command_line, exit_code) VALUES (?, ?, ?, ?)`,
		"yesterday-ish", "npm", "npm install", 0)
	require.NoError(t, err)

	_, err = s.Recent(ctx, 10)
	assert.ErrorContains(t, err, "parse timestamp of run")
}
