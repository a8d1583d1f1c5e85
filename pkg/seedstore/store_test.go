package seedstore

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/nomagicln/arb/pkg/arb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "failures.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndListFailures(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.RecordFailure("sorting", 42, 3, `[{"position":1,"value":0}]`))
	require.NoError(t, store.RecordFailure("sorting", 7, 0, `[]`))
	require.NoError(t, store.RecordFailure("parsing", 99, 1, `[]`))

	all, err := store.Failures("")
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest first.
	assert.Equal(t, "parsing", all[0].Property)
	assert.Equal(t, int64(99), all[0].Seed)

	sorting, err := store.Failures("sorting")
	require.NoError(t, err)
	require.Len(t, sorting, 2)
	assert.Equal(t, int64(7), sorting[0].Seed)
	assert.Equal(t, int64(42), sorting[1].Seed)
	assert.Equal(t, 3, sorting[1].Trial)
	assert.Contains(t, sorting[1].Inputs, `"position":1`)
	assert.False(t, sorting[0].RecordedAt.IsZero())
}

func TestLastSeed(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.LastSeed("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.RecordFailure("p", 1, 0, `[]`))
	require.NoError(t, store.RecordFailure("p", 2, 0, `[]`))

	seed, ok, err := store.LastSeed("p")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(2), seed)
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "failures.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.RecordFailure("durable", 5, 0, `[]`))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	failures, err := reopened.Failures("durable")
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, int64(5), failures[0].Seed)
}

func TestStoreRecordsDriverFailures(t *testing.T) {
	store := openTestStore(t)

	err := arb.Run(func(g *arb.G) error {
		g.IntRange(0, 10)
		return errors.New("always fails")
	}, arb.Trials(10), arb.Seed(1234), arb.Named("driver integration"), arb.WithRecorder(store))
	require.Error(t, err)

	seed, ok, lookupErr := store.LastSeed("driver integration")
	require.NoError(t, lookupErr)
	require.True(t, ok)
	assert.Equal(t, int64(1234), seed)

	// Replaying the recorded seed reproduces the identical failure.
	replay := arb.Run(func(g *arb.G) error {
		g.IntRange(0, 10)
		return errors.New("always fails")
	}, arb.Trials(10), arb.Seed(seed), arb.Named("driver integration"))
	require.Error(t, replay)
	assert.Equal(t, err.Error(), replay.Error())
}
