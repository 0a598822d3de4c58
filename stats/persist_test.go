package stats

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRounds() []Round {
	return []Round{
		{
			Moves: map[string][]Move{
				EntityCroupier: {{Action: MoveHit, Value: 14}, {Action: MoveStand, Value: 19}},
				EntityAI1:      {{Action: MoveStand, Value: 20}},
				EntityHuman:    {{Action: MoveHit, Value: 25}},
			},
			Winners: []string{EntityAI1},
		},
		{
			Moves:   map[string][]Move{},
			Winners: []string{EntityCroupier},
		},
	}
}

func assertRoundsEqual(t *testing.T, expected, actual []Round) {
	require.Equal(t, len(expected), len(actual))
	for i := range expected {
		assert.ElementsMatch(t, expected[i].Winners, actual[i].Winners, "round %d winners", i)
		require.Equal(t, len(expected[i].Moves), len(actual[i].Moves), "round %d moves", i)
		for entity, moves := range expected[i].Moves {
			assert.Equal(t, moves, actual[i].Moves[entity], "round %d entity %s", i, entity)
		}
	}
}

func TestFileStoreRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rounds.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(sampleRounds()))
	loaded, err := store.Load()
	require.NoError(t, err)
	assertRoundsEqual(t, sampleRounds(), loaded)
}

func TestFileStoreMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope.json"))
	_, err := store.Load()
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsCorruptStore(err))
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rounds.json")
	require.NoError(t, ioutil.WriteFile(path, []byte("{not json"), 0644))

	store := NewFileStore(path)
	_, err := store.Load()
	require.Error(t, err)
	assert.True(t, IsCorruptStore(err))
}

func TestFileStoreCorruptMoveList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rounds.json")
	// Odd-length interleaved move list cannot be decoded.
	data := `[{"croupier_moves":["H"],"ai1_moves":[],"ai2_moves":[],"human_moves":[],"winners":[]}]`
	require.NoError(t, ioutil.WriteFile(path, []byte(data), 0644))

	store := NewFileStore(path)
	_, err := store.Load()
	require.Error(t, err)
	assert.True(t, IsCorruptStore(err))
}

func TestMemoryStoreRoundtrip(t *testing.T) {
	store := NewMemoryStore()
	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)

	require.NoError(t, store.Save(sampleRounds()))
	loaded, err = store.Load()
	require.NoError(t, err)
	assertRoundsEqual(t, sampleRounds(), loaded)
}

func TestRecordInterleaving(t *testing.T) {
	record := toRecord(sampleRounds()[0])
	assert.Equal(t, []string{"H", "14", "S", "19"}, record.CroupierMoves)
	assert.Equal(t, []string{"S", "20"}, record.AI1Moves)
	assert.Equal(t, []string{}, record.AI2Moves)
	assert.Equal(t, []string{"H", "25"}, record.HumanMoves)
	assert.Equal(t, []string{EntityAI1}, record.Winners)
}
