package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarshallMM/GrimDarkRoster/internal/parser"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "roster.db")
	s, err := Open(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "k", []byte("one")))
	require.NoError(t, s.Set(ctx, "k", []byte("two")))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), got)

	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_RosterSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	s, path := openTemp(t)

	want := &parser.Roster{
		Meta:      parser.Meta{Name: "Strike Force", Faction: "Space Marines", PointsUsed: 80, PointsLimit: 2000},
		ArmyRules: []parser.ArmyRule{{Name: "Oath of Moment", Description: "Pick a target."}},
		Units: []parser.Unit{{
			ID: "u1", Name: "Intercessor Squad", Category: "BATTLELINE", Points: 80,
			Stats:     []parser.Statline{{Name: "Intercessor", M: `6"`}},
			Models:    []parser.Model{{Name: "Intercessor", Count: 5, Weapons: []parser.Weapon{{Name: "Bolt rifle", Count: 5}}}},
			Abilities: map[string][]parser.Rule{"Core": {{Name: "Deep Strike", Description: "x"}}},
		}},
	}
	require.NoError(t, s.SaveRoster(ctx, want))
	require.NoError(t, s.Close())

	reopened, err := Open(path, nil)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.LoadRoster(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, reopened.ClearRoster(ctx))
	_, err = reopened.LoadRoster(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Memory(t *testing.T) {
	ctx := context.Background()
	s, err := Open(":memory:", nil)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestStore_CorruptRoster(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)

	require.NoError(t, s.Set(ctx, RosterKey, []byte("not json")))
	_, err := s.LoadRoster(ctx)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
