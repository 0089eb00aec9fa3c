package store

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/conflictwatch/overlay/pkg/core"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(DatabaseModels...))
	return db
}

func sampleBundle() *core.ConflictBundle {
	asOf := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	return &core.ConflictBundle{
		ConflictID: "east-2026",
		Name:       "Eastern Front",
		Frontline: []core.FrontlineSegment{
			{
				ID:     "fl-1",
				Label:  "Northern axis",
				AsOf:   asOf,
				Status: core.StatusActive,
				Points: []core.Position{{Lon: 30, Lat: 51}, {Lon: 31.5, Lat: 51.2}, {Lon: 32, Lat: 50.9}},
			},
		},
		Units: []core.Unit{
			{ID: "u-1", Side: core.SideA, Type: core.UnitMechanized, Echelon: core.EchelonBrigade,
				Name: "14th Mech", Lat: 50.1, Lon: 30.3, Sector: "north"},
		},
		Battles: []core.BattleSite{
			{
				ID: "b-1", Name: "Battle of the Bridgehead", Lat: 48.5, Lon: 37.9,
				Date: asOf.AddDate(0, -1, 0), Result: "A: repelled assault",
				Note: "river crossing contested for a week",
				SideA: core.BattleSideFacts{
					Commander: "Gen. A", Troops: "~8,000", Equipment: "2 brigades", Casualties: "heavy",
				},
				SideB: core.BattleSideFacts{
					Commander: "Gen. B", Troops: "~11,000", Equipment: "armor group", Casualties: "moderate",
				},
				Significance: "controls the eastern supply route",
			},
		},
		Infrastructure: []core.InfrastructureItem{
			{ID: "i-1", Side: core.SideA, Lat: 50.45, Lon: 30.52, Type: "rail", Name: "Rail hub", Note: "key junction"},
		},
		Naval: []core.NavalPosition{
			{ID: "n-1", Side: core.SideB, Lat: 44.6, Lon: 33.5, Type: "fleet", Name: "Fleet HQ"},
		},
		NuclearPlants: []core.NuclearPlant{
			{ID: "np-1", Country: "UA", Lat: 47.5, Lon: 34.6, Name: "ZNPP", Note: "occupied"},
		},
		Cities: []core.CityMarker{
			{ID: "c-1", Country: "UA", Lat: 49.99, Lon: 36.23, Name: "Kharkiv"},
		},
		Capitals: []core.CapitalMarker{
			{ID: "cap-1", Country: "UA", Lat: 50.45, Lon: 30.52, Name: "Kyiv"},
		},
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := New(testDB(t))
	want := sampleBundle()

	require.NoError(t, s.SaveBundle(want))

	got, err := s.LoadBundle("east-2026")
	require.NoError(t, err)

	assert.Equal(t, want.ConflictID, got.ConflictID)
	assert.Equal(t, want.Name, got.Name)

	require.Len(t, got.Frontline, 1)
	seg := got.Frontline[0]
	assert.Equal(t, "fl-1", seg.ID)
	assert.Equal(t, core.StatusActive, seg.Status)
	assert.Equal(t, want.Frontline[0].Points, seg.Points, "point order must survive the round trip")
	assert.True(t, want.Frontline[0].AsOf.Equal(seg.AsOf))

	require.Len(t, got.Units, 1)
	assert.Equal(t, want.Units[0], got.Units[0])

	require.Len(t, got.Battles, 1)
	battle := got.Battles[0]
	assert.Equal(t, want.Battles[0].SideA, battle.SideA)
	assert.Equal(t, want.Battles[0].SideB, battle.SideB)
	assert.Equal(t, want.Battles[0].Significance, battle.Significance)
	assert.True(t, want.Battles[0].Date.Equal(battle.Date))

	assert.Equal(t, want.Infrastructure, got.Infrastructure)
	assert.Equal(t, want.Naval, got.Naval)
	assert.Equal(t, want.NuclearPlants, got.NuclearPlants)
	assert.Equal(t, want.Cities, got.Cities)
	assert.Equal(t, want.Capitals, got.Capitals)
}

func TestStore_SaveBundle_ReplacesPreviousRows(t *testing.T) {
	s := New(testDB(t))

	first := sampleBundle()
	require.NoError(t, s.SaveBundle(first))

	// same conflict id, smaller entity set
	second := &core.ConflictBundle{
		ConflictID: "east-2026",
		Name:       "Eastern Front (revised)",
		Cities: []core.CityMarker{
			{ID: "c-9", Name: "Odesa", Lat: 46.48, Lon: 30.72},
		},
	}
	require.NoError(t, s.SaveBundle(second))

	got, err := s.LoadBundle("east-2026")
	require.NoError(t, err)

	assert.Equal(t, "Eastern Front (revised)", got.Name)
	assert.Empty(t, got.Frontline, "old rows must not leak into the new bundle")
	assert.Empty(t, got.Units)
	assert.Empty(t, got.Battles)
	require.Len(t, got.Cities, 1)
	assert.Equal(t, "c-9", got.Cities[0].ID)

	conflicts, err := s.ListConflicts()
	require.NoError(t, err)
	assert.Len(t, conflicts, 1, "re-saving must not duplicate the conflict row")
}

func TestStore_LoadBundle_Missing(t *testing.T) {
	s := New(testDB(t))

	_, err := s.LoadBundle("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStore_ListConflicts(t *testing.T) {
	s := New(testDB(t))

	list, err := s.ListConflicts()
	require.NoError(t, err)
	assert.Empty(t, list)

	b1 := sampleBundle()
	b2 := sampleBundle()
	b2.ConflictID = "south-2026"
	b2.Name = "Southern Front"
	require.NoError(t, s.SaveBundle(b1))
	require.NoError(t, s.SaveBundle(b2))

	list, err = s.ListConflicts()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "east-2026", list[0].ConflictID)
	assert.Equal(t, "south-2026", list[1].ConflictID)
}

func TestStore_BattleWithoutFacts(t *testing.T) {
	s := New(testDB(t))

	b := &core.ConflictBundle{
		ConflictID: "bare",
		Name:       "Bare",
		Battles: []core.BattleSite{
			{ID: "b-1", Name: "Skirmish", Lat: 1, Lon: 2},
		},
	}
	require.NoError(t, s.SaveBundle(b))

	got, err := s.LoadBundle("bare")
	require.NoError(t, err)
	require.Len(t, got.Battles, 1)
	assert.Equal(t, core.BattleSideFacts{}, got.Battles[0].SideA)
	assert.Equal(t, core.BattleSideFacts{}, got.Battles[0].SideB)
}
