package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatch_CountsOccupiedSlots(t *testing.T) {
	m := NewMatch(4, true, false, [RosterSize]int{118, 0, 254, 0, 0, 1678})
	assert.Equal(t, 3, m.TeamCount)
	assert.Equal(t, 4, m.MatchNum)
	assert.True(t, m.RedWon())
}

func TestAddCompetitor_FillsRedBeforeBlue(t *testing.T) {
	m := NewMatch(1, false, false, [RosterSize]int{})

	for i, teamNum := range []int{118, 254, 1678, 2056, 971, 148} {
		slot := m.AddCompetitor(teamNum)
		assert.Equal(t, i, slot)
		assert.Equal(t, i+1, m.TeamCount)
	}

	assert.Equal(t, [AllianceSize]int{118, 254, 1678}, m.Red())
	assert.Equal(t, [AllianceSize]int{2056, 971, 148}, m.Blue())
	assert.True(t, m.Full())
}

func TestAddCompetitor_ReusesFirstFreedSlot(t *testing.T) {
	m := NewMatch(1, false, false, [RosterSize]int{118, 254, 1678, 2056, 0, 0})

	require.Equal(t, 1, m.RemoveCompetitor(254))
	assert.Equal(t, 1, m.AddCompetitor(330))
	assert.Equal(t, 4, m.TeamCount)
}

func TestAddCompetitor_Rejections(t *testing.T) {
	full := NewMatch(1, false, false, [RosterSize]int{1, 2, 3, 4, 5, 6})
	assert.Equal(t, -1, full.AddCompetitor(7))
	assert.Equal(t, 6, full.TeamCount)

	m := NewMatch(2, false, false, [RosterSize]int{118})
	assert.Equal(t, -1, m.AddCompetitor(118), "duplicate")
	assert.Equal(t, -1, m.AddCompetitor(EmptySlot), "sentinel")
	assert.Equal(t, 1, m.TeamCount)
}

func TestRemoveCompetitor(t *testing.T) {
	m := NewMatch(1, false, false, [RosterSize]int{118, 0, 0, 254})

	assert.Equal(t, 3, m.RemoveCompetitor(254))
	assert.Equal(t, 1, m.TeamCount)
	assert.Equal(t, EmptySlot, m.Slots[3])

	assert.Equal(t, -1, m.RemoveCompetitor(254))
	assert.Equal(t, 1, m.TeamCount)
}

func TestRemoveCompetitor_ClearsRepeatedTeam(t *testing.T) {
	m := NewMatch(1, false, false, [RosterSize]int{118, 118, 0, 254})
	require.Equal(t, 3, m.TeamCount)

	assert.Equal(t, 0, m.RemoveCompetitor(118))
	assert.False(t, m.Contains(118))
	assert.Equal(t, 1, m.TeamCount)
}

func TestValidate_DuplicateTeam(t *testing.T) {
	ok := NewMatch(1, false, false, [RosterSize]int{118, 0, 0, 254})
	assert.NoError(t, ok.Validate())
	assert.Equal(t, -1, ok.DuplicateSlot())

	dup := NewMatch(2, false, false, [RosterSize]int{118, 0, 0, 254, 118})
	assert.Equal(t, 4, dup.DuplicateSlot())
	err := dup.Validate()
	require.ErrorIs(t, err, ErrDuplicateTeam)
	assert.Equal(t, "match 2: team already in roster: team 118 repeated in slot 5", err.Error())
}

func TestAllianceOf(t *testing.T) {
	m := NewMatch(1, false, false, [RosterSize]int{118, 0, 0, 254})

	assert.Equal(t, AllianceRed, m.AllianceOf(118))
	assert.Equal(t, AllianceBlue, m.AllianceOf(254))
	assert.Equal(t, AllianceNone, m.AllianceOf(999))
	assert.True(t, m.OnRedAlliance(118))
	assert.True(t, m.OnBlueAlliance(254))
	assert.False(t, m.Contains(EmptySlot))
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		name            string
		red, blue       bool
		redWon, blueWon bool
		tie, played     bool
	}{
		{"unplayed", false, false, false, false, false, false},
		{"red", true, false, true, false, false, true},
		{"blue", false, true, false, true, false, true},
		{"tie", true, true, false, false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Match{RedWin: tt.red, BlueWin: tt.blue}
			assert.Equal(t, tt.redWon, m.RedWon())
			assert.Equal(t, tt.blueWon, m.BlueWon())
			assert.Equal(t, tt.tie, m.IsTie())
			assert.Equal(t, tt.played, m.Played())
		})
	}
}
