package model

import (
	"errors"
	"fmt"
)

// ErrDuplicateTeam is returned for a roster that seats one team twice.
var ErrDuplicateTeam = errors.New("team already in roster")

// RosterSize is the number of slots in a match roster.
const RosterSize = 6

// AllianceSize is the number of slots per alliance.
const AllianceSize = 3

// EmptySlot marks an unoccupied roster slot.
const EmptySlot = 0

// Alliance identifies one half of a match roster.
type Alliance string

const (
	AllianceNone Alliance = ""
	AllianceRed  Alliance = "red"
	AllianceBlue Alliance = "blue"
)

// Match is one competition match. Slots 0-2 are the red alliance and
// slots 3-5 the blue alliance.
//
// RedWin and BlueWin both set means a tie; neither set means no result
// has been recorded yet.
//
// Slots must only be changed through AddCompetitor and RemoveCompetitor
// so that TeamCount stays in step with the roster.
type Match struct {
	MatchNum  int             `json:"match_num"`
	Slots     [RosterSize]int `json:"slots"`
	TeamCount int             `json:"team_count"`
	RedWin    bool            `json:"red_win"`
	BlueWin   bool            `json:"blue_win"`
}

// NewMatch builds a match from a stored or imported roster, deriving
// TeamCount from the occupied slots.
func NewMatch(matchNum int, redWin, blueWin bool, slots [RosterSize]int) Match {
	m := Match{
		MatchNum: matchNum,
		Slots:    slots,
		RedWin:   redWin,
		BlueWin:  blueWin,
	}
	for _, teamNum := range slots {
		if teamNum != EmptySlot {
			m.TeamCount++
		}
	}
	return m
}

// Full reports whether every roster slot is occupied.
func (m Match) Full() bool {
	return m.TeamCount >= RosterSize
}

// Contains reports whether teamNum occupies any slot.
func (m Match) Contains(teamNum int) bool {
	return m.SlotOf(teamNum) >= 0
}

// SlotOf returns the slot index holding teamNum, or -1.
func (m Match) SlotOf(teamNum int) int {
	if teamNum == EmptySlot || m.TeamCount == 0 {
		return -1
	}
	for i, slot := range m.Slots {
		if slot == teamNum {
			return i
		}
	}
	return -1
}

// DuplicateSlot returns the index of the first slot repeating a team seated
// earlier in the roster, or -1.
func (m Match) DuplicateSlot() int {
	for i := 1; i < RosterSize; i++ {
		if m.Slots[i] == EmptySlot {
			continue
		}
		for _, prev := range m.Slots[:i] {
			if prev == m.Slots[i] {
				return i
			}
		}
	}
	return -1
}

// Validate rejects a roster that seats the same team in two slots.
func (m Match) Validate() error {
	if i := m.DuplicateSlot(); i >= 0 {
		return fmt.Errorf("match %d: %w: team %d repeated in slot %d",
			m.MatchNum, ErrDuplicateTeam, m.Slots[i], i+1)
	}
	return nil
}

// AllianceOf returns the alliance teamNum plays on in this match.
func (m Match) AllianceOf(teamNum int) Alliance {
	i := m.SlotOf(teamNum)
	switch {
	case i < 0:
		return AllianceNone
	case i < AllianceSize:
		return AllianceRed
	default:
		return AllianceBlue
	}
}

// OnRedAlliance reports whether teamNum occupies one of slots 0-2.
func (m Match) OnRedAlliance(teamNum int) bool {
	return m.AllianceOf(teamNum) == AllianceRed
}

// OnBlueAlliance reports whether teamNum occupies one of slots 3-5.
func (m Match) OnBlueAlliance(teamNum int) bool {
	return m.AllianceOf(teamNum) == AllianceBlue
}

// RedWon reports an outright red alliance win.
func (m Match) RedWon() bool { return m.RedWin && !m.BlueWin }

// BlueWon reports an outright blue alliance win.
func (m Match) BlueWon() bool { return m.BlueWin && !m.RedWin }

// IsTie reports whether both alliances were credited.
func (m Match) IsTie() bool { return m.RedWin && m.BlueWin }

// Played reports whether any result has been recorded.
func (m Match) Played() bool { return m.RedWin || m.BlueWin }

// Red returns the red alliance slots.
func (m Match) Red() [AllianceSize]int {
	return [AllianceSize]int{m.Slots[0], m.Slots[1], m.Slots[2]}
}

// Blue returns the blue alliance slots.
func (m Match) Blue() [AllianceSize]int {
	return [AllianceSize]int{m.Slots[3], m.Slots[4], m.Slots[5]}
}

// AddCompetitor places teamNum in the first empty slot, red before blue.
// Returns the slot used, or -1 if the roster is full, teamNum is the
// empty sentinel, or teamNum is already present.
func (m *Match) AddCompetitor(teamNum int) int {
	if teamNum == EmptySlot || m.Full() || m.Contains(teamNum) {
		return -1
	}
	for i, slot := range m.Slots {
		if slot == EmptySlot {
			m.Slots[i] = teamNum
			m.TeamCount++
			return i
		}
	}
	return -1
}

// RemoveCompetitor clears every slot holding teamNum, so a roster read from
// a file that seated the team twice is left without it.
// Returns the first slot cleared, or -1 if teamNum was not in the roster.
func (m *Match) RemoveCompetitor(teamNum int) int {
	first := m.SlotOf(teamNum)
	if first < 0 {
		return -1
	}
	for i := first; i < RosterSize; i++ {
		if m.Slots[i] == teamNum {
			m.Slots[i] = EmptySlot
			m.TeamCount--
		}
	}
	return first
}
