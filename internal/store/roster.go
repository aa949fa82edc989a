package store

import (
	"context"

	"github.com/roach88/scout/internal/model"
)

// AddTeamToMatch places the team with the given uid in the next free slot
// of the match roster, red alliance first.
//
// Membership is by team number: a team re-tracked under a new uid is still
// the same team for roster purposes. Returns false without error, and
// warns the sink, if the match or team does not exist, the team is already
// in the roster, or the roster is full.
func (s *Store) AddTeamToMatch(ctx context.Context, uid, matchNum int) (added bool, err error) {
	err = s.withTx(ctx, func(tx *Store) error {
		match, found, err := tx.GetMatch(ctx, matchNum)
		if err != nil {
			return err
		}
		if !found {
			tx.warn("Match %d doesn't exist. Cannot add team.", matchNum)
			return nil
		}

		team, found, err := tx.GetTeam(ctx, uid)
		if err != nil {
			return err
		}
		if !found {
			tx.warn("Team with uid %d doesn't exist. Cannot add to match %d.", uid, matchNum)
			return nil
		}
		if team.TeamNum == model.EmptySlot {
			tx.warn("Team with uid %d has no team number. Cannot add to match %d.", uid, matchNum)
			return nil
		}

		if match.Contains(team.TeamNum) {
			tx.warn("Team %d is already in match %d. Cannot add.", team.TeamNum, matchNum)
			return nil
		}
		if match.Full() {
			tx.warn("Match %d is full. Cannot add more teams.", matchNum)
			return nil
		}

		slot := match.AddCompetitor(team.TeamNum)
		updated, err := tx.UpdateMatch(ctx, match)
		if err != nil || !updated {
			return err
		}

		tx.info("Added team %d to match %d (%s, slot %d)",
			team.TeamNum, matchNum, match.AllianceOf(team.TeamNum), slot+1)
		added = true
		return nil
	})
	return added && err == nil, err
}

// RemoveTeamFromMatch clears the slot holding teamNum in the match roster.
// Returns false without error, and warns the sink, if the match does not
// exist or the team is not in its roster.
func (s *Store) RemoveTeamFromMatch(ctx context.Context, teamNum, matchNum int) (removed bool, err error) {
	err = s.withTx(ctx, func(tx *Store) error {
		match, found, err := tx.GetMatch(ctx, matchNum)
		if err != nil {
			return err
		}
		if !found {
			tx.warn("Match %d doesn't exist. Cannot remove team.", matchNum)
			return nil
		}
		if !match.Contains(teamNum) {
			tx.warn("Team %d is not in match %d. Cannot remove.", teamNum, matchNum)
			return nil
		}

		match.RemoveCompetitor(teamNum)
		updated, err := tx.UpdateMatch(ctx, match)
		if err != nil || !updated {
			return err
		}

		removed = true
		return nil
	})
	return removed && err == nil, err
}

// RemoveTeamCascade clears teamNum from every match roster that holds it
// and returns how many matches changed.
//
// This scans the whole Matches table, which is fine for one event's worth
// of matches but grows linearly with match count.
func (s *Store) RemoveTeamCascade(ctx context.Context, teamNum int) (int, error) {
	if teamNum == model.EmptySlot {
		return 0, nil
	}

	var changed int
	err := s.withTx(ctx, func(tx *Store) error {
		matches, err := tx.ListMatches(ctx)
		if err != nil {
			return err
		}

		for _, match := range matches {
			if !match.Contains(teamNum) {
				continue
			}
			removed, err := tx.RemoveTeamFromMatch(ctx, teamNum, match.MatchNum)
			if err != nil {
				return err
			}
			if removed {
				changed++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}
