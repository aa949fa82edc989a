package store

import (
	"context"

	"github.com/roach88/scout/internal/model"
)

// ImportTeams stores each team under a freshly allocated uid, ignoring any
// uid already set on it, and returns the stored records.
//
// All teams are written in one transaction: if any allocation or insert
// fails, none are kept.
func (s *Store) ImportTeams(ctx context.Context, teams []model.Team) ([]model.Team, error) {
	stored := make([]model.Team, 0, len(teams))

	err := s.withTx(ctx, func(tx *Store) error {
		for _, team := range teams {
			uid, err := tx.AllocateTeamUID(ctx)
			if err != nil {
				return err
			}
			team.UID = uid

			if err := tx.PutTeam(ctx, team); err != nil {
				return err
			}
			stored = append(stored, team)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// ImportMatches stores each match, replacing any with the same number, in
// one transaction.
func (s *Store) ImportMatches(ctx context.Context, matches []model.Match) error {
	return s.withTx(ctx, func(tx *Store) error {
		for _, match := range matches {
			if err := tx.PutMatch(ctx, match); err != nil {
				return err
			}
		}
		return nil
	})
}
