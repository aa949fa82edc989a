package store

import (
	"context"

	"github.com/roach88/scout/internal/audit"
)

// Team uids are drawn from a fixed four-digit space.
const (
	MinTeamUID = 1000
	MaxTeamUID = 9999

	// DefaultUIDAttempts bounds rejection sampling in AllocateTeamUID.
	// With 9000 possible values this only runs out when the Teams table is
	// close to full.
	DefaultUIDAttempts = 512
)

// AllocateTeamUID returns a uid in [MinTeamUID, MaxTeamUID] that no stored
// team uses.
//
// Candidates are drawn uniformly and redrawn while they collide with an
// existing uid. After the configured number of attempts (WithUIDAttempts)
// it gives up with a *UIDExhaustedError.
//
// The uid is only reserved once a team is stored with it; two calls with
// no insert in between may return the same value.
func (s *Store) AllocateTeamUID(ctx context.Context) (int, error) {
	span := MaxTeamUID - MinTeamUID + 1

	for attempt := 0; attempt < s.uidAttempts; attempt++ {
		candidate := MinTeamUID + s.intN(span)

		taken, err := s.TeamExists(ctx, candidate)
		if err != nil {
			return 0, err
		}
		if !taken {
			return candidate, nil
		}
	}

	err := &UIDExhaustedError{Attempts: s.uidAttempts, Min: MinTeamUID, Max: MaxTeamUID}
	s.log.Notify(err.Error(), audit.SeverityError)
	return 0, err
}
