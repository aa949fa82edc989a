// Package model provides the scouting record types shared by every other
// internal package.
//
// This package contains type definitions and roster helpers only. All other
// internal packages import model; model imports nothing internal.
//
// Key constraints:
//   - Team.UID is a surrogate key, Team.TeamNum is the competition number
//   - Match roster slots hold team numbers, never uids
//   - Match.TeamCount always equals the number of non-empty slots
package model
