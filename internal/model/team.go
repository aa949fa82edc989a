package model

// Team is one team's performance record for a single tracking session.
// Several records may share a TeamNum; UID is what tells them apart.
type Team struct {
	UID      int `json:"uid"`
	TeamNum  int `json:"team_num"`
	MatchNum int `json:"match_num"` // 0 when not captured during a match

	HangAttempt bool `json:"hang_attempt"`
	HangSuccess bool `json:"hang_success"` // only meaningful when HangAttempt is set

	RobotCycleSpeed  int `json:"robot_cycle_speed"`
	CoralPoints      int `json:"coral_points"`
	Defense          int `json:"defense"`
	AutonomousPoints int `json:"autonomous_points"`
	DriverSkill      int `json:"driver_skill"`
	Penalties        int `json:"penalties"`
	Overall          int `json:"overall"`
	RankingPoints    int `json:"ranking_points"`
}
