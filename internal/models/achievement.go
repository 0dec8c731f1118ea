package models

type RequirementType string

const (
	RequirementTotalSolves   RequirementType = "total_solves"
	RequirementStreak        RequirementType = "streak"
	RequirementFirstSolve    RequirementType = "first_solve"
	RequirementSpeedSolve    RequirementType = "speed_solve"
	RequirementSubmitMystery RequirementType = "submit_mystery"
	RequirementVote          RequirementType = "vote"
)

// Requirement is the unlock condition of an achievement. Threshold is used by
// the counter variants, TimeLimit (ms) by speed_solve.
type Requirement struct {
	Type      RequirementType `json:"type"`
	Threshold int             `json:"threshold,omitempty"`
	TimeLimit int64           `json:"time_limit,omitempty"`
}

type Achievement struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Category    string      `json:"category"` // solving, participation, community, special
	Requirement Requirement `json:"requirement"`
}

type ActivityType string

const (
	ActivityGuess       ActivityType = "guess"
	ActivitySolve       ActivityType = "solve"
	ActivityAchievement ActivityType = "achievement"
	ActivitySubmission  ActivityType = "submission"
	ActivityVote        ActivityType = "vote"
)

type ActivityEvent struct {
	ID        string       `json:"id"`
	Type      ActivityType `json:"type"`
	Username  string       `json:"username"`
	Message   string       `json:"message"`
	Icon      string       `json:"icon"`
	Timestamp int64        `json:"timestamp"` // unix ms
}

// UserAchievementView is one catalog entry with the user's unlock state.
type UserAchievementView struct {
	Achievement
	Completed bool `json:"completed"`
}
