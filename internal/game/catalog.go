package game

import "github.com/tahcohcat/daily-mystery/internal/models"

const (
	MaxGuessesPerDay         = 3
	MaxSubmissionsPerWeek    = 3
	MaxVotesPerDay           = 5
	ActivityLogCapacity      = 50
	LeaderboardSize          = 10
	GuessActivityEvery       = 10
	DefaultTopSubmissions    = 5
	SubmissionListSize       = 10
	DefaultActivityLimit     = 10
	SubmissionWeekExpiryDays = 7
)

var achievements = []models.Achievement{
	{ID: "first_solve", Name: "Mystery Apprentice", Description: "Solve your first mystery", Icon: "🎓", Category: "solving",
		Requirement: models.Requirement{Type: models.RequirementTotalSolves, Threshold: 1}},
	{ID: "veteran_solver", Name: "Mystery Detective", Description: "Solve 10 mysteries", Icon: "🔍", Category: "solving",
		Requirement: models.Requirement{Type: models.RequirementTotalSolves, Threshold: 10}},
	{ID: "master_solver", Name: "Mystery Master", Description: "Solve 50 mysteries", Icon: "🏆", Category: "solving",
		Requirement: models.Requirement{Type: models.RequirementTotalSolves, Threshold: 50}},
	{ID: "streak_3", Name: "Dedicated Detective", Description: "Maintain a 3-day streak", Icon: "🔥", Category: "participation",
		Requirement: models.Requirement{Type: models.RequirementStreak, Threshold: 3}},
	{ID: "streak_7", Name: "Weekly Wonder", Description: "Maintain a 7-day streak", Icon: "⚡", Category: "participation",
		Requirement: models.Requirement{Type: models.RequirementStreak, Threshold: 7}},
	{ID: "streak_30", Name: "Monthly Legend", Description: "Maintain a 30-day streak", Icon: "👑", Category: "participation",
		Requirement: models.Requirement{Type: models.RequirementStreak, Threshold: 30}},
	{ID: "first_blood", Name: "Quick Draw", Description: "Be the first to solve a mystery", Icon: "⭐", Category: "special",
		Requirement: models.Requirement{Type: models.RequirementFirstSolve}},
	{ID: "speed_demon", Name: "Speed Solver", Description: "Solve within 60 seconds", Icon: "⚡", Category: "solving",
		Requirement: models.Requirement{Type: models.RequirementSpeedSolve, TimeLimit: 60000}},
	{ID: "mystery_maker", Name: "Mystery Creator", Description: "Submit a mystery", Icon: "✍️", Category: "community",
		Requirement: models.Requirement{Type: models.RequirementSubmitMystery, Threshold: 1}},
	{ID: "democratic_voter", Name: "Community Voice", Description: "Vote on 10 mysteries", Icon: "🗳️", Category: "community",
		Requirement: models.Requirement{Type: models.RequirementVote, Threshold: 10}},
}

// Achievements returns a copy of the achievement catalog.
func Achievements() []models.Achievement {
	return append([]models.Achievement(nil), achievements...)
}

var dailyThemes = []models.DailyTheme{
	{Day: "Monday", Name: "Meme Monday", Description: "Internet memes and Reddit culture", Color: "#f97316", Emoji: "😂", CategoryBonus: "Reddit Meme"},
	{Day: "Tuesday", Name: "Tech Tuesday", Description: "Programming, gaming, and technology", Color: "#3b82f6", Emoji: "💻", CategoryBonus: "Programming"},
	{Day: "Wednesday", Name: "Wisdom Wednesday", Description: "Famous quotes and philosophy", Color: "#8b5cf6", Emoji: "📚", CategoryBonus: "Famous Quote"},
	{Day: "Thursday", Name: "Throwback Thursday", Description: "Classic internet culture", Color: "#ec4899", Emoji: "⏰", CategoryBonus: "Classic Reddit"},
	{Day: "Friday", Name: "Fun Friday", Description: "Movies, TV shows, and pop culture", Color: "#f59e0b", Emoji: "🎬", CategoryBonus: "Movie Quote"},
	{Day: "Saturday", Name: "Community Saturday", Description: "User-submitted mysteries shine", Color: "#10b981", Emoji: "🎨", CategoryBonus: "Community"},
	{Day: "Sunday", Name: "Super Sunday", Description: "Challenging mysteries for champions", Color: "#ef4444", Emoji: "🔥", CategoryBonus: "Challenge"},
}

// ThemeFor returns the daily theme for the weekday name, defaulting to the
// first theme.
func ThemeFor(weekday string) models.DailyTheme {
	for _, t := range dailyThemes {
		if t.Day == weekday {
			return t
		}
	}
	return dailyThemes[0]
}
