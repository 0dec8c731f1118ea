package models

// SchemaVersion is written into every persisted record as "v".
const SchemaVersion = 1

type MysteryType string

const (
	MysteryTypeWord  MysteryType = "word"
	MysteryTypeImage MysteryType = "image"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// MysteryContent is one puzzle from the static pool. It is never mutated.
type MysteryContent struct {
	Type       MysteryType `json:"type"`
	Answer     string      `json:"answer"`
	Category   string      `json:"category"`
	ImageURL   string      `json:"image_url,omitempty"`
	Hints      []string    `json:"hints"`
	Difficulty Difficulty  `json:"difficulty,omitempty"`
	PointValue int         `json:"point_value,omitempty"`
	TimeLimit  int         `json:"time_limit,omitempty"` // seconds
}

// RevealLevel is one step of the community reveal table.
type RevealLevel struct {
	Threshold        int    `json:"threshold"`
	Description      string `json:"description"`
	RevealPercentage int    `json:"reveal_percentage"`
}

// MysterySession is the daily state of one game instance.
type MysterySession struct {
	Version            int            `json:"v"`
	Mystery            MysteryContent `json:"mystery"`
	TotalGuesses       int            `json:"total_guesses"`
	CorrectGuessers    []string       `json:"correct_guessers"`
	FirstSolver        *string        `json:"first_solver"`
	FirstSolverTime    *int64         `json:"first_solver_time"` // ms since LastReset
	LastReset          int64          `json:"last_reset"`        // unix ms
	DailyDate          string         `json:"daily_date"`
	CurrentRevealLevel int            `json:"current_reveal_level"`
}

// HasSolver reports whether username is already among the correct guessers.
func (s *MysterySession) HasSolver(username string) bool {
	for _, u := range s.CorrectGuessers {
		if u == username {
			return true
		}
	}
	return false
}

// DailyTheme is the cosmetic theme shown for a weekday.
type DailyTheme struct {
	Day           string `json:"day"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Color         string `json:"color"`
	Emoji         string `json:"emoji"`
	CategoryBonus string `json:"category_bonus,omitempty"`
}
