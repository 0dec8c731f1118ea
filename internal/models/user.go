package models

// UserProgress is the per-(session, user) record.
type UserProgress struct {
	Version            int      `json:"v"`
	UserID             string   `json:"user_id"`
	Username           string   `json:"username"`
	GuessesUsed        int      `json:"guesses_used"`
	CorrectGuesses     int      `json:"correct_guesses"`
	LastGuessDate      string   `json:"last_guess_date"`
	Streak             int      `json:"streak"`
	LastGuess          *string  `json:"last_guess"`
	HasCorrectGuess    bool     `json:"has_correct_guess"`
	Achievements       []string `json:"achievements"`
	MysteriesSubmitted int      `json:"mysteries_submitted"`
	VotesUsed          int      `json:"votes_used"`
	LastVoteDate       string   `json:"last_vote_date"`
	TotalVotesEver     int      `json:"total_votes_ever"`
	FastestSolve       int64    `json:"fastest_solve"` // ms, 0 = no solves
	FirstSolves        int      `json:"first_solves"`
}

// HasAchievement reports whether id is already unlocked.
func (u *UserProgress) HasAchievement(id string) bool {
	for _, a := range u.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// LeaderboardEntry is one ranked row of a session leaderboard.
type LeaderboardEntry struct {
	Username         string `json:"username"`
	CorrectGuesses   int    `json:"correct_guesses"`
	Streak           int    `json:"streak"`
	Rank             int    `json:"rank"`
	FastestSolveTime int64  `json:"fastest_solve_time,omitempty"`
}
