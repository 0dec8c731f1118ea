package services

import (
	"context"
	"errors"

	"github.com/tahcohcat/daily-mystery/internal/game"
	"github.com/tahcohcat/daily-mystery/internal/models"
	"github.com/tahcohcat/daily-mystery/internal/store"
)

// RealmService is the entry point for every player-facing operation.
type RealmService struct {
	sessions     *SessionService
	users        *UserService
	achievements *AchievementService
	submissions  *SubmissionService
	activity     *ActivityService
	clock        game.Clock
}

// RealmOptions tunes NewRealmService. The zero value is the production setup.
type RealmOptions struct {
	Clock              game.Clock
	Publisher          Publisher
	AtomicGuessCounter bool
}

func NewRealmService(kv store.KeyValueStore, opts RealmOptions) *RealmService {
	sessions := NewSessionService(kv, opts.Clock, opts.AtomicGuessCounter)
	activity := NewActivityService(kv, opts.Clock, opts.Publisher)
	achievements := NewAchievementService(nil)
	users := NewUserService(kv, opts.Clock, sessions, achievements, activity)
	return &RealmService{
		sessions:     sessions,
		users:        users,
		achievements: achievements,
		submissions:  NewSubmissionService(kv, opts.Clock, users),
		activity:     activity,
		clock:        sessions.clock,
	}
}

func (r *RealmService) Sessions() *SessionService         { return r.sessions }
func (r *RealmService) Users() *UserService               { return r.users }
func (r *RealmService) Submissions() *SubmissionService   { return r.submissions }
func (r *RealmService) Activity() *ActivityService        { return r.activity }
func (r *RealmService) Achievements() *AchievementService { return r.achievements }

// MysteryView is the mystery as a player may see it. The answer is only set
// once the player solved it.
type MysteryView struct {
	Type       models.MysteryType `json:"type"`
	Category   string             `json:"category"`
	ImageURL   string             `json:"image_url,omitempty"`
	Difficulty models.Difficulty  `json:"difficulty,omitempty"`
	PointValue int                `json:"point_value,omitempty"`
	TimeLimit  int                `json:"time_limit,omitempty"`
	Hints      []string           `json:"hints"`
	HintCount  int                `json:"hint_count"`
	Answer     string             `json:"answer,omitempty"`
}

// SessionView is the session snapshot sent to players.
type SessionView struct {
	Mystery            MysteryView        `json:"mystery"`
	TotalGuesses       int                `json:"total_guesses"`
	CorrectGuessers    []string           `json:"correct_guessers"`
	FirstSolver        *string            `json:"first_solver"`
	FirstSolverTime    *int64             `json:"first_solver_time"`
	DailyDate          string             `json:"daily_date"`
	CurrentRevealLevel int                `json:"current_reveal_level"`
	RevealLevel        models.RevealLevel `json:"reveal_level"`
}

// UserView is the player's own record plus what is left for today.
type UserView struct {
	*models.UserProgress
	GuessesRemaining int `json:"guesses_remaining"`
	VotesRemaining   int `json:"votes_remaining"`
}

func (r *RealmService) sessionView(s *models.MysterySession, solved bool) SessionView {
	m := s.Mystery
	view := MysteryView{
		Type:       m.Type,
		Category:   m.Category,
		ImageURL:   m.ImageURL,
		Difficulty: m.Difficulty,
		PointValue: m.PointValue,
		TimeLimit:  m.TimeLimit,
		Hints:      game.UnlockedHints(m.Hints, s.CurrentRevealLevel),
		HintCount:  len(m.Hints),
	}
	if solved {
		view.Answer = m.Answer
		view.Hints = append([]string(nil), m.Hints...)
	}
	return SessionView{
		Mystery:            view,
		TotalGuesses:       s.TotalGuesses,
		CorrectGuessers:    s.CorrectGuessers,
		FirstSolver:        s.FirstSolver,
		FirstSolverTime:    s.FirstSolverTime,
		DailyDate:          s.DailyDate,
		CurrentRevealLevel: s.CurrentRevealLevel,
		RevealLevel:        game.Level(s.CurrentRevealLevel),
	}
}

func (r *RealmService) userView(u *models.UserProgress) UserView {
	left := game.MaxGuessesPerDay - u.GuessesUsed
	if left < 0 || u.HasCorrectGuess {
		left = 0
	}
	votes := game.MaxVotesPerDay - effectiveVotesUsed(u, game.DateString(r.clock()))
	if votes < 0 {
		votes = 0
	}
	return UserView{UserProgress: u, GuessesRemaining: left, VotesRemaining: votes}
}

// revealFor returns the revealed text and the letter widget mask. A player who
// solved sees the full answer in both.
func revealFor(s *models.MysterySession, solved bool) (string, string) {
	answer := s.Mystery.Answer
	if solved {
		return answer, answer
	}
	content := game.RevealedContent(s.Mystery, s.TotalGuesses)
	if s.Mystery.Type == models.MysteryTypeImage {
		return content, ""
	}
	pct := game.Level(s.CurrentRevealLevel).RevealPercentage
	return content, game.MaskWith(answer, game.WidgetReveal(answer, pct))
}

// InitResponse is everything a client needs to render the game.
type InitResponse struct {
	Username             string                       `json:"username"`
	Session              SessionView                  `json:"mystery_state"`
	User                 UserView                     `json:"user_state"`
	Leaderboard          []models.LeaderboardEntry    `json:"leaderboard"`
	RevealedContent      string                       `json:"revealed_content"`
	LetterReveal         string                       `json:"letter_reveal,omitempty"`
	Achievements         []models.UserAchievementView `json:"achievements"`
	UnlockedAchievements []string                     `json:"unlocked_achievements"`
	Theme                models.DailyTheme            `json:"theme"`
	RecentActivity       []models.ActivityEvent       `json:"recent_activity"`
	TopSubmissions       []models.MysterySubmission   `json:"top_submissions"`
}

// Init creates the session and the user on first contact, rolls both over to
// today and returns the full snapshot.
func (r *RealmService) Init(ctx context.Context, sessionID, userID, username string) (*InitResponse, error) {
	if err := r.sessions.InitializeIfAbsent(ctx, sessionID); err != nil {
		return nil, err
	}
	if _, err := r.users.GetOrCreate(ctx, sessionID, userID, username); err != nil {
		return nil, err
	}
	user, err := r.users.RolloverIfNewDay(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	session, err := r.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	board, err := r.users.Leaderboard(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	recent, err := r.activity.GetRecentActivities(ctx, sessionID, game.DefaultActivityLimit)
	if err != nil {
		return nil, err
	}
	top, err := r.submissions.Top(ctx, sessionID, game.DefaultTopSubmissions)
	if err != nil {
		return nil, err
	}

	revealed, letters := revealFor(session, user.HasCorrectGuess)
	return &InitResponse{
		Username:             username,
		Session:              r.sessionView(session, user.HasCorrectGuess),
		User:                 r.userView(user),
		Leaderboard:          board,
		RevealedContent:      revealed,
		LetterReveal:         letters,
		Achievements:         r.achievements.GetUserAchievements(user),
		UnlockedAchievements: user.Achievements,
		Theme:                game.ThemeFor(game.Weekday(r.clock())),
		RecentActivity:       recent,
		TopSubmissions:       top,
	}, nil
}

// GuessResponse is the outcome of a guess plus refreshed snapshots.
type GuessResponse struct {
	Success         bool                      `json:"success"`
	Correct         bool                      `json:"correct"`
	Message         string                    `json:"message"`
	Kind            Kind                      `json:"kind,omitempty"`
	Session         SessionView               `json:"mystery_state"`
	User            UserView                  `json:"user_state"`
	Leaderboard     []models.LeaderboardEntry `json:"leaderboard"`
	RevealedContent string                    `json:"revealed_content"`
	LetterReveal    string                    `json:"letter_reveal,omitempty"`
	NewAchievements []models.Achievement      `json:"new_achievements,omitempty"`
}

// SubmitGuess scores one guess. A session that was never initialized is a
// rejection, not an error.
func (r *RealmService) SubmitGuess(ctx context.Context, sessionID, userID, username, guess string) (*GuessResponse, error) {
	if _, err := r.sessions.Get(ctx, sessionID); errors.Is(err, ErrNotInitialized) {
		return &GuessResponse{Message: msgNotInitialized, Kind: KindNotInitialized}, nil
	} else if err != nil {
		return nil, err
	}

	outcome, err := r.users.SubmitGuess(ctx, sessionID, userID, username, guess)
	if err != nil {
		return nil, err
	}

	user, _, err := r.users.GetUser(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	session, err := r.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	board, err := r.users.Leaderboard(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	revealed, letters := revealFor(session, user.HasCorrectGuess)
	return &GuessResponse{
		Success:         outcome.Accepted,
		Correct:         outcome.Correct,
		Message:         outcome.Message,
		Kind:            outcome.Kind,
		Session:         r.sessionView(session, user.HasCorrectGuess),
		User:            r.userView(user),
		Leaderboard:     board,
		RevealedContent: revealed,
		LetterReveal:    letters,
		NewAchievements: outcome.NewAchievements,
	}, nil
}

// SubmitMysteryResponse reports a submission attempt.
type SubmitMysteryResponse struct {
	Success         bool                      `json:"success"`
	Message         string                    `json:"message"`
	Kind            Kind                      `json:"kind,omitempty"`
	Submission      *models.MysterySubmission `json:"submission,omitempty"`
	NewAchievements []models.Achievement      `json:"new_achievements,omitempty"`
}

func (r *RealmService) SubmitMystery(ctx context.Context, sessionID, userID, username string, req models.SubmitMysteryRequest) (*SubmitMysteryResponse, error) {
	res, rej, err := r.submissions.Submit(ctx, sessionID, userID, username, req)
	if err != nil {
		return nil, err
	}
	if rej != nil {
		return &SubmitMysteryResponse{Message: rej.Message, Kind: rej.Kind}, nil
	}
	return &SubmitMysteryResponse{
		Success:         true,
		Message:         msgSubmitted,
		Submission:      &res.Submission,
		NewAchievements: res.NewAchievements,
	}, nil
}

// VoteResponse reports a vote attempt.
type VoteResponse struct {
	Success         bool                 `json:"success"`
	Message         string               `json:"message"`
	Kind            Kind                 `json:"kind,omitempty"`
	NewVoteCount    int                  `json:"new_vote_count,omitempty"`
	NewAchievements []models.Achievement `json:"new_achievements,omitempty"`
}

func (r *RealmService) VoteMystery(ctx context.Context, sessionID, userID, username, submissionID string) (*VoteResponse, error) {
	res, rej, err := r.submissions.Vote(ctx, sessionID, userID, username, submissionID)
	if err != nil {
		return nil, err
	}
	if rej != nil {
		return &VoteResponse{Message: rej.Message, Kind: rej.Kind}, nil
	}
	return &VoteResponse{
		Success:         true,
		Message:         msgVoteRecorded,
		NewVoteCount:    res.Votes,
		NewAchievements: res.NewAchievements,
	}, nil
}

// SubmissionsResponse lists the top pending submissions.
type SubmissionsResponse struct {
	Submissions        []models.MysterySubmission `json:"submissions"`
	UserVotesRemaining int                        `json:"user_votes_remaining"`
}

func (r *RealmService) ListSubmissions(ctx context.Context, sessionID, userID string) (*SubmissionsResponse, error) {
	top, err := r.submissions.Top(ctx, sessionID, game.SubmissionListSize)
	if err != nil {
		return nil, err
	}
	left, err := r.submissions.VotesRemaining(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	return &SubmissionsResponse{Submissions: top, UserVotesRemaining: left}, nil
}

func (r *RealmService) ListActivity(ctx context.Context, sessionID string, limit int) ([]models.ActivityEvent, error) {
	return r.activity.GetRecentActivities(ctx, sessionID, limit)
}
