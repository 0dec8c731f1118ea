package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tahcohcat/daily-mystery/internal/game"
	"github.com/tahcohcat/daily-mystery/internal/logger"
	"github.com/tahcohcat/daily-mystery/internal/metrics"
	"github.com/tahcohcat/daily-mystery/internal/models"
	"github.com/tahcohcat/daily-mystery/internal/store"
)

const (
	msgSolvedFirst    = "🎉 You solved it first!"
	msgCorrect        = "✅ Correct!"
	msgIncorrect      = "❌ Not quite! Try again."
	msgAlreadySolved  = "You already solved this mystery!"
	msgGuessLimit     = "Daily guess limit reached"
	msgEmptyGuess     = "Guess cannot be empty"
	msgNotInitialized = "Mystery not initialized"
)

// UserService owns the per-(session, user) progress records.
type UserService struct {
	kv           store.KeyValueStore
	clock        game.Clock
	sessions     *SessionService
	achievements *AchievementService
	activity     *ActivityService
}

func NewUserService(kv store.KeyValueStore, clock game.Clock, sessions *SessionService, achievements *AchievementService, activity *ActivityService) *UserService {
	if clock == nil {
		clock = time.Now
	}
	return &UserService{
		kv:           kv,
		clock:        clock,
		sessions:     sessions,
		achievements: achievements,
		activity:     activity,
	}
}

func (s *UserService) today() string {
	return game.DateString(s.clock())
}

// GetUser loads a user record without creating it.
func (s *UserService) GetUser(ctx context.Context, sessionID, userID string) (*models.UserProgress, bool, error) {
	var user models.UserProgress
	ok, err := store.GetJSON(ctx, s.kv, userKey(sessionID, userID), &user)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	if !ok {
		return nil, false, nil
	}
	if user.Achievements == nil {
		user.Achievements = []string{}
	}
	return &user, true, nil
}

// GetOrCreate returns the user record, creating it with zero values on first
// interaction and registering the user id with the session.
func (s *UserService) GetOrCreate(ctx context.Context, sessionID, userID, username string) (*models.UserProgress, error) {
	user, ok, err := s.GetUser(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if ok {
		return user, nil
	}

	user = &models.UserProgress{
		Version:       models.SchemaVersion,
		UserID:        userID,
		Username:      username,
		LastGuessDate: s.today(),
		Achievements:  []string{},
	}
	if err := s.Save(ctx, sessionID, user); err != nil {
		return nil, err
	}
	if err := s.sessions.addUserID(ctx, sessionID, userID); err != nil {
		return nil, err
	}
	return user, nil
}

// Save writes the whole user record.
func (s *UserService) Save(ctx context.Context, sessionID string, user *models.UserProgress) error {
	if err := store.SetJSON(ctx, s.kv, userKey(sessionID, user.UserID), user, time.Time{}); err != nil {
		return fmt.Errorf("failed to save user %s: %w", user.UserID, err)
	}
	return nil
}

// applyRollover moves the daily fields of user to today and reports whether
// anything changed.
//
// The streak grows when the last played day was yesterday and solved, and
// drops to 0 after any gap. A user who played yesterday without solving keeps
// the streak unchanged.
func applyRollover(user *models.UserProgress, today string) bool {
	if user.LastGuessDate == today {
		return false
	}

	yesterday := game.PreviousDate(today)
	if user.LastGuessDate == yesterday && user.HasCorrectGuess {
		user.Streak++
	} else if user.LastGuessDate != yesterday {
		user.Streak = 0
	}

	user.GuessesUsed = 0
	user.LastGuess = nil
	user.HasCorrectGuess = false
	user.LastGuessDate = today
	return true
}

// RolloverIfNewDay resets the daily guess state when the user last played on
// another day. A user with no record is left alone.
func (s *UserService) RolloverIfNewDay(ctx context.Context, sessionID, userID string) (*models.UserProgress, error) {
	user, ok, err := s.GetUser(ctx, sessionID, userID)
	if err != nil || !ok {
		return user, err
	}
	if !applyRollover(user, s.today()) {
		return user, nil
	}
	if err := s.Save(ctx, sessionID, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GuessOutcome is the result of one guess attempt. Accepted is false when the
// guess was rejected, in which case Kind says why and nothing was written.
type GuessOutcome struct {
	Accepted        bool
	Correct         bool
	Message         string
	Kind            Kind
	NewAchievements []models.Achievement
}

func (s *UserService) rejectGuess(kind Kind, message string, correct bool) *GuessOutcome {
	metrics.RejectionsTotal.WithLabelValues("guess", string(kind)).Inc()
	return &GuessOutcome{Correct: correct, Message: message, Kind: kind}
}

// SubmitGuess admits, scores and records one guess.
func (s *UserService) SubmitGuess(ctx context.Context, sessionID, userID, username, rawGuess string) (*GuessOutcome, error) {
	if _, err := s.GetOrCreate(ctx, sessionID, userID, username); err != nil {
		return nil, err
	}
	user, err := s.RolloverIfNewDay(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	if user.HasCorrectGuess {
		return s.rejectGuess(KindConflict, msgAlreadySolved, true), nil
	}
	if user.GuessesUsed >= game.MaxGuessesPerDay {
		return s.rejectGuess(KindRateLimited, msgGuessLimit, false), nil
	}
	guess := strings.TrimSpace(rawGuess)
	if guess == "" {
		return s.rejectGuess(KindValidation, msgEmptyGuess, false), nil
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, ErrNotInitialized) {
		return s.rejectGuess(KindNotInitialized, msgNotInitialized, false), nil
	}
	if err != nil {
		return nil, err
	}

	correct := strings.ToUpper(guess) == strings.ToUpper(strings.TrimSpace(session.Mystery.Answer))

	rec, err := s.sessions.RecordGuess(ctx, sessionID, correct, username)
	if err != nil {
		return nil, err
	}

	user.GuessesUsed++
	user.LastGuess = &rawGuess

	if !correct {
		if err := s.Save(ctx, sessionID, user); err != nil {
			return nil, err
		}
		metrics.GuessesTotal.WithLabelValues("incorrect").Inc()
		if rec.Session.TotalGuesses%game.GuessActivityEvery == 0 {
			s.activity.record(ctx, sessionID, models.ActivityGuess, username, "made a guess", "🤔")
		}
		return &GuessOutcome{Accepted: true, Message: msgIncorrect}, nil
	}

	user.HasCorrectGuess = true
	user.CorrectGuesses++
	if rec.SolveTimeMs > 0 && (user.FastestSolve == 0 || rec.SolveTimeMs < user.FastestSolve) {
		user.FastestSolve = rec.SolveTimeMs
	}
	if rec.IsFirstSolver {
		user.FirstSolves++
	}

	unlocked := s.unlock(user, EventContext{
		JustSolved:    true,
		IsFirstSolver: rec.IsFirstSolver,
		SolveTimeMs:   rec.SolveTimeMs,
	})
	if err := s.Save(ctx, sessionID, user); err != nil {
		return nil, err
	}
	metrics.GuessesTotal.WithLabelValues("correct").Inc()

	s.announceAchievements(ctx, sessionID, username, unlocked)
	if rec.IsFirstSolver {
		s.activity.record(ctx, sessionID, models.ActivitySolve, username, "solved it FIRST! 👑", "👑")
	} else {
		s.activity.record(ctx, sessionID, models.ActivitySolve, username, "solved the mystery!", "✅")
	}

	logger.New().WithField("session", sessionID).WithField("user", username).
		WithField("first", rec.IsFirstSolver).Info("mystery solved")

	message := msgCorrect
	if rec.IsFirstSolver {
		message = msgSolvedFirst
	}
	return &GuessOutcome{Accepted: true, Correct: true, Message: message, NewAchievements: unlocked}, nil
}

// unlock evaluates the catalog and appends new ids to user. The caller saves.
func (s *UserService) unlock(user *models.UserProgress, ec EventContext) []models.Achievement {
	unlocked := s.achievements.Evaluate(user, ec)
	for _, a := range unlocked {
		user.Achievements = append(user.Achievements, a.ID)
		metrics.AchievementsUnlockedTotal.WithLabelValues(a.ID).Inc()
	}
	return unlocked
}

func (s *UserService) announceAchievements(ctx context.Context, sessionID, username string, unlocked []models.Achievement) {
	for _, a := range unlocked {
		s.activity.record(ctx, sessionID, models.ActivityAchievement, username, fmt.Sprintf("unlocked %q", a.Name), a.Icon)
	}
}
