package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/tahcohcat/daily-mystery/internal/game"
	"github.com/tahcohcat/daily-mystery/internal/logger"
	"github.com/tahcohcat/daily-mystery/internal/metrics"
	"github.com/tahcohcat/daily-mystery/internal/models"
	"github.com/tahcohcat/daily-mystery/internal/store"
)

// SessionService owns the daily mystery state of each game instance.
//
// Every mutation reads the whole record, changes it in memory and writes it
// back. Two guesses landing at the same time both read the same totalGuesses
// and the later write wins, so a count can be lost. With atomicCounter set the
// cumulative count comes from an Incr on a per-day counter key instead and is
// never lost; the rest of the record stays last-write-wins.
type SessionService struct {
	kv            store.KeyValueStore
	clock         game.Clock
	atomicCounter bool
}

func NewSessionService(kv store.KeyValueStore, clock game.Clock, atomicCounter bool) *SessionService {
	if clock == nil {
		clock = time.Now
	}
	return &SessionService{kv: kv, clock: clock, atomicCounter: atomicCounter}
}

func (s *SessionService) today() string {
	return game.DateString(s.clock())
}

func (s *SessionService) freshState(today string) *models.MysterySession {
	return &models.MysterySession{
		Version:         models.SchemaVersion,
		Mystery:         game.SelectDailyMystery(today),
		CorrectGuessers: []string{},
		LastReset:       s.clock().UnixMilli(),
		DailyDate:       today,
	}
}

// InitializeIfAbsent creates the session on first use. The initialized flag
// is checked then set without compare-and-swap: two concurrent first requests
// may both write a fresh state, and a guess recorded between them is lost.
func (s *SessionService) InitializeIfAbsent(ctx context.Context, sessionID string) error {
	_, exists, err := s.kv.Get(ctx, sessionInitializedKey(sessionID))
	if err != nil {
		return fmt.Errorf("failed to check session %s: %w", sessionID, err)
	}
	if exists {
		return nil
	}

	state := s.freshState(s.today())
	if err := store.SetJSON(ctx, s.kv, sessionStateKey(sessionID), state, time.Time{}); err != nil {
		return fmt.Errorf("failed to create session %s: %w", sessionID, err)
	}
	if err := s.kv.Set(ctx, sessionInitializedKey(sessionID), "true", time.Time{}); err != nil {
		return fmt.Errorf("failed to mark session %s initialized: %w", sessionID, err)
	}
	// users who submitted or voted before the first init are already listed
	_, listed, err := s.kv.Get(ctx, sessionUserIDsKey(sessionID))
	if err != nil {
		return fmt.Errorf("failed to check user list for %s: %w", sessionID, err)
	}
	if !listed {
		if err := store.SetJSON(ctx, s.kv, sessionUserIDsKey(sessionID), []string{}, time.Time{}); err != nil {
			return fmt.Errorf("failed to create user list for %s: %w", sessionID, err)
		}
	}

	logger.New().WithField("session", sessionID).WithField("date", state.DailyDate).
		Info("initialized mystery session")
	return nil
}

// Get loads the session, rolling it over to today's mystery first when the
// stored day is stale.
func (s *SessionService) Get(ctx context.Context, sessionID string) (*models.MysterySession, error) {
	var state models.MysterySession
	ok, err := store.GetJSON(ctx, s.kv, sessionStateKey(sessionID), &state)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	if !ok {
		return nil, ErrNotInitialized
	}

	today := s.today()
	if state.DailyDate != today {
		fresh := s.freshState(today)
		if err := store.SetJSON(ctx, s.kv, sessionStateKey(sessionID), fresh, time.Time{}); err != nil {
			return nil, fmt.Errorf("failed to roll over session %s: %w", sessionID, err)
		}
		metrics.RolloversTotal.Inc()
		logger.New().WithField("session", sessionID).WithField("from", state.DailyDate).
			WithField("to", today).Info("rolled over to a new daily mystery")
		return fresh, nil
	}

	if state.CorrectGuessers == nil {
		state.CorrectGuessers = []string{}
	}
	if s.atomicCounter {
		if err := s.applyCounter(ctx, sessionID, &state); err != nil {
			return nil, err
		}
	}
	return &state, nil
}

// applyCounter overrides the stored total with the atomic counter, which a
// stale writer cannot move backwards.
func (s *SessionService) applyCounter(ctx context.Context, sessionID string, state *models.MysterySession) error {
	raw, ok, err := s.kv.Get(ctx, guessCounterKey(sessionID, state.DailyDate))
	if err != nil {
		return fmt.Errorf("failed to read guess counter for %s: %w", sessionID, err)
	}
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("failed to parse guess counter for %s: %w", sessionID, err)
	}
	if n > state.TotalGuesses {
		state.TotalGuesses = n
		state.CurrentRevealLevel = game.LevelFor(n)
	}
	return nil
}

// GuessRecord is the session after a guess was counted.
type GuessRecord struct {
	Session       *models.MysterySession
	IsFirstSolver bool
	SolveTimeMs   int64
}

// RecordGuess counts one guess, registers a solver when isCorrect, and moves
// the reveal level up to match the new total.
func (s *SessionService) RecordGuess(ctx context.Context, sessionID string, isCorrect bool, username string) (*GuessRecord, error) {
	state, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if s.atomicCounter {
		n, err := s.kv.Incr(ctx, guessCounterKey(sessionID, state.DailyDate))
		if err != nil {
			return nil, fmt.Errorf("failed to count guess for %s: %w", sessionID, err)
		}
		state.TotalGuesses = int(n)
	} else {
		state.TotalGuesses++
	}

	rec := &GuessRecord{Session: state}
	if isCorrect {
		rec.SolveTimeMs = s.clock().UnixMilli() - state.LastReset
		if state.FirstSolver == nil {
			solver := username
			solveTime := rec.SolveTimeMs
			state.FirstSolver = &solver
			state.FirstSolverTime = &solveTime
			rec.IsFirstSolver = true
		}
		if !state.HasSolver(username) {
			state.CorrectGuessers = append(state.CorrectGuessers, username)
		}
	}

	state.CurrentRevealLevel = game.LevelFor(state.TotalGuesses)

	if err := store.SetJSON(ctx, s.kv, sessionStateKey(sessionID), state, time.Time{}); err != nil {
		return nil, fmt.Errorf("failed to save session %s: %w", sessionID, err)
	}
	return rec, nil
}

// UserIDs lists every user that ever interacted with the session, in the
// order they first appeared.
func (s *SessionService) UserIDs(ctx context.Context, sessionID string) ([]string, error) {
	var ids []string
	if _, err := store.GetJSON(ctx, s.kv, sessionUserIDsKey(sessionID), &ids); err != nil {
		return nil, fmt.Errorf("failed to load users of %s: %w", sessionID, err)
	}
	return ids, nil
}

func (s *SessionService) addUserID(ctx context.Context, sessionID, userID string) error {
	ids, err := s.UserIDs(ctx, sessionID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == userID {
			return nil
		}
	}
	ids = append(ids, userID)
	if err := store.SetJSON(ctx, s.kv, sessionUserIDsKey(sessionID), ids, time.Time{}); err != nil {
		return fmt.Errorf("failed to register user %s in %s: %w", userID, sessionID, err)
	}
	return nil
}
