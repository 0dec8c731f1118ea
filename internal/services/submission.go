package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tahcohcat/daily-mystery/internal/game"
	"github.com/tahcohcat/daily-mystery/internal/metrics"
	"github.com/tahcohcat/daily-mystery/internal/models"
	"github.com/tahcohcat/daily-mystery/internal/store"
	"github.com/tahcohcat/daily-mystery/internal/validation"
)

const (
	msgSubmitted          = "Mystery submitted successfully! Community will vote on it."
	msgWeeklyLimit        = "You can only submit 3 mysteries per week. Try again next week!"
	msgVoteLimit          = "You've used all 5 votes today. Come back tomorrow!"
	msgSubmissionNotFound = "Submission not found"
	msgAlreadyVoted       = "You already voted for this mystery!"
	msgVoteRecorded       = "Vote recorded! Thanks for participating."
)

// weeklyEntry is one submission counted against a user's weekly allowance.
type weeklyEntry struct {
	SubmissionID string `json:"submission_id"`
	UserID       string `json:"user_id"`
	SubmittedAt  int64  `json:"submitted_at"`
}

// SubmissionService runs the community pipeline: propose, vote, surface the
// top picks.
type SubmissionService struct {
	kv    store.KeyValueStore
	clock game.Clock
	users *UserService
}

func NewSubmissionService(kv store.KeyValueStore, clock game.Clock, users *UserService) *SubmissionService {
	if clock == nil {
		clock = time.Now
	}
	return &SubmissionService{kv: kv, clock: clock, users: users}
}

// SubmitResult is an accepted submission.
type SubmitResult struct {
	Submission      models.MysterySubmission
	NewAchievements []models.Achievement
}

// VoteResult is an accepted vote.
type VoteResult struct {
	Votes           int
	NewAchievements []models.Achievement
}

func normalizeSubmission(req models.SubmitMysteryRequest) models.SubmitMysteryRequest {
	hints := make([]string, 0, len(req.Hints))
	for _, h := range req.Hints {
		if h = strings.TrimSpace(h); h != "" {
			hints = append(hints, h)
		}
	}
	return models.SubmitMysteryRequest{
		Answer:   strings.ToUpper(strings.TrimSpace(req.Answer)),
		Category: strings.TrimSpace(req.Category),
		Hints:    hints,
	}
}

func (s *SubmissionService) rejectSubmit(kind Kind, message string) *Rejection {
	metrics.RejectionsTotal.WithLabelValues("submit", string(kind)).Inc()
	return reject(kind, message)
}

func (s *SubmissionService) rejectVote(kind Kind, message string) *Rejection {
	metrics.RejectionsTotal.WithLabelValues("vote", string(kind)).Inc()
	return reject(kind, message)
}

// Submit records a new pending mystery for the community to vote on.
func (s *SubmissionService) Submit(ctx context.Context, sessionID, userID, username string, req models.SubmitMysteryRequest) (*SubmitResult, *Rejection, error) {
	req = normalizeSubmission(req)
	if err := validation.Struct(req); err != nil {
		return nil, s.rejectSubmit(KindValidation, validation.Message(err)), nil
	}

	now := s.clock()
	weekKey := weeklySubmissionsKey(sessionID, game.WeekID(now))

	var week []weeklyEntry
	if _, err := store.GetJSON(ctx, s.kv, weekKey, &week); err != nil {
		return nil, nil, fmt.Errorf("failed to load weekly submissions: %w", err)
	}
	mine := 0
	for _, e := range week {
		if e.UserID == userID {
			mine++
		}
	}
	if mine >= game.MaxSubmissionsPerWeek {
		return nil, s.rejectSubmit(KindRateLimited, msgWeeklyLimit), nil
	}

	user, err := s.users.GetOrCreate(ctx, sessionID, userID, username)
	if err != nil {
		return nil, nil, err
	}

	sub := models.MysterySubmission{
		Version:         models.SchemaVersion,
		ID:              "sub_" + uuid.NewString(),
		UserID:          userID,
		Username:        username,
		Answer:          req.Answer,
		Category:        req.Category,
		MatchedCategory: game.MatchCategory(req.Category),
		Hints:           req.Hints,
		Votes:           0,
		Voters:          []string{},
		SubmittedAt:     now.UnixMilli(),
		Status:          models.SubmissionPending,
	}

	subs, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	subs = append(subs, sub)
	if err := s.save(ctx, sessionID, subs); err != nil {
		return nil, nil, err
	}

	week = append(week, weeklyEntry{SubmissionID: sub.ID, UserID: userID, SubmittedAt: sub.SubmittedAt})
	expireAt := now.AddDate(0, 0, game.SubmissionWeekExpiryDays)
	if err := store.SetJSON(ctx, s.kv, weekKey, week, expireAt); err != nil {
		return nil, nil, fmt.Errorf("failed to save weekly submissions: %w", err)
	}

	user.MysteriesSubmitted++
	unlocked := s.users.unlock(user, EventContext{})
	if err := s.users.Save(ctx, sessionID, user); err != nil {
		return nil, nil, err
	}
	metrics.SubmissionsTotal.Inc()

	s.users.announceAchievements(ctx, sessionID, username, unlocked)
	s.users.activity.record(ctx, sessionID, models.ActivitySubmission, username,
		fmt.Sprintf("submitted a mystery in %q", sub.Category), "✍️")

	return &SubmitResult{Submission: sub, NewAchievements: unlocked}, nil, nil
}

// effectiveVotesUsed is the number of votes the user spent today.
func effectiveVotesUsed(user *models.UserProgress, today string) int {
	if user.LastVoteDate != today {
		return 0
	}
	return user.VotesUsed
}

// VotesRemaining returns how many votes userID can still cast today. A user
// without a record has the full allowance.
func (s *SubmissionService) VotesRemaining(ctx context.Context, sessionID, userID string) (int, error) {
	user, ok, err := s.users.GetUser(ctx, sessionID, userID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return game.MaxVotesPerDay, nil
	}
	left := game.MaxVotesPerDay - effectiveVotesUsed(user, game.DateString(s.clock()))
	if left < 0 {
		left = 0
	}
	return left, nil
}

// Vote adds the user's vote to a submission.
func (s *SubmissionService) Vote(ctx context.Context, sessionID, userID, username, submissionID string) (*VoteResult, *Rejection, error) {
	submissionID = strings.TrimSpace(submissionID)
	if err := validation.Struct(models.VoteMysteryRequest{SubmissionID: submissionID}); err != nil {
		return nil, s.rejectVote(KindValidation, validation.Message(err)), nil
	}

	user, err := s.users.GetOrCreate(ctx, sessionID, userID, username)
	if err != nil {
		return nil, nil, err
	}

	today := game.DateString(s.clock())
	used := effectiveVotesUsed(user, today)
	if used >= game.MaxVotesPerDay {
		return nil, s.rejectVote(KindRateLimited, msgVoteLimit), nil
	}

	subs, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	idx := -1
	for i := range subs {
		if subs[i].ID == submissionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, s.rejectVote(KindConflict, msgSubmissionNotFound), nil
	}
	if subs[idx].HasVoter(userID) {
		return nil, s.rejectVote(KindConflict, msgAlreadyVoted), nil
	}

	subs[idx].Votes++
	subs[idx].Voters = append(subs[idx].Voters, userID)
	if err := s.save(ctx, sessionID, subs); err != nil {
		return nil, nil, err
	}

	user.VotesUsed = used + 1
	user.LastVoteDate = today
	user.TotalVotesEver++
	unlocked := s.users.unlock(user, EventContext{})
	if err := s.users.Save(ctx, sessionID, user); err != nil {
		return nil, nil, err
	}
	metrics.VotesTotal.Inc()

	s.users.announceAchievements(ctx, sessionID, username, unlocked)
	s.users.activity.record(ctx, sessionID, models.ActivityVote, username, "voted on a mystery", "🗳️")

	return &VoteResult{Votes: subs[idx].Votes, NewAchievements: unlocked}, nil, nil
}

// Top returns up to limit pending submissions by votes, ties in submission
// order.
func (s *SubmissionService) Top(ctx context.Context, sessionID string, limit int) ([]models.MysterySubmission, error) {
	if limit <= 0 {
		limit = game.DefaultTopSubmissions
	}

	subs, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	pending := make([]models.MysterySubmission, 0, len(subs))
	for _, sub := range subs {
		if sub.Status == models.SubmissionPending {
			pending = append(pending, sub)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].Votes > pending[j].Votes
	})
	if len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (s *SubmissionService) load(ctx context.Context, sessionID string) ([]models.MysterySubmission, error) {
	subs := []models.MysterySubmission{}
	if _, err := store.GetJSON(ctx, s.kv, submissionsKey(sessionID), &subs); err != nil {
		return nil, fmt.Errorf("failed to load submissions for %s: %w", sessionID, err)
	}
	return subs, nil
}

func (s *SubmissionService) save(ctx context.Context, sessionID string, subs []models.MysterySubmission) error {
	if err := store.SetJSON(ctx, s.kv, submissionsKey(sessionID), subs, time.Time{}); err != nil {
		return fmt.Errorf("failed to save submissions for %s: %w", sessionID, err)
	}
	return nil
}
