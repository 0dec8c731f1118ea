package services

import (
	"context"
	"sort"

	"github.com/tahcohcat/daily-mystery/internal/game"
	"github.com/tahcohcat/daily-mystery/internal/models"
)

// Leaderboard ranks every user of the session by solves, then streak. Users
// with equal scores keep the order in which they joined the session.
func (s *UserService) Leaderboard(ctx context.Context, sessionID string) ([]models.LeaderboardEntry, error) {
	ids, err := s.sessions.UserIDs(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	users := make([]*models.UserProgress, 0, len(ids))
	for _, id := range ids {
		user, ok, err := s.GetUser(ctx, sessionID, id)
		if err != nil {
			return nil, err
		}
		if ok {
			users = append(users, user)
		}
	}

	sort.SliceStable(users, func(i, j int) bool {
		if users[i].CorrectGuesses != users[j].CorrectGuesses {
			return users[i].CorrectGuesses > users[j].CorrectGuesses
		}
		return users[i].Streak > users[j].Streak
	})

	if len(users) > game.LeaderboardSize {
		users = users[:game.LeaderboardSize]
	}

	entries := make([]models.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, models.LeaderboardEntry{
			Username:         u.Username,
			CorrectGuesses:   u.CorrectGuesses,
			Streak:           u.Streak,
			Rank:             i + 1,
			FastestSolveTime: u.FastestSolve,
		})
	}
	return entries, nil
}
