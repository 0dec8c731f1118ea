package services

import (
	"github.com/tahcohcat/daily-mystery/internal/game"
	"github.com/tahcohcat/daily-mystery/internal/models"
)

// EventContext carries what just happened, for the requirements that depend
// on the event rather than on lifetime counters.
type EventContext struct {
	JustSolved    bool
	IsFirstSolver bool
	SolveTimeMs   int64
}

// AchievementService evaluates the static catalog against a user's counters.
// It holds no state besides the catalog and never writes anything.
type AchievementService struct {
	catalog []models.Achievement
}

func NewAchievementService(catalog []models.Achievement) *AchievementService {
	if catalog == nil {
		catalog = game.Achievements()
	}
	return &AchievementService{catalog: catalog}
}

// Catalog returns every achievement definition.
func (s *AchievementService) Catalog() []models.Achievement {
	return append([]models.Achievement(nil), s.catalog...)
}

// Evaluate returns every achievement the user does not hold yet whose
// requirement is now satisfied. The caller appends and persists them.
func (s *AchievementService) Evaluate(user *models.UserProgress, ec EventContext) []models.Achievement {
	var unlocked []models.Achievement
	for _, a := range s.catalog {
		if user.HasAchievement(a.ID) {
			continue
		}
		if satisfied(a.Requirement, user, ec) {
			unlocked = append(unlocked, a)
		}
	}
	return unlocked
}

func satisfied(req models.Requirement, user *models.UserProgress, ec EventContext) bool {
	switch req.Type {
	case models.RequirementTotalSolves:
		return user.CorrectGuesses >= req.Threshold
	case models.RequirementStreak:
		return user.Streak >= req.Threshold
	case models.RequirementFirstSolve:
		return ec.IsFirstSolver
	case models.RequirementSpeedSolve:
		// a zero solve time means the solve instant was not known
		return ec.JustSolved && ec.SolveTimeMs > 0 && ec.SolveTimeMs <= req.TimeLimit
	case models.RequirementSubmitMystery:
		return user.MysteriesSubmitted >= req.Threshold
	case models.RequirementVote:
		return user.TotalVotesEver >= req.Threshold
	}
	return false
}

// GetUserAchievements returns the catalog with the user's unlock state.
func (s *AchievementService) GetUserAchievements(user *models.UserProgress) []models.UserAchievementView {
	views := make([]models.UserAchievementView, 0, len(s.catalog))
	for _, a := range s.catalog {
		views = append(views, models.UserAchievementView{
			Achievement: a,
			Completed:   user.HasAchievement(a.ID),
		})
	}
	return views
}
