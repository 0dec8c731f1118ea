package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tahcohcat/daily-mystery/internal/game"
	"github.com/tahcohcat/daily-mystery/internal/logger"
	"github.com/tahcohcat/daily-mystery/internal/models"
	"github.com/tahcohcat/daily-mystery/internal/store"
)

// Publisher receives every event after it was persisted.
type Publisher interface {
	Publish(sessionID string, event models.ActivityEvent)
}

// ActivityService keeps the bounded, newest-first activity feed of a session.
type ActivityService struct {
	kv        store.KeyValueStore
	clock     game.Clock
	publisher Publisher
}

func NewActivityService(kv store.KeyValueStore, clock game.Clock, publisher Publisher) *ActivityService {
	if clock == nil {
		clock = time.Now
	}
	return &ActivityService{kv: kv, clock: clock, publisher: publisher}
}

// RecordActivity prepends a new event and trims the feed to its capacity.
func (s *ActivityService) RecordActivity(ctx context.Context, sessionID string, activityType models.ActivityType, username, message, icon string) (models.ActivityEvent, error) {
	events, err := s.load(ctx, sessionID)
	if err != nil {
		return models.ActivityEvent{}, err
	}

	event := models.ActivityEvent{
		ID:        "evt_" + uuid.NewString(),
		Type:      activityType,
		Username:  username,
		Message:   message,
		Icon:      icon,
		Timestamp: s.clock().UnixMilli(),
	}

	events = append([]models.ActivityEvent{event}, events...)
	if len(events) > game.ActivityLogCapacity {
		events = events[:game.ActivityLogCapacity]
	}

	if err := store.SetJSON(ctx, s.kv, activityKey(sessionID), events, time.Time{}); err != nil {
		return models.ActivityEvent{}, fmt.Errorf("failed to save activity for %s: %w", sessionID, err)
	}

	if s.publisher != nil {
		s.publisher.Publish(sessionID, event)
	}
	return event, nil
}

// GetRecentActivities returns up to limit events, newest first.
func (s *ActivityService) GetRecentActivities(ctx context.Context, sessionID string, limit int) ([]models.ActivityEvent, error) {
	if limit <= 0 {
		limit = game.DefaultActivityLimit
	}

	events, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (s *ActivityService) load(ctx context.Context, sessionID string) ([]models.ActivityEvent, error) {
	events := []models.ActivityEvent{}
	if _, err := store.GetJSON(ctx, s.kv, activityKey(sessionID), &events); err != nil {
		return nil, fmt.Errorf("failed to load activity for %s: %w", sessionID, err)
	}
	return events, nil
}

// record is the fire-and-forget variant used after the main write already
// succeeded; a lost feed entry is logged, never surfaced to the player.
func (s *ActivityService) record(ctx context.Context, sessionID string, activityType models.ActivityType, username, message, icon string) {
	if _, err := s.RecordActivity(ctx, sessionID, activityType, username, message, icon); err != nil {
		logger.New().WithError(err).WithField("session", sessionID).Warn("failed to record activity")
	}
}
