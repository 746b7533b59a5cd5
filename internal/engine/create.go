package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/storage"
	"github.com/polochon-xp/app-le-lapin-blanc-sub000/pkg/logger"
)

type CreateMissionInput struct {
	Title         string
	Description   string
	Category      string
	XPReward      int
	HasTimer      bool
	EstimatedTime int // minutes
	Type          MissionType
	WeekDay       string // required iff Type == weekly
	SpecificDate  string // "2006-01-02", required iff Type == once
}

// CreateMission validates the input and stores a new pending mission.
// A rejected input leaves no partial state behind.
func (s *Service) CreateMission(ctx context.Context, in CreateMissionInput) (*storage.Mission, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}

	catID := strings.TrimSpace(in.Category)
	if catID == "" {
		return nil, ValidationError{Field: "category", Reason: "is required"}
	}
	cat, err := s.categories.Get(ctx, catID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ValidationError{Field: "category", Reason: "unknown category: " + catID}
	}

	if in.XPReward < MinXPReward || in.XPReward > MaxXPReward {
		return nil, ValidationError{
			Field:  "xpReward",
			Reason: fmt.Sprintf("must be between %d and %d", MinXPReward, MaxXPReward),
		}
	}
	if in.HasTimer && (in.EstimatedTime < MinEstimatedMinutes || in.EstimatedTime > MaxEstimatedMinutes) {
		return nil, ValidationError{
			Field:  "estimatedTime",
			Reason: fmt.Sprintf("must be between %d and %d minutes", MinEstimatedMinutes, MaxEstimatedMinutes),
		}
	}
	if !in.Type.IsValid() {
		return nil, ValidationError{Field: "type", Reason: "must be daily, weekly or once"}
	}

	m := storage.Mission{
		ID:            uuid.NewString(),
		Title:         title,
		Description:   strings.TrimSpace(in.Description),
		CategoryID:    catID,
		XPReward:      in.XPReward,
		HasTimer:      in.HasTimer,
		EstimatedTime: in.EstimatedTime,
		Type:          string(in.Type),
		Status:        string(StatusPending),
		Progress:      0,
	}

	switch in.Type {
	case MissionWeekly:
		day := ParseWeekDay(in.WeekDay)
		if day == "" {
			return nil, ValidationError{Field: "weekDay", Reason: "weekly missions need a valid day name"}
		}
		m.WeekDay = &day
	case MissionOnce:
		date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(in.SpecificDate), time.Local)
		if err != nil {
			return nil, ValidationError{Field: "specificDate", Reason: "once missions need a date formatted YYYY-MM-DD"}
		}
		if date.Before(startOfDay(s.now())) {
			return nil, ValidationError{Field: "specificDate", Reason: "must be today or later"}
		}
		m.SpecificDate = &date
	}

	if err := s.missions.Insert(ctx, m); err != nil {
		return nil, err
	}
	s.log.Debug(ctx, "mission created",
		logger.String("id", m.ID), logger.String("type", m.Type))
	return &m, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
