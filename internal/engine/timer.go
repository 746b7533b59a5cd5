package engine

import (
	"context"

	"github.com/polochon-xp/app-le-lapin-blanc-sub000/pkg/logger"
)

// ActiveTimer is the single focus-session slot. It lives only in process
// memory and is never persisted.
type ActiveTimer struct {
	MissionID string
	TimeLeft  int // seconds
	Total     int // seconds, fixed at start
}

// ActiveTimer returns a copy of the running timer, or nil when idle.
func (s *Service) ActiveTimer() *ActiveTimer {
	if s.timer == nil {
		return nil
	}
	t := *s.timer
	return &t
}

// StartTimer begins a focus session for a mission. At most one timer may run
// system-wide; a second start is rejected with TimerBusyError and the running
// timer is left untouched.
func (s *Service) StartTimer(ctx context.Context, missionID string) (*ActiveTimer, error) {
	if s.timer != nil {
		return nil, TimerBusyError{MissionID: s.timer.MissionID}
	}

	m, err := s.getMission(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if !m.HasTimer {
		return nil, ValidationError{Field: "hasTimer", Reason: "mission has no focus timer"}
	}
	if m.Status == string(StatusCompleted) {
		return nil, ValidationError{Field: "status", Reason: "mission is already completed"}
	}

	total := m.EstimatedTime * 60
	s.timer = &ActiveTimer{MissionID: m.ID, TimeLeft: total, Total: total}
	s.log.Debug(ctx, "timer started",
		logger.String("mission", m.ID), logger.Int("seconds", total))
	t := *s.timer
	return &t, nil
}

// TickResult reports the effect of one clock signal.
type TickResult struct {
	Timer     *ActiveTimer    // nil once the session ended
	Completed *CompleteResult // set when the countdown reached zero
}

// Tick consumes one 1 Hz clock signal: the countdown drops by one second and,
// on reaching zero, the timer slot is cleared and the mission completed in
// the same step. Ticking with no active timer is a no-op.
func (s *Service) Tick(ctx context.Context) (*TickResult, error) {
	if s.timer == nil {
		return &TickResult{}, nil
	}

	s.timer.TimeLeft--
	if s.timer.TimeLeft > 0 {
		t := *s.timer
		return &TickResult{Timer: &t}, nil
	}

	id := s.timer.MissionID
	s.timer = nil
	res, err := s.CompleteMission(ctx, id)
	if err != nil {
		return nil, err
	}
	return &TickResult{Completed: res}, nil
}

// AbandonTimer clears the focus session without completing the mission,
// recording the elapsed share as partial progress. Safe to call at any time;
// with no active timer it is a no-op.
func (s *Service) AbandonTimer(ctx context.Context) error {
	if s.timer == nil {
		return nil
	}

	t := *s.timer
	s.timer = nil

	progress := 0
	if t.Total > 0 {
		progress = (t.Total - t.TimeLeft) * 100 / t.Total
	}
	if progress > 99 {
		progress = 99
	}
	if progress > 0 {
		if err := s.missions.UpdateProgress(ctx, t.MissionID, progress); err != nil {
			return err
		}
	}
	s.log.Debug(ctx, "timer abandoned", logger.String("mission", t.MissionID))
	return nil
}
