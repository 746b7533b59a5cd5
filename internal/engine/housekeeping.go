package engine

import (
	"context"
	"time"

	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/storage"
	"github.com/polochon-xp/app-le-lapin-blanc-sub000/pkg/logger"
)

// DueMissions runs a housekeeping pass and returns the missions due on the
// given date, in stored order. Housekeeping drops the leftovers of previous
// days: a completed `once` mission is deleted permanently, while completed
// recurring missions whose completion date is not "today" are reset to
// pending so the recurrence matcher can re-admit them.
//
// Housekeeping only runs when the evaluated date is the current day;
// evaluating any other date is a read-only preview. A recurring mission
// completed today must not re-enter pending before the day is over.
//
// Completed missions finished today stay in the result so the UI can render
// them as done.
func (s *Service) DueMissions(ctx context.Context, date time.Time) ([]storage.Mission, error) {
	all, err := s.missions.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	housekeep := SameCalendarDay(date, s.now())

	var due []storage.Mission
	for i := range all {
		m := all[i]

		if housekeep && m.Status == string(StatusCompleted) && m.CompletedAt != nil && !SameCalendarDay(*m.CompletedAt, date) {
			if MissionType(m.Type) == MissionOnce {
				if err := s.missions.Delete(ctx, m.ID); err != nil {
					return nil, err
				}
				s.log.Debug(ctx, "consumed once mission removed", logger.String("id", m.ID))
				continue
			}
			if err := s.missions.ResetPending(ctx, m.ID); err != nil {
				return nil, err
			}
			m.Status = string(StatusPending)
			m.Progress = 0
			m.CompletedAt = nil
		}

		if IsDue(&m, date) {
			due = append(due, m)
		}
	}
	return due, nil
}
