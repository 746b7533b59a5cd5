package engine

import (
	"time"

	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/storage"
)

// IsDue reports whether a mission is due on the given calendar date.
// Pure: no side effects, identical inputs always yield identical results.
//
//   - daily missions are always due
//   - weekly missions are due when the date's day name matches WeekDay
//   - once missions are due only on the same calendar day as SpecificDate;
//     a missing date fails closed (never due)
func IsDue(m *storage.Mission, date time.Time) bool {
	switch MissionType(m.Type) {
	case MissionDaily:
		return true
	case MissionWeekly:
		if m.WeekDay == nil {
			return false
		}
		return WeekDayName(date) == *m.WeekDay
	case MissionOnce:
		if m.SpecificDate == nil {
			return false
		}
		return SameCalendarDay(*m.SpecificDate, date)
	default:
		return false
	}
}

// WeekDayName returns the canonical lowercase English day name (0 = sunday).
func WeekDayName(date time.Time) string {
	return weekDayNames[int(date.Weekday())]
}

// SameCalendarDay compares two instants by calendar day, ignoring
// time-of-day.
func SameCalendarDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
