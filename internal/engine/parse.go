package engine

import (
	"strings"
	"unicode"
)

// ParseMissionType parses user input into a MissionType.
// Empty or unrecognized input defaults to daily.
func ParseMissionType(input string) MissionType {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "", "daily", "day":
		return MissionDaily
	case "weekly", "week":
		return MissionWeekly
	case "once", "one-shot", "special":
		return MissionOnce
	default:
		return MissionDaily
	}
}

// ParseWeekDay normalizes a day name to the canonical lowercase form.
// Returns "" when the input is not a known day.
func ParseWeekDay(input string) string {
	s := strings.TrimSpace(strings.ToLower(input))
	if IsWeekDayName(s) {
		return s
	}
	return ""
}

// CategorySlug derives a stable category id from its display name:
// lowercase, non-alphanumerics collapsed to single dashes.
func CategorySlug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
