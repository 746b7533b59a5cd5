package engine

type MissionType string

const (
	MissionDaily  MissionType = "daily"
	MissionWeekly MissionType = "weekly"
	MissionOnce   MissionType = "once"
)

func (t MissionType) IsValid() bool {
	switch t {
	case MissionDaily, MissionWeekly, MissionOnce:
		return true
	default:
		return false
	}
}

type MissionStatus string

const (
	StatusPending   MissionStatus = "pending"
	StatusCompleted MissionStatus = "completed"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

func (r Rarity) IsValid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityLegendary:
		return true
	default:
		return false
	}
}

// Canonical lowercase English day names, indexed by time.Weekday (0 = Sunday).
var weekDayNames = [7]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

func IsWeekDayName(s string) bool {
	for _, n := range weekDayNames {
		if n == s {
			return true
		}
	}
	return false
}

// Mission creation bounds.
const (
	MinXPReward         = 1
	MaxXPReward         = 500
	MinEstimatedMinutes = 5
	MaxEstimatedMinutes = 480
)
