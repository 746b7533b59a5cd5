package storage

import "time"

type Player struct {
	Key     string
	Name    string
	Level   int
	TotalXP int
	Health  int
	Energy  int
}

type Skill struct {
	CategoryID string
	Level      int
	XP         int
	MaxXP      int
}

type Category struct {
	ID    string
	Name  string
	Icon  string
	Color string
}

type Mission struct {
	ID            string
	Title         string
	Description   string
	CategoryID    string
	XPReward      int
	HasTimer      bool
	EstimatedTime int // minutes, meaningful only when HasTimer
	Type          string
	WeekDay       *string
	SpecificDate  *time.Time
	Status        string
	Progress      int
	CompletedAt   *time.Time
	CreatedAt     time.Time
}

type Discovery struct {
	ID          string
	Title       string
	Description string
	Rarity      string
	UnlockedAt  time.Time
}

type Artifact struct {
	ID          string
	Name        string
	Description string
	Rarity      string
	FoundAt     time.Time
}
