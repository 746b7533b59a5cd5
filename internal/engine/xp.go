package engine

import (
	"fmt"
	"math"

	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/storage"
)

const (
	// PlayerLevelStep is the flat XP cost of one player level.
	PlayerLevelStep = 100

	// SkillMaxXPGrowth raises the skill threshold by 10% per rollover.
	SkillMaxXPGrowth = 1.1

	// SkillBaseMaxXP is the threshold for a fresh skill track.
	SkillBaseMaxXP = 100
)

// PlayerLevel returns the level implied by total XP: floor(totalXP/100)+1.
func PlayerLevel(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return totalXP/PlayerLevelStep + 1
}

// XPToNextLevel returns the XP remaining until the next player level.
func XPToNextLevel(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return PlayerLevelStep - totalXP%PlayerLevelStep
}

// ApplySkillXP adds XP to a skill track and normalizes it: while xp >= maxXp,
// one level is gained, the surplus carries over, and the threshold grows by
// 10% (integer floor). Returns the new level reached by each rollover, in
// order. A large grant may roll over several times in one call.
//
// Negative amounts are a usage fault, not a recoverable condition; the skill
// is left untouched.
func ApplySkillXP(s *storage.Skill, amount int) ([]int, error) {
	if amount < 0 {
		return nil, fmt.Errorf("negative xp amount: %d", amount)
	}
	if s.MaxXP <= 0 {
		s.MaxXP = SkillBaseMaxXP
	}

	s.XP += amount
	var levelUps []int
	for s.XP >= s.MaxXP {
		s.XP -= s.MaxXP
		s.Level++
		s.MaxXP = int(math.Floor(float64(s.MaxXP) * SkillMaxXPGrowth))
		levelUps = append(levelUps, s.Level)
	}
	return levelUps, nil
}

// ApplyPlayerXP adds XP to the player's total and recomputes the level.
// Returns every level crossed, in ascending order: a jump from 3 to 6
// yields [4 5 6], and each entry must be offered to the unlock resolver
// separately.
func ApplyPlayerXP(p *storage.Player, amount int) ([]int, error) {
	if amount < 0 {
		return nil, fmt.Errorf("negative xp amount: %d", amount)
	}

	before := PlayerLevel(p.TotalXP)
	p.TotalXP += amount
	after := PlayerLevel(p.TotalXP)
	p.Level = after

	var crossed []int
	for lvl := before + 1; lvl <= after; lvl++ {
		crossed = append(crossed, lvl)
	}
	return crossed, nil
}
