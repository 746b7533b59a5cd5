package engine

import "fmt"

// StoryDiscovery and StoryArtifact are the narrative payloads attached to a
// level unlock, before they are stamped with ids and timestamps.
type StoryDiscovery struct {
	Title       string
	Description string
	Rarity      Rarity
}

type StoryArtifact struct {
	Name        string
	Description string
	Rarity      Rarity
}

// StoryFragment is the content unlocked at a player level.
type StoryFragment struct {
	Level       int
	Title       string
	Content     string
	Discoveries []StoryDiscovery
	Artifacts   []StoryArtifact
}

// curatedFragments is the hand-written story table. Levels outside it are
// derived deterministically by UnlockForLevel.
var curatedFragments = map[int]StoryFragment{
	1: {
		Level:   1,
		Title:   "The Beginning",
		Content: "You wake up in a strange world. The newspapers speak of mysterious disappearances...",
	},
	10: {
		Level:   10,
		Title:   "First Revelation",
		Content: "The clues point to a pharmaceutical laboratory. Dr. Chen seems to be at the heart of the mystery...",
		Discoveries: []StoryDiscovery{
			{Title: "Lab-7 Recording", Description: "A cryptic message from the scientist before his disappearance...", Rarity: RarityRare},
		},
	},
	25: {
		Level:   25,
		Title:   "The Discovery",
		Content: "Compound-X was not just a drug. It was an experiment on a global scale...",
		Artifacts: []StoryArtifact{
			{Name: "Level 7 Access Badge", Description: "Clearance for the high-security sectors.", Rarity: RarityRare},
		},
	},
	42: {
		Level:   42,
		Title:   "The Announcement",
		Content: "GLOBAL TRANSMISSION DETECTED: 'Those who took my creation have 15 years to find me. The countdown has begun.' — Dr. Chen",
		Discoveries: []StoryDiscovery{
			{Title: "Connection to Project X", Description: "The immortality research ties into other experiments...", Rarity: RarityLegendary},
		},
	},
}

// storyTemplates drive content for levels beyond the curated table.
// The template index is floor(level/25) mod len(storyTemplates).
var storyTemplates = []struct {
	Title   string
	Content string
}{
	{"Deeper Into the Network", "Another layer of Dr. Chen's network surfaces. Encrypted frequencies repeat a sequence tied to your progress."},
	{"Traces in the Archives", "Old archives mention test subjects matching your profile. Someone has been following your missions."},
	{"The Countdown Shifts", "The global countdown skips a beat. Whatever Compound-X started, it is accelerating."},
	{"Signals From the Bunker", "Seismic readings place activity under the abandoned bunker. The coordinates decrypt one digit at a time."},
}

// UnlockForLevel resolves the content unlocked at a player level. A pure
// function of the level and the fixed tables: repeated calls for the same
// level return identical content, including the synthesized discovery's
// rarity (legendary every 20 levels, rare every 10, common otherwise).
func UnlockForLevel(level int) StoryFragment {
	if f, ok := curatedFragments[level]; ok {
		return f
	}

	tpl := storyTemplates[(level/25)%len(storyTemplates)]
	rarity := RarityCommon
	switch {
	case level%20 == 0:
		rarity = RarityLegendary
	case level%10 == 0:
		rarity = RarityRare
	}

	return StoryFragment{
		Level:   level,
		Title:   fmt.Sprintf("%s (Level %d)", tpl.Title, level),
		Content: tpl.Content,
		Discoveries: []StoryDiscovery{
			{
				Title:       fmt.Sprintf("Fragment %d", level),
				Description: fmt.Sprintf("A %s clue recovered at level %d. %s", rarity, level, tpl.Content),
				Rarity:      rarity,
			},
		},
	}
}

// CuratedLevels lists the levels that have hand-written fragments, ascending.
func CuratedLevels() []int {
	return []int{1, 10, 25, 42}
}
