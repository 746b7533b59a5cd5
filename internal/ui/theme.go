package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Le Lapin Blanc theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconMission   = "🎯"
	IconSparkle   = "✨"
	IconPlus      = "➕"
	IconDone      = "✅"
	IconTimer     = "⏱️"
	IconBolt      = "⚡"
	IconHeart     = "❤️"
	IconInfo      = "ℹ️"
	IconWarn      = "⚠️"
	IconError     = "🧨"
	IconArtifact  = "📦"
	IconDiscovery = "🔍"
	IconScroll    = "📜"
	IconLoop      = "🔁"
	IconCalendar  = "📅"
	IconRabbit    = "🐇"
)

var (
	cPrimary = lipgloss.Color("48")  // matrix green
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

// ApplyTheme switches the accent palette. Unknown names keep the default
// bright palette.
func ApplyTheme(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "neon":
		cPrimary = lipgloss.Color("51") // cyan
		cAccent = lipgloss.Color("201")
	case "cyber":
		cPrimary = lipgloss.Color("141") // violet
		cAccent = lipgloss.Color("203")
	default:
		return
	}
	Title = Title.Foreground(cAccent)
	H2 = H2.Foreground(cPrimary)
	Key = Key.Foreground(cPrimary)
	PanelTitle = PanelTitle.Foreground(cPrimary)
	SelectedRow = SelectedRow.Background(cPrimary)
}

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func StatusText(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	switch s {
	case "completed":
		return Good.Render("completed")
	case "pending":
		return Warn.Render("pending")
	default:
		return Muted.Render(status)
	}
}

func RarityText(rarity string) string {
	r := strings.ToLower(strings.TrimSpace(rarity))
	switch r {
	case "legendary":
		return Gold.Render("LEGENDARY")
	case "rare":
		return H2.Render("RARE")
	default:
		return Muted.Render("COMMON")
	}
}

func TypeIcon(missionType string) string {
	switch missionType {
	case "weekly":
		return IconCalendar
	case "once":
		return IconSparkle
	default:
		return IconLoop
	}
}

// FormatClock renders seconds as mm:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
