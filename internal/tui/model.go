package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/engine"
	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/storage"
	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	player   *storage.Player
	skills   []storage.Skill
	missions []storage.Mission

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	player   *storage.Player
	skills   []storage.Skill
	missions []storage.Mission
	err      error
}

type completedMsg struct {
	id  string
	res *engine.CompleteResult
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		p, err := m.svc.PlayerRepo().GetOrCreateMain(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		skills, err := m.svc.SkillRepo().ListAll(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		missions, err := m.svc.DueMissions(m.ctx, time.Now())
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{player: p, skills: skills, missions: missions}
	}
}

func (m boardModel) completeCmd(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteMission(m.ctx, id)
		return completedMsg{id: id, res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.player = msg.player
		m.skills = msg.skills
		m.missions = msg.missions
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		if msg.res.AlreadyDone {
			m.lastLog = "Already completed."
			return m, m.loadCmd()
		}
		m.lastLog = fmt.Sprintf("Completed: +%d XP (level %d → %d)",
			msg.res.XPAwarded, msg.res.PlayerLevelBefore, msg.res.PlayerLevelAfter)
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.missions)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ":
			if m.selected < 0 || m.selected >= len(m.missions) {
				return m, nil
			}
			target := m.missions[m.selected]
			if target.Status == "completed" {
				m.lastLog = "Already completed."
				return m, nil
			}
			m.lastLog = "Completing…"
			return m, m.completeCmd(target.ID)
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 28
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.player == nil {
		return "Le Lapin Blanc — loading…"
	}
	bar := progressBar(
		engine.PlayerLevelStep-engine.XPToNextLevel(m.player.TotalXP),
		engine.PlayerLevelStep,
		30,
	)
	return fmt.Sprintf("%s %s | Level %d | XP %d %s",
		ui.IconRabbit, m.player.Name, m.player.Level, m.player.TotalXP, bar)
}

func (m boardModel) renderSidebar() string {
	if m.player == nil {
		return "Stats\n\nLoading…"
	}
	lines := []string{"Gauges"}
	lines = append(lines, fmt.Sprintf("- Health %s", progressBar(m.player.Health, 100, 14)))
	lines = append(lines, fmt.Sprintf("- Energy %s", progressBar(m.player.Energy, 100, 14)))
	lines = append(lines, "")
	lines = append(lines, "Skills")
	for _, sk := range m.skills {
		lines = append(lines, fmt.Sprintf("- %s L%d %s", sk.CategoryID, sk.Level, progressBar(sk.XP, sk.MaxXP, 14)))
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space: complete")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	var out []string
	out = append(out, "Today's Missions")
	if len(m.missions) == 0 {
		out = append(out, "(nothing due today)")
		return strings.Join(out, "\n")
	}
	for i, mission := range m.missions {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		mark := " "
		if mission.Status == "completed" {
			mark = "✓"
		}
		timer := ""
		if mission.HasTimer {
			timer = fmt.Sprintf(" %dmin", mission.EstimatedTime)
		}
		out = append(out, fmt.Sprintf("%s[%s] %s %s (+%d XP, %s%s)",
			cursor, mark, ui.TypeIcon(mission.Type), mission.Title, mission.XPReward, mission.CategoryID, timer))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
