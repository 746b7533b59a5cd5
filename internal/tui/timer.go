package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/engine"
	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/storage"
	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/ui"
)

type tickMsg time.Time

type tickedMsg struct {
	res *engine.TickResult
	err error
}

type abandonedMsg struct {
	err error
}

type focusModel struct {
	ctx context.Context
	svc *engine.Service

	mission *storage.Mission
	timer   *engine.ActiveTimer
	bar     progress.Model

	done   *engine.CompleteResult
	status string
	err    error
}

func newFocusModel(ctx context.Context, svc *engine.Service, missionID string) (*focusModel, error) {
	t, err := svc.StartTimer(ctx, missionID)
	if err != nil {
		return nil, err
	}
	m, err := svc.MissionRepo().Get(ctx, missionID)
	if err != nil {
		return nil, err
	}

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40
	return &focusModel{
		ctx:     ctx,
		svc:     svc,
		mission: m,
		timer:   t,
		bar:     bar,
		status:  "Stay on mission…",
	}, nil
}

func (m *focusModel) Init() tea.Cmd {
	return tickEvery()
}

func tickEvery() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *focusModel) tickCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.Tick(m.ctx)
		return tickedMsg{res: res, err: err}
	}
}

func (m *focusModel) abandonCmd() tea.Cmd {
	return func() tea.Msg {
		return abandonedMsg{err: m.svc.AbandonTimer(m.ctx)}
	}
}

func (m *focusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.done != nil || m.err != nil {
			return m, nil
		}
		return m, m.tickCmd()
	case tickedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if msg.res.Completed != nil {
			m.done = msg.res.Completed
			m.timer = nil
			m.status = fmt.Sprintf("Mission complete! +%d XP", m.done.XPAwarded)
			return m, nil
		}
		m.timer = msg.res.Timer
		return m, tickEvery()
	case abandonedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.done != nil {
				return m, tea.Quit
			}
			m.status = "Abandoning…"
			return m, m.abandonCmd()
		case "a", "esc":
			if m.done == nil {
				m.status = "Abandoning…"
				return m, m.abandonCmd()
			}
			return m, tea.Quit
		case "enter":
			if m.done != nil {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m *focusModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n"
	}

	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconTimer, "Mission in progress") + "\n\n")
	b.WriteString("  " + m.mission.Title + "\n\n")

	if m.done != nil {
		b.WriteString("  " + ui.Good.Render(ui.IconDone+" "+m.status) + "\n")
		if m.done.PlayerLevelAfter > m.done.PlayerLevelBefore {
			b.WriteString("  " + ui.BadgeLevelUp + fmt.Sprintf(" %d → %d\n", m.done.PlayerLevelBefore, m.done.PlayerLevelAfter))
		}
		if m.done.Artifact != nil {
			b.WriteString("  " + ui.IconArtifact + " Artifact found: " + m.done.Artifact.Name + "\n")
		}
		b.WriteString("\n  Press enter to close.\n")
		return b.String()
	}

	left := 0
	total := 1
	if m.timer != nil {
		left = m.timer.TimeLeft
		total = m.timer.Total
	}
	elapsed := float64(total-left) / float64(total)

	b.WriteString("  " + ui.Gold.Render(ui.FormatClock(left)) + "\n\n")
	b.WriteString("  " + m.bar.ViewAs(elapsed) + "\n\n")
	b.WriteString("  " + ui.Muted.Render(m.status) + "\n")
	b.WriteString("  " + ui.Muted.Render("a/esc: abandon · q: quit") + "\n")
	return b.String()
}
