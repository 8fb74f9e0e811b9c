package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/grilled-pork-chop/civitest/internal/bank"
	hist "github.com/grilled-pork-chop/civitest/internal/history"
	"github.com/grilled-pork-chop/civitest/internal/quiz"
	"github.com/grilled-pork-chop/civitest/internal/router"
	"github.com/grilled-pork-chop/civitest/internal/screen"
	examscreen "github.com/grilled-pork-chop/civitest/internal/screens/exam"
	historyscreen "github.com/grilled-pork-chop/civitest/internal/screens/history"
	statsscreen "github.com/grilled-pork-chop/civitest/internal/screens/stats"
	"github.com/grilled-pork-chop/civitest/internal/stats"
	"github.com/grilled-pork-chop/civitest/internal/ui/components"
	"github.com/grilled-pork-chop/civitest/internal/ui/theme"
)

// HomeScreen is the entry screen: start an exam or browse past performance.
type HomeScreen struct {
	menu      components.Menu
	svc       *hist.Service
	bankSize  int
	bankShort bool // bank cannot fill the standard exam
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the HomeScreen. engine and svc are shared app-wide; pool is
// the validated question bank.
func New(engine *quiz.Engine, svc *hist.Service, pool []bank.Question) *HomeScreen {
	items := []components.MenuItem{
		{Label: "START EXAM", Disabled: len(pool) == 0, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: examscreen.New(engine, pool, svc.UsedQuestionSets()),
				}
			}
		}},
		{Label: "STATISTICS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: statsscreen.New(svc)}
			}
		}},
		{Label: "HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: historyscreen.New(svc)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:      components.NewMenu(items),
		svc:       svc,
		bankSize:  len(pool),
		bankShort: len(pool) < quiz.TotalQuestions,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("CIVITEST"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Civics exam simulator"))
	b.WriteString("\n\n")

	// Recomputed per render so finishing an exam shows up immediately.
	st := stats.Compute(h.svc.Results())
	statsLine := "No exams taken yet"
	if st.TotalQuizzes > 0 {
		statsLine = fmt.Sprintf("Attempts: %d    Pass rate: %d%%    Best: %d%%",
			st.TotalQuizzes, st.PassRate, st.BestScore)
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	if h.bankSize == 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("No question bank loaded — check your configured bank files."))
	} else if h.bankShort {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(fmt.Sprintf("Bank holds only %d questions; exams will run short.", h.bankSize)))
	}

	return b.String()
}
