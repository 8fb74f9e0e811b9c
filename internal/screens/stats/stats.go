package stats

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	hist "github.com/grilled-pork-chop/civitest/internal/history"
	"github.com/grilled-pork-chop/civitest/internal/router"
	"github.com/grilled-pork-chop/civitest/internal/screen"
	"github.com/grilled-pork-chop/civitest/internal/stats"
	"github.com/grilled-pork-chop/civitest/internal/ui/components"
	"github.com/grilled-pork-chop/civitest/internal/ui/layout"
	"github.com/grilled-pork-chop/civitest/internal/ui/theme"
)

type statsLoadedMsg struct {
	Stats stats.Statistics
}

// StatsScreen shows aggregate performance across all recorded results.
type StatsScreen struct {
	svc    *hist.Service
	stats  stats.Statistics
	loaded bool
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a StatsScreen.
func New(svc *hist.Service) *StatsScreen {
	return &StatsScreen{svc: svc}
}

func (s *StatsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		return statsLoadedMsg{Stats: stats.Compute(s.svc.Results())}
	}
}

func (s *StatsScreen) Title() string {
	return "Statistics"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		s.stats = msg.Stats
		s.loaded = true
		return s, nil
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Crunching numbers...")
	}
	st := s.stats
	if st.TotalQuizzes == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No exams recorded yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	avgMins := st.AverageTimeTaken / 60
	avgSecs := st.AverageTimeTaken % 60
	summary := fmt.Sprintf(
		"Exams: %d    Average: %d%%    Pass rate: %d%%    Best: %d%%    Worst: %d%%    Avg time: %d:%02d",
		st.TotalQuizzes, st.AverageScore, st.PassRate, st.BestScore, st.WorstScore, avgMins, avgSecs)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(summary))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))

	// Trend, oldest-first left to right.
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Recent trend")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	var trend strings.Builder
	for i, pct := range st.RecentTrend {
		if i > 0 {
			trend.WriteString("  ")
		}
		style := theme.Pass
		if pct < 80 {
			style = theme.Fail
		}
		trend.WriteString(style.Render(fmt.Sprintf("%d", pct)))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, trend.String()))
	b.WriteString("\n\n")

	// Lifetime topic performance.
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Lifetime by topic")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	barWidth := min(width-12, 56)
	for _, tp := range st.TopicTotals {
		label := fmt.Sprintf("%-26s %3d/%3d", tp.Topic.DisplayName(), tp.Correct, tp.Total)
		bar := components.NewProgressBar(label, float64(tp.Percentage)/100, true, barWidth)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
