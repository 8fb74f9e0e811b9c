package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/grilled-pork-chop/civitest/internal/quiz"
	"github.com/grilled-pork-chop/civitest/internal/router"
	"github.com/grilled-pork-chop/civitest/internal/screen"
	"github.com/grilled-pork-chop/civitest/internal/ui/components"
	"github.com/grilled-pork-chop/civitest/internal/ui/layout"
	"github.com/grilled-pork-chop/civitest/internal/ui/theme"
)

// SummaryScreen displays a scored exam result.
type SummaryScreen struct {
	result *quiz.Result
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen for a just-completed result.
func New(result *quiz.Result) *SummaryScreen {
	return &SummaryScreen{result: result}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Result"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.result
	if r == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")

	if r.Passed {
		b.WriteString(theme.Pass.
			Width(width).
			Align(lipgloss.Center).
			Render("PASSED"))
	} else {
		b.WriteString(theme.Fail.
			Width(width).
			Align(lipgloss.Center).
			Render("NOT PASSED"))
	}
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("%d / %d correct — %d%%", r.Score, r.TotalQuestions, r.Percentage)))
	b.WriteString("\n")

	mins := r.TimeTaken / 60
	secs := r.TimeTaken % 60
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Time taken: %d:%02d   Pass mark: %d%%", mins, secs, quiz.PassingPercentage)))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("By topic")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	barWidth := min(width-12, 56)
	for _, tp := range r.TopicPerformance {
		label := fmt.Sprintf("%-26s %2d/%2d", tp.Topic.DisplayName(), tp.Correct, tp.Total)
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
