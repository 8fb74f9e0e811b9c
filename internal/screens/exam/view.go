package exam

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/grilled-pork-chop/civitest/internal/ui/theme"
)

func (s *ExamScreen) View(width, height int) string {
	if s.session == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Preparing your exam...")
	}
	if s.confirmQuit {
		return renderConfirm(width,
			"Abandon this exam?",
			"All progress will be lost — nothing is saved until you finish.",
			"[Y] Yes, abandon", "[N] No, keep going")
	}
	if s.confirmFinish {
		unanswered := len(s.session.Questions) - s.session.AnsweredCount()
		detail := "All questions answered."
		if unanswered > 0 {
			detail = fmt.Sprintf("%d question(s) still unanswered — they count as wrong.", unanswered)
		}
		return renderConfirm(width, "Finish and score the exam?", detail,
			"[Y] Yes, finish", "[N] No, go back")
	}
	if s.session.Paused {
		return renderPaused(width)
	}
	return s.renderQuestion(width)
}

func (s *ExamScreen) renderQuestion(width int) string {
	sess := s.session
	q := s.currentQuestion()
	if q == nil {
		return ""
	}

	var b strings.Builder

	mins := sess.TimeRemaining / 60
	secs := sess.TimeRemaining % 60
	timerStyle := lipgloss.NewStyle().Foreground(theme.Accent)
	if sess.TimeRemaining < 5*60 {
		timerStyle = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	}

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d/%d", sess.CurrentIndex+1, len(sess.Questions)))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("answered %d  ", sess.AnsweredCount())) +
		timerStyle.Render(fmt.Sprintf("%d:%02d", mins, secs)) + "  "

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 2
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	// Topic tag.
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(q.Topic.DisplayName()))
	b.WriteString("\n\n")

	// Question text.
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Text))
	b.WriteString("\n\n")

	// Choices.
	answer := sess.Answers[sess.CurrentIndex]
	var choices strings.Builder
	for i, c := range q.ShuffledChoices {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		marker := " "
		if answer.Answered() && *answer.SelectedChoiceIndex == i {
			marker = "●"
		}
		line := fmt.Sprintf("%s%s %d) %s", prefix, marker, i+1, c.Label)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		choices.WriteString(style.Render(line))
		choices.WriteString("\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, choices.String()))

	if s.jumping {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("Go to question: " + s.jumpInput.View()))
	}

	return b.String()
}

func renderPaused(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Bold(true).
		Render("Paused"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("The clock is stopped. Press P to resume."))
	return b.String()
}

func renderConfirm(width int, title, detail, yes, no string) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(detail))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render(yes))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render(no))
	return b.String()
}
