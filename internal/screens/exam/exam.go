package exam

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/grilled-pork-chop/civitest/internal/bank"
	"github.com/grilled-pork-chop/civitest/internal/quiz"
	"github.com/grilled-pork-chop/civitest/internal/router"
	"github.com/grilled-pork-chop/civitest/internal/screen"
	"github.com/grilled-pork-chop/civitest/internal/screens/summary"
	"github.com/grilled-pork-chop/civitest/internal/ui/components"
	"github.com/grilled-pork-chop/civitest/internal/ui/layout"
)

// ExamScreen runs one attempt at the exam.
type ExamScreen struct {
	engine     *quiz.Engine
	pool       []bank.Question
	recentSets [][]string

	session  *quiz.Session
	selected int // highlighted choice on the current question

	jumping   bool
	jumpInput components.TextInput

	confirmQuit   bool
	confirmFinish bool
}

var _ screen.Screen = (*ExamScreen)(nil)
var _ screen.KeyHintProvider = (*ExamScreen)(nil)
var _ screen.EscHandler = (*ExamScreen)(nil)

// New creates an ExamScreen. The session starts in Init, so constructing the
// screen is free of side effects.
func New(engine *quiz.Engine, pool []bank.Question, recentSets [][]string) *ExamScreen {
	return &ExamScreen{
		engine:     engine,
		pool:       pool,
		recentSets: recentSets,
	}
}

func (s *ExamScreen) Init() tea.Cmd {
	return tea.Batch(s.startExam(), tickCmd())
}

func (s *ExamScreen) Title() string {
	return "Exam"
}

// HandlesEsc keeps the router from popping this screen on Esc; quitting an
// exam goes through the confirm dialog because progress is discarded.
func (s *ExamScreen) HandlesEsc() bool { return true }

func (s *ExamScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmQuit, s.confirmFinish:
		return []layout.KeyHint{
			{Key: "Y", Description: "Confirm"},
			{Key: "N", Description: "Cancel"},
		}
	case s.jumping:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Go"},
			{Key: "Esc", Description: "Cancel"},
		}
	case s.session != nil && s.session.Paused:
		return []layout.KeyHint{
			{Key: "P", Description: "Resume"},
			{Key: "Esc", Description: "Quit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choice"},
			{Key: "Enter", Description: "Answer"},
			{Key: "←→", Description: "Question"},
			{Key: "G", Description: "Jump"},
			{Key: "P", Description: "Pause"},
			{Key: "F", Description: "Finish"},
			{Key: "Esc", Description: "Quit"},
		}
	}
}

// startExam selects the question set and starts the session.
func (s *ExamScreen) startExam() tea.Cmd {
	return func() tea.Msg {
		selected := quiz.SelectQuestions(s.pool, quiz.TotalQuestions, s.recentSets)
		session := s.engine.Start(selected)
		return examStartedMsg{Session: session}
	}
}

func (s *ExamScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case examStartedMsg:
		s.session = msg.Session
		s.syncSelection()
		return s, nil

	case timerTickMsg:
		return s.handleTick()

	case examOverMsg:
		return s.finish()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.jumping {
		var cmd tea.Cmd
		s.jumpInput, cmd = s.jumpInput.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ExamScreen) handleTick() (screen.Screen, tea.Cmd) {
	if s.session == nil {
		return s, tickCmd()
	}
	if s.session.Completed {
		return s, nil
	}
	// The engine ignores ticks while paused; the clock keeps running so
	// resume picks the countdown straight back up.
	if remaining := s.engine.Tick(); remaining <= 0 {
		return s, func() tea.Msg { return examOverMsg{} }
	}
	return s, tickCmd()
}

func (s *ExamScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.session == nil {
		return s, nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.engine.Abandon()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if s.confirmFinish {
		switch key {
		case "y", "Y":
			s.confirmFinish = false
			return s, func() tea.Msg { return examOverMsg{} }
		case "n", "N", "esc":
			s.confirmFinish = false
		}
		return s, nil
	}

	if s.jumping {
		switch key {
		case "enter":
			if n, err := s.jumpInput.NumericValue(); err == nil {
				s.engine.GoTo(n - 1) // display is 1-based, clamped by the engine
				s.syncSelection()
			}
			s.jumping = false
			return s, nil
		case "esc":
			s.jumping = false
			return s, nil
		}
		var cmd tea.Cmd
		s.jumpInput, cmd = s.jumpInput.Update(msg)
		return s, cmd
	}

	if s.session.Paused {
		switch key {
		case "p", "P":
			s.engine.Resume()
		case "esc":
			s.confirmQuit = true
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "p", "P":
		s.engine.Pause()
		return s, nil
	case "f", "F":
		s.confirmFinish = true
		return s, nil
	case "g", "G":
		s.jumping = true
		s.jumpInput = components.NewTextInput("question #", true, 2)
		return s, s.jumpInput.Init()
	case "left", "h":
		s.engine.Prev()
		s.syncSelection()
		return s, nil
	case "right", "l":
		s.engine.Next()
		s.syncSelection()
		return s, nil
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
		return s, nil
	case "down", "j":
		if q := s.currentQuestion(); q != nil && s.selected < len(q.ShuffledChoices)-1 {
			s.selected++
		}
		return s, nil
	case "enter":
		return s.submit(s.selected)
	case "1", "2", "3", "4", "5", "6":
		idx := int(key[0] - '1')
		if q := s.currentQuestion(); q != nil && idx < len(q.ShuffledChoices) {
			s.selected = idx
			return s.submit(idx)
		}
		return s, nil
	}

	return s, nil
}

// submit records the choice and moves on to the next question.
func (s *ExamScreen) submit(choice int) (screen.Screen, tea.Cmd) {
	s.engine.Answer(s.session.CurrentIndex, choice)
	if s.session.CurrentIndex < len(s.session.Questions)-1 {
		s.engine.Next()
		s.syncSelection()
	}
	return s, nil
}

// finish ends the session and swaps in the summary screen.
func (s *ExamScreen) finish() (screen.Screen, tea.Cmd) {
	result := s.engine.End()
	if result == nil {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(result)}
	}
}

// syncSelection highlights the already-chosen answer when landing on an
// answered question.
func (s *ExamScreen) syncSelection() {
	s.selected = 0
	if s.session == nil || len(s.session.Answers) == 0 {
		return
	}
	a := s.session.Answers[s.session.CurrentIndex]
	if a.Answered() {
		s.selected = *a.SelectedChoiceIndex
	}
}

func (s *ExamScreen) currentQuestion() *quiz.ShuffledQuestion {
	if s.session == nil || len(s.session.Questions) == 0 {
		return nil
	}
	return &s.session.Questions[s.session.CurrentIndex]
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
