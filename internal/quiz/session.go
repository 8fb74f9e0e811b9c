package quiz

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/grilled-pork-chop/civitest/internal/bank"
)

// Answer records the learner's response to one question, in session order.
// SelectedChoiceIndex is nil until the question is answered; it indexes into
// the question's shuffled choices.
type Answer struct {
	QuestionID          string `json:"questionId"`
	SelectedChoiceIndex *int   `json:"selectedChoiceIndex"`
	IsCorrect           bool   `json:"isCorrect"`
	TimeTaken           int    `json:"timeTaken"` // seconds spent before answering
}

// Answered reports whether a choice has been selected.
func (a Answer) Answered() bool { return a.SelectedChoiceIndex != nil }

// Session is one attempt at the exam. At most one session is live at a time;
// it is owned and mutated exclusively by an Engine.
type Session struct {
	ID            string
	StartedAt     time.Time
	CompletedAt   time.Time // zero until completed
	Questions     []ShuffledQuestion
	Answers       []Answer
	CurrentIndex  int
	TimeRemaining int // seconds
	Completed     bool
	Paused        bool
}

// AnsweredCount returns how many questions have a selected choice.
func (s *Session) AnsweredCount() int {
	n := 0
	for _, a := range s.Answers {
		if a.Answered() {
			n++
		}
	}
	return n
}

// Recorder receives completed results and used-question-id sets. The engine
// never assumes recording succeeds; implementations absorb their own
// persistence failures.
type Recorder interface {
	RecordResult(Result)
	RecordUsedSet(ids []string)
}

// Engine owns the current session and serializes all mutation of it. Methods
// are safe to call with no active session; they no-op or return nil.
type Engine struct {
	mu       sync.Mutex
	session  *Session
	recorder Recorder

	// questionShownAt is when the current question became current, for
	// per-question time tracking. Frozen while paused.
	questionShownAt time.Time
}

// NewEngine creates an Engine. recorder may be nil (results are then only
// returned to the caller, not recorded).
func NewEngine(recorder Recorder) *Engine {
	return &Engine{recorder: recorder}
}

// Start begins a new session over the given questions, shuffling each
// question's choices and recording the chosen id set for freshness bias in
// later selections. Any previous unfinished session is silently discarded.
func (e *Engine) Start(questions []bank.Question) *Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	shuffled := make([]ShuffledQuestion, len(questions))
	answers := make([]Answer, len(questions))
	ids := make([]string, len(questions))
	for i, q := range questions {
		shuffled[i] = ShuffleChoices(q)
		answers[i] = Answer{QuestionID: q.ID}
		ids[i] = q.ID
	}

	now := time.Now()
	e.session = &Session{
		ID:            uuid.New().String(),
		StartedAt:     now,
		Questions:     shuffled,
		Answers:       answers,
		TimeRemaining: TimeLimitSeconds,
	}
	e.questionShownAt = now

	if e.recorder != nil {
		e.recorder.RecordUsedSet(ids)
	}
	return e.session
}

// Current returns the live session, or nil.
func (e *Engine) Current() *Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// Answer records a choice for the question at index. Out-of-range question
// or choice indices are no-ops. Re-answering overwrites the previous choice.
func (e *Engine) Answer(index, choiceIndex int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s == nil || s.Completed {
		return
	}
	if index < 0 || index >= len(s.Questions) {
		return
	}
	q := s.Questions[index]
	if choiceIndex < 0 || choiceIndex >= len(q.ShuffledChoices) {
		return
	}

	a := &s.Answers[index]
	if !a.Answered() && index == s.CurrentIndex {
		a.TimeTaken = int(time.Since(e.questionShownAt) / time.Second)
	}
	idx := choiceIndex
	a.SelectedChoiceIndex = &idx
	a.IsCorrect = q.ShuffledChoices[choiceIndex].Correct
}

// GoTo moves to the question at index, clamped into range.
func (e *Engine) GoTo(index int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.goToLocked(index)
}

// Next advances to the following question; no-op at the end.
func (e *Engine) Next() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil {
		e.goToLocked(e.session.CurrentIndex + 1)
	}
}

// Prev moves to the preceding question; no-op at the start.
func (e *Engine) Prev() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil {
		e.goToLocked(e.session.CurrentIndex - 1)
	}
}

func (e *Engine) goToLocked(index int) {
	s := e.session
	if s == nil || s.Completed || len(s.Questions) == 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index > len(s.Questions)-1 {
		index = len(s.Questions) - 1
	}
	if index != s.CurrentIndex {
		s.CurrentIndex = index
		e.questionShownAt = time.Now()
	}
}

// Tick decrements the countdown by one second and returns the remaining
// time. The engine never ends the session itself; when Tick returns 0 the
// caller is responsible for invoking End. Ticks while paused or completed
// are ignored.
func (e *Engine) Tick() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s == nil || s.Completed || s.Paused {
		if s == nil {
			return 0
		}
		return s.TimeRemaining
	}
	if s.TimeRemaining > 0 {
		s.TimeRemaining--
	}
	return s.TimeRemaining
}

// Pause freezes the countdown. The external clock keeps ticking but Tick
// ignores it while paused.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil && !e.session.Completed {
		e.session.Paused = true
	}
}

// Resume unfreezes the countdown and restarts the per-question timer.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil && !e.session.Completed {
		e.session.Paused = false
		e.questionShownAt = time.Now()
	}
}

// End completes the session, scores it, and records the result. Returns nil
// when there is no session or it has already been completed.
func (e *Engine) End() *Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s == nil || s.Completed {
		return nil
	}
	s.Completed = true
	s.Paused = false
	s.CompletedAt = time.Now()

	result := ScoreSession(s)
	if e.recorder != nil {
		e.recorder.RecordResult(result)
	}
	return &result
}

// Abandon discards the current session without scoring or recording it.
// Leaving mid-exam loses all progress; that is the intended trade-off.
func (e *Engine) Abandon() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session = nil
}
