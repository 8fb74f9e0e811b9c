package quiz

import (
	"testing"

	"github.com/grilled-pork-chop/civitest/internal/bank"
)

type fakeRecorder struct {
	results []Result
	sets    [][]string
}

func (r *fakeRecorder) RecordResult(res Result)    { r.results = append(r.results, res) }
func (r *fakeRecorder) RecordUsedSet(ids []string) { r.sets = append(r.sets, ids) }

func sessionQuestions(n int) []bank.Question {
	return makeQuestions("q", bank.TopicGovernment, bank.TypeKnowledge, n)
}

func TestEngineStart(t *testing.T) {
	rec := &fakeRecorder{}
	e := NewEngine(rec)

	s := e.Start(sessionQuestions(5))

	if s.ID == "" {
		t.Error("session ID is empty")
	}
	if len(s.Questions) != 5 || len(s.Answers) != 5 {
		t.Fatalf("got %d questions / %d answers, want 5 / 5", len(s.Questions), len(s.Answers))
	}
	if s.TimeRemaining != TimeLimitSeconds {
		t.Errorf("TimeRemaining = %d, want %d", s.TimeRemaining, TimeLimitSeconds)
	}
	if s.CurrentIndex != 0 || s.Completed || s.Paused {
		t.Errorf("unexpected initial state: %+v", s)
	}
	for i, a := range s.Answers {
		if a.Answered() {
			t.Errorf("answer %d pre-answered", i)
		}
		if a.QuestionID != s.Questions[i].ID {
			t.Errorf("answer %d bound to %s, want %s", i, a.QuestionID, s.Questions[i].ID)
		}
	}

	if len(rec.sets) != 1 || len(rec.sets[0]) != 5 {
		t.Fatalf("recorded used sets = %v, want one set of 5 ids", rec.sets)
	}
}

func TestEngineAnswer(t *testing.T) {
	e := NewEngine(nil)
	s := e.Start(sessionQuestions(3))

	correct := s.Questions[0].CorrectShuffledIndex()
	e.Answer(0, correct)
	if !s.Answers[0].Answered() || !s.Answers[0].IsCorrect {
		t.Fatalf("correct answer not recorded: %+v", s.Answers[0])
	}

	// Re-answering overwrites.
	wrong := 1 - correct
	e.Answer(0, wrong)
	if s.Answers[0].IsCorrect {
		t.Error("overwritten answer still marked correct")
	}
	if *s.Answers[0].SelectedChoiceIndex != wrong {
		t.Errorf("SelectedChoiceIndex = %d, want %d", *s.Answers[0].SelectedChoiceIndex, wrong)
	}

	// Out-of-range indices are no-ops.
	e.Answer(-1, 0)
	e.Answer(3, 0)
	e.Answer(1, -1)
	e.Answer(1, 2)
	if s.Answers[1].Answered() {
		t.Error("out-of-range answer mutated the session")
	}
}

func TestEngineNavigationClamps(t *testing.T) {
	e := NewEngine(nil)
	s := e.Start(sessionQuestions(3))

	e.Prev()
	if s.CurrentIndex != 0 {
		t.Errorf("Prev at start moved to %d", s.CurrentIndex)
	}
	e.Next()
	e.Next()
	e.Next()
	if s.CurrentIndex != 2 {
		t.Errorf("Next past end moved to %d, want 2", s.CurrentIndex)
	}
	e.GoTo(99)
	if s.CurrentIndex != 2 {
		t.Errorf("GoTo(99) = %d, want 2", s.CurrentIndex)
	}
	e.GoTo(-5)
	if s.CurrentIndex != 0 {
		t.Errorf("GoTo(-5) = %d, want 0", s.CurrentIndex)
	}
	e.GoTo(1)
	if s.CurrentIndex != 1 {
		t.Errorf("GoTo(1) = %d, want 1", s.CurrentIndex)
	}
}

func TestEngineTickAndPause(t *testing.T) {
	e := NewEngine(nil)
	s := e.Start(sessionQuestions(1))

	if got := e.Tick(); got != TimeLimitSeconds-1 {
		t.Errorf("first Tick = %d, want %d", got, TimeLimitSeconds-1)
	}

	e.Pause()
	if got := e.Tick(); got != TimeLimitSeconds-1 {
		t.Errorf("Tick while paused = %d, want unchanged %d", got, TimeLimitSeconds-1)
	}
	e.Resume()
	if got := e.Tick(); got != TimeLimitSeconds-2 {
		t.Errorf("Tick after resume = %d, want %d", got, TimeLimitSeconds-2)
	}

	// Never goes below zero.
	s.TimeRemaining = 1
	if got := e.Tick(); got != 0 {
		t.Errorf("Tick = %d, want 0", got)
	}
	if got := e.Tick(); got != 0 {
		t.Errorf("Tick at zero = %d, want 0", got)
	}
}

func TestEngineTickWithoutSession(t *testing.T) {
	e := NewEngine(nil)
	if got := e.Tick(); got != 0 {
		t.Errorf("Tick with no session = %d, want 0", got)
	}
}

func TestEngineEnd(t *testing.T) {
	rec := &fakeRecorder{}
	e := NewEngine(rec)
	s := e.Start(sessionQuestions(2))

	e.Answer(0, s.Questions[0].CorrectShuffledIndex())

	res := e.End()
	if res == nil {
		t.Fatal("End returned nil for a live session")
	}
	if res.Score != 1 || res.TotalQuestions != 2 {
		t.Errorf("scored %d/%d, want 1/2", res.Score, res.TotalQuestions)
	}
	if !s.Completed || s.CompletedAt.IsZero() {
		t.Error("session not marked completed")
	}
	if len(rec.results) != 1 {
		t.Fatalf("recorded %d results, want 1", len(rec.results))
	}

	// A second End is a no-op.
	if e.End() != nil {
		t.Error("End on a completed session returned a result")
	}
	if len(rec.results) != 1 {
		t.Error("completed session recorded twice")
	}
}

func TestEngineEndWithoutSession(t *testing.T) {
	e := NewEngine(nil)
	if e.End() != nil {
		t.Error("End with no session returned a result")
	}
}

func TestEngineAbandon(t *testing.T) {
	rec := &fakeRecorder{}
	e := NewEngine(rec)
	e.Start(sessionQuestions(2))

	e.Abandon()
	if e.Current() != nil {
		t.Error("Current() not nil after Abandon")
	}
	if e.End() != nil {
		t.Error("End after Abandon returned a result")
	}
	if len(rec.results) != 0 {
		t.Error("abandoned session was recorded")
	}
}

func TestEngineAnswerAfterCompletion(t *testing.T) {
	e := NewEngine(nil)
	s := e.Start(sessionQuestions(2))
	e.End()

	e.Answer(0, 0)
	if s.Answers[0].Answered() {
		t.Error("answer recorded on a completed session")
	}
	e.GoTo(1)
	if s.CurrentIndex != 0 {
		t.Error("navigation on a completed session moved the index")
	}
}
