package quiz

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/grilled-pork-chop/civitest/internal/bank"
)

// TopicPerformance is the per-topic slice of a scored result.
type TopicPerformance struct {
	Topic      bank.Topic `json:"topic"`
	Correct    int        `json:"correct"`
	Total      int        `json:"total"`
	Percentage int        `json:"percentage"`
}

// Result is the immutable scored outcome of a completed session. The
// Questions/Answers snapshot enables later review; results imported from an
// older format may lack it and then cannot be reviewed in detail.
type Result struct {
	ID               string             `json:"id"`
	Date             time.Time          `json:"date"`
	Score            int                `json:"score"`
	TotalQuestions   int                `json:"totalQuestions"`
	Percentage       int                `json:"percentage"`
	Passed           bool               `json:"passed"`
	TimeTaken        int                `json:"timeTaken"` // seconds
	TopicPerformance []TopicPerformance `json:"topicPerformance"`
	Questions        []bank.Question    `json:"questions,omitempty"`
	Answers          []Answer           `json:"answers,omitempty"`
}

// Reviewable reports whether the result carries the question/answer snapshot.
func (r Result) Reviewable() bool {
	return len(r.Questions) > 0 && len(r.Answers) > 0
}

// ScoreSession computes the result for a session. Topics with no questions
// in the session are omitted from the breakdown rather than reported as
// zero rows.
func ScoreSession(s *Session) Result {
	score := 0
	for _, a := range s.Answers {
		if a.IsCorrect {
			score++
		}
	}
	total := len(s.Questions)

	type tally struct{ correct, total int }
	byTopic := make(map[bank.Topic]*tally)
	for i, q := range s.Questions {
		t := byTopic[q.Topic]
		if t == nil {
			t = &tally{}
			byTopic[q.Topic] = t
		}
		t.total++
		if s.Answers[i].IsCorrect {
			t.correct++
		}
	}

	var breakdown []TopicPerformance
	for _, topic := range bank.TopicOrder {
		t, ok := byTopic[topic]
		if !ok {
			continue
		}
		breakdown = append(breakdown, TopicPerformance{
			Topic:      topic,
			Correct:    t.correct,
			Total:      t.total,
			Percentage: Percent(t.correct, t.total),
		})
	}

	percentage := Percent(score, total)

	questions := make([]bank.Question, len(s.Questions))
	for i, sq := range s.Questions {
		questions[i] = sq.Question
	}
	answers := append([]Answer(nil), s.Answers...)

	return Result{
		ID:               uuid.New().String(),
		Date:             s.CompletedAt,
		Score:            score,
		TotalQuestions:   total,
		Percentage:       percentage,
		Passed:           percentage >= PassingPercentage,
		TimeTaken:        TimeLimitSeconds - s.TimeRemaining,
		TopicPerformance: breakdown,
		Questions:        questions,
		Answers:          answers,
	}
}

// Percent returns round(100*correct/total), 0 when total is 0.
func Percent(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}
