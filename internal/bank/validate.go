package bank

import "fmt"

// Limits on choice counts per question.
const (
	MinChoices = 2
	MaxChoices = 6
)

// ValidationError describes why a question record was rejected at the
// load boundary. Distinct from file read/parse errors so callers do not
// retry malformed data.
type ValidationError struct {
	QuestionID string // may be empty if the record has no id
	Message    string
}

func (e *ValidationError) Error() string {
	if e.QuestionID == "" {
		return fmt.Sprintf("invalid question: %s", e.Message)
	}
	return fmt.Sprintf("invalid question %q: %s", e.QuestionID, e.Message)
}

// Validate checks a question record against the bank invariants.
// Returns nil if the record is acceptable.
func Validate(q Question) *ValidationError {
	if q.ID == "" {
		return &ValidationError{Message: "id is empty"}
	}
	if q.Text == "" {
		return &ValidationError{QuestionID: q.ID, Message: "text is empty"}
	}
	if q.Type != TypeKnowledge && q.Type != TypeSituational {
		return &ValidationError{QuestionID: q.ID, Message: fmt.Sprintf("unknown type %q", q.Type)}
	}
	if _, ok := Quotas[q.Topic]; !ok {
		return &ValidationError{QuestionID: q.ID, Message: fmt.Sprintf("unknown topic %q", q.Topic)}
	}
	if len(q.Choices) < MinChoices || len(q.Choices) > MaxChoices {
		return &ValidationError{
			QuestionID: q.ID,
			Message:    fmt.Sprintf("choice count %d outside [%d, %d]", len(q.Choices), MinChoices, MaxChoices),
		}
	}
	correct := 0
	for i, c := range q.Choices {
		if c.Label == "" {
			return &ValidationError{QuestionID: q.ID, Message: fmt.Sprintf("choice %d has empty label", i)}
		}
		if c.Correct {
			correct++
		}
	}
	if correct == 0 {
		return &ValidationError{QuestionID: q.ID, Message: "no choice is marked correct"}
	}
	if q.Difficulty != "" && q.Difficulty != DifficultyEasy && q.Difficulty != DifficultyMedium && q.Difficulty != DifficultyHard {
		return &ValidationError{QuestionID: q.ID, Message: fmt.Sprintf("unknown difficulty %q", q.Difficulty)}
	}
	return nil
}
