package bank

// QuestionType distinguishes fact-recall questions from applied-scenario ones.
type QuestionType string

const (
	TypeKnowledge   QuestionType = "knowledge"
	TypeSituational QuestionType = "situational"
)

// Difficulty is the author-assigned difficulty of a question.
// Used for display and analytics, not for selection.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Topic is one of the five fixed subject areas covered by the exam.
type Topic string

const (
	TopicGovernment   Topic = "government"
	TopicRights       Topic = "rights"
	TopicHistory      Topic = "history"
	TopicInstitutions Topic = "institutions"
	TopicGeography    Topic = "geography"
)

// TopicOrder is the fixed order topics are processed in during selection.
var TopicOrder = []Topic{
	TopicGovernment,
	TopicRights,
	TopicHistory,
	TopicInstitutions,
	TopicGeography,
}

// Quota is the per-exam target for a topic. Situational is the number of
// questions within Target that must be situational type (0 = no sub-quota).
type Quota struct {
	Target      int
	Situational int
}

// Quotas maps each topic to its fixed per-exam quota.
// Targets sum to the standard exam length of 40.
var Quotas = map[Topic]Quota{
	TopicGovernment:   {Target: 11},
	TopicRights:       {Target: 6, Situational: 2},
	TopicHistory:      {Target: 11},
	TopicInstitutions: {Target: 8, Situational: 3},
	TopicGeography:    {Target: 4},
}

// DisplayName returns the topic name shown in the UI.
func (t Topic) DisplayName() string {
	switch t {
	case TopicGovernment:
		return "Principles of Government"
	case TopicRights:
		return "Rights & Responsibilities"
	case TopicHistory:
		return "History"
	case TopicInstitutions:
		return "Institutions"
	case TopicGeography:
		return "Geography & Symbols"
	}
	return string(t)
}

// Choice is a single answer option.
type Choice struct {
	Label   string `json:"label"`
	Correct bool   `json:"correct"`
}

// Question is an immutable record from the question bank.
// Records are validated at the load boundary and never mutated afterward.
type Question struct {
	ID          string       `json:"id"`
	Text        string       `json:"text"`
	Type        QuestionType `json:"type"`
	Topic       Topic        `json:"topic"`
	Choices     []Choice     `json:"choices"`
	Explanation string       `json:"explanation"`
	Difficulty  Difficulty   `json:"difficulty"`
}

// CorrectIndex returns the index of the first correct choice, or -1.
func (q Question) CorrectIndex() int {
	for i, c := range q.Choices {
		if c.Correct {
			return i
		}
	}
	return -1
}
