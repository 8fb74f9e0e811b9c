package quiz

import (
	"fmt"
	"testing"

	"github.com/grilled-pork-chop/civitest/internal/bank"
)

// makeQuestions builds n questions of one topic and type with ids
// prefix-0..n-1, each with one correct of two choices.
func makeQuestions(prefix string, topic bank.Topic, qtype bank.QuestionType, n int) []bank.Question {
	out := make([]bank.Question, n)
	for i := range out {
		out[i] = bank.Question{
			ID:    fmt.Sprintf("%s-%d", prefix, i),
			Text:  "question " + prefix,
			Type:  qtype,
			Topic: topic,
			Choices: []bank.Choice{
				{Label: "right", Correct: true},
				{Label: "wrong"},
			},
		}
	}
	return out
}

// abundantBank returns a bank with three times each topic's quota, honoring
// the situational mixes.
func abundantBank() []bank.Question {
	var qs []bank.Question
	for _, topic := range bank.TopicOrder {
		quota := bank.Quotas[topic]
		know := (quota.Target - quota.Situational) * 3
		sit := quota.Situational * 3
		qs = append(qs, makeQuestions(string(topic)+"-k", topic, bank.TypeKnowledge, know)...)
		qs = append(qs, makeQuestions(string(topic)+"-s", topic, bank.TypeSituational, sit)...)
	}
	return qs
}

func countByTopic(qs []bank.Question) map[bank.Topic]int {
	counts := make(map[bank.Topic]int)
	for _, q := range qs {
		counts[q.Topic]++
	}
	return counts
}

func countSituational(qs []bank.Question, topic bank.Topic) int {
	n := 0
	for _, q := range qs {
		if q.Topic == topic && q.Type == bank.TypeSituational {
			n++
		}
	}
	return n
}

func TestSelectQuestionsFillsQuotas(t *testing.T) {
	pool := abundantBank()

	for i := 0; i < 10; i++ {
		selected := SelectQuestions(pool, TotalQuestions, nil)

		if len(selected) != TotalQuestions {
			t.Fatalf("selected %d questions, want %d", len(selected), TotalQuestions)
		}

		counts := countByTopic(selected)
		for _, topic := range bank.TopicOrder {
			if counts[topic] != bank.Quotas[topic].Target {
				t.Errorf("topic %s: selected %d, want %d", topic, counts[topic], bank.Quotas[topic].Target)
			}
		}

		seen := make(map[string]bool)
		for _, q := range selected {
			if seen[q.ID] {
				t.Fatalf("duplicate question %s in selection", q.ID)
			}
			seen[q.ID] = true
		}
	}
}

func TestSelectQuestionsSituationalSubQuotas(t *testing.T) {
	pool := abundantBank()

	for i := 0; i < 10; i++ {
		selected := SelectQuestions(pool, TotalQuestions, nil)

		tests := []struct {
			topic bank.Topic
			want  int
		}{
			{bank.TopicRights, 2},
			{bank.TopicInstitutions, 3},
			{bank.TopicGovernment, 0},
			{bank.TopicHistory, 0},
			{bank.TopicGeography, 0},
		}
		for _, tt := range tests {
			if got := countSituational(selected, tt.topic); got != tt.want {
				t.Errorf("topic %s: %d situational, want %d", tt.topic, got, tt.want)
			}
		}
	}
}

func TestSelectQuestionsExactFitUsesWholeBank(t *testing.T) {
	// Bank holds exactly one exam's worth; selection must use every question.
	var pool []bank.Question
	for _, topic := range bank.TopicOrder {
		quota := bank.Quotas[topic]
		pool = append(pool, makeQuestions(string(topic)+"-k", topic, bank.TypeKnowledge, quota.Target-quota.Situational)...)
		pool = append(pool, makeQuestions(string(topic)+"-s", topic, bank.TypeSituational, quota.Situational)...)
	}

	selected := SelectQuestions(pool, TotalQuestions, nil)
	if len(selected) != TotalQuestions {
		t.Fatalf("selected %d questions, want %d", len(selected), TotalQuestions)
	}

	want := make(map[string]bool, len(pool))
	for _, q := range pool {
		want[q.ID] = true
	}
	for _, q := range selected {
		if !want[q.ID] {
			t.Errorf("unexpected question %s", q.ID)
		}
		delete(want, q.ID)
	}
	if len(want) != 0 {
		t.Errorf("%d bank questions never selected", len(want))
	}
}

func TestSelectQuestionsUnderFilledBank(t *testing.T) {
	// Only government questions, and fewer than its quota. The exam runs
	// short instead of failing.
	pool := makeQuestions("gov", bank.TopicGovernment, bank.TypeKnowledge, 7)

	selected := SelectQuestions(pool, TotalQuestions, nil)
	if len(selected) != 7 {
		t.Fatalf("selected %d questions, want 7", len(selected))
	}
}

func TestSelectQuestionsEmptyBank(t *testing.T) {
	if got := SelectQuestions(nil, TotalQuestions, nil); len(got) != 0 {
		t.Fatalf("selected %d questions from empty bank, want 0", len(got))
	}
}

func TestSelectQuestionsPrefersFresh(t *testing.T) {
	// 22 government questions, 11 recently used. With an exact-size fresh
	// pool the selection must consist of only fresh questions.
	fresh := makeQuestions("fresh", bank.TopicGovernment, bank.TypeKnowledge, 11)
	used := makeQuestions("used", bank.TopicGovernment, bank.TypeKnowledge, 11)
	pool := append(append([]bank.Question{}, fresh...), used...)

	usedIDs := make([]string, len(used))
	for i, q := range used {
		usedIDs[i] = q.ID
	}

	for i := 0; i < 10; i++ {
		selected := SelectQuestions(pool, TotalQuestions, [][]string{usedIDs})
		if len(selected) != 11 {
			t.Fatalf("selected %d questions, want 11", len(selected))
		}
		for _, q := range selected {
			if q.ID[:4] == "used" {
				t.Fatalf("recently used question %s selected while fresh ones remained", q.ID)
			}
		}
	}
}

func TestSelectQuestionsUsedFillAfterFresh(t *testing.T) {
	// Only 4 fresh questions; used ones must fill the remaining quota.
	fresh := makeQuestions("fresh", bank.TopicGovernment, bank.TypeKnowledge, 4)
	used := makeQuestions("used", bank.TopicGovernment, bank.TypeKnowledge, 11)
	pool := append(append([]bank.Question{}, fresh...), used...)

	usedIDs := make([]string, len(used))
	for i, q := range used {
		usedIDs[i] = q.ID
	}

	selected := SelectQuestions(pool, TotalQuestions, [][]string{usedIDs})
	if len(selected) != 11 {
		t.Fatalf("selected %d questions, want 11", len(selected))
	}
	freshCount := 0
	for _, q := range selected {
		if q.ID[:5] == "fresh" {
			freshCount++
		}
	}
	if freshCount != 4 {
		t.Errorf("selected %d fresh questions, want all 4", freshCount)
	}
}

func TestRecentIDSetWindow(t *testing.T) {
	sets := [][]string{
		{"old-1"},
		{"a"},
		{"b"},
		{"c", "d"},
	}

	recent := recentIDSet(sets, RecentSetWindow)

	for _, id := range []string{"a", "b", "c", "d"} {
		if !recent[id] {
			t.Errorf("id %s should be in the recent window", id)
		}
	}
	if recent["old-1"] {
		t.Error("id old-1 is outside the window and should not be recent")
	}
}
