// Package stats derives summary metrics from the result log. Everything here
// is a pure function over []quiz.Result: empty input yields zero values,
// never an error.
package stats

import (
	"math"

	"github.com/grilled-pork-chop/civitest/internal/bank"
	"github.com/grilled-pork-chop/civitest/internal/quiz"
)

// TrendLength is how many of the most recent results feed the trend.
const TrendLength = 10

// Statistics summarizes a result log.
type Statistics struct {
	TotalQuizzes     int
	AverageScore     int // average percentage, rounded
	PassRate         int // percentage of passed quizzes, rounded
	BestScore        int // highest percentage
	WorstScore       int // lowest percentage
	AverageTimeTaken int // seconds
	// RecentTrend holds the last TrendLength results' percentages,
	// oldest-first.
	RecentTrend []int
	// TopicTotals aggregates correct/total per topic across all results,
	// in the fixed topic order. Topics never attempted are omitted.
	TopicTotals []quiz.TopicPerformance
}

// Compute aggregates results. The input is expected newest-first, as
// returned by the history service.
func Compute(results []quiz.Result) Statistics {
	s := Statistics{TotalQuizzes: len(results)}
	if len(results) == 0 {
		return s
	}

	sumPct := 0
	sumTime := 0
	passed := 0
	best := results[0].Percentage
	worst := results[0].Percentage
	for _, r := range results {
		sumPct += r.Percentage
		sumTime += r.TimeTaken
		if r.Passed {
			passed++
		}
		if r.Percentage > best {
			best = r.Percentage
		}
		if r.Percentage < worst {
			worst = r.Percentage
		}
	}

	s.AverageScore = int(math.Round(float64(sumPct) / float64(len(results))))
	s.PassRate = quiz.Percent(passed, len(results))
	s.BestScore = best
	s.WorstScore = worst
	s.AverageTimeTaken = sumTime / len(results)
	s.RecentTrend = recentTrend(results)
	s.TopicTotals = topicTotals(results)
	return s
}

// recentTrend returns the last TrendLength percentages oldest-first.
func recentTrend(results []quiz.Result) []int {
	n := len(results)
	if n > TrendLength {
		n = TrendLength
	}
	trend := make([]int, n)
	// results are newest-first; reverse the head into oldest-first.
	for i := 0; i < n; i++ {
		trend[n-1-i] = results[i].Percentage
	}
	return trend
}

// topicTotals sums each topic's correct/total across all results.
func topicTotals(results []quiz.Result) []quiz.TopicPerformance {
	type tally struct{ correct, total int }
	byTopic := make(map[bank.Topic]*tally)
	for _, r := range results {
		for _, tp := range r.TopicPerformance {
			t := byTopic[tp.Topic]
			if t == nil {
				t = &tally{}
				byTopic[tp.Topic] = t
			}
			t.correct += tp.Correct
			t.total += tp.Total
		}
	}

	var totals []quiz.TopicPerformance
	for _, topic := range bank.TopicOrder {
		t, ok := byTopic[topic]
		if !ok || t.total == 0 {
			continue
		}
		totals = append(totals, quiz.TopicPerformance{
			Topic:      topic,
			Correct:    t.correct,
			Total:      t.total,
			Percentage: quiz.Percent(t.correct, t.total),
		})
	}
	return totals
}
