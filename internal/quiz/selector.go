package quiz

import "github.com/grilled-pork-chop/civitest/internal/bank"

// SelectQuestions assembles an exam's question set from the bank. Per topic,
// in the fixed topic order, it prefers questions whose ids do not appear in
// the last RecentSetWindow entries of recentSets, honoring the topic's
// situational sub-quota where one is configured. When a slice of the bank is
// smaller than its quota, the selection comes up short rather than failing;
// the exam still runs with whatever the bank can supply.
//
// The returned list is shuffled once more so topic order is not recoverable
// from question order.
func SelectQuestions(questions []bank.Question, total int, recentSets [][]string) []bank.Question {
	recent := recentIDSet(recentSets, RecentSetWindow)

	byTopic := make(map[bank.Topic][]bank.Question)
	for _, q := range questions {
		byTopic[q.Topic] = append(byTopic[q.Topic], q)
	}

	var selected []bank.Question
	remaining := total
	for _, topic := range bank.TopicOrder {
		if remaining <= 0 {
			break
		}
		quota := bank.Quotas[topic]
		target := quota.Target
		if target > remaining {
			target = remaining
		}

		pool := byTopic[topic]
		var picked []bank.Question
		if quota.Situational > 0 {
			picked = pickWithSubQuota(pool, target, quota.Situational, recent)
		} else {
			picked = takeFreshFirst(pool, target, recent)
		}
		selected = append(selected, picked...)
		remaining -= len(picked)
	}

	return Shuffle(selected)
}

// pickWithSubQuota partitions the pool by question type and fills the
// situational sub-quota and the knowledge remainder independently, each with
// freshness bias. Under-supply in either partition is accepted as-is.
func pickWithSubQuota(pool []bank.Question, target, situational int, recent map[string]bool) []bank.Question {
	var sit, know []bank.Question
	for _, q := range pool {
		if q.Type == bank.TypeSituational {
			sit = append(sit, q)
		} else {
			know = append(know, q)
		}
	}
	if situational > target {
		situational = target
	}
	picked := takeFreshFirst(sit, situational, recent)
	picked = append(picked, takeFreshFirst(know, target-situational, recent)...)
	return picked
}

// takeFreshFirst splits the pool into fresh and recently used questions,
// shuffles each part, and takes up to n from the fresh-then-used
// concatenation. Freshness is a bias, not an exclusion: used questions fill
// in once the fresh pool runs out.
func takeFreshFirst(pool []bank.Question, n int, recent map[string]bool) []bank.Question {
	if n <= 0 {
		return nil
	}
	var fresh, used []bank.Question
	for _, q := range pool {
		if recent[q.ID] {
			used = append(used, q)
		} else {
			fresh = append(fresh, q)
		}
	}
	ordered := append(Shuffle(fresh), Shuffle(used)...)
	if n > len(ordered) {
		n = len(ordered)
	}
	return ordered[:n]
}

// recentIDSet flattens the last window entries of recentSets into one
// exclusion set.
func recentIDSet(recentSets [][]string, window int) map[string]bool {
	recent := make(map[string]bool)
	start := len(recentSets) - window
	if start < 0 {
		start = 0
	}
	for _, set := range recentSets[start:] {
		for _, id := range set {
			recent[id] = true
		}
	}
	return recent
}
