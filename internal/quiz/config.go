package quiz

import "time"

// Fixed exam parameters. These mirror the real exam and are not
// user-configurable.
const (
	// TotalQuestions is the standard exam length.
	TotalQuestions = 40

	// TimeLimit is the exam duration.
	TimeLimit = 45 * time.Minute

	// TimeLimitSeconds is TimeLimit expressed in whole seconds, the unit
	// the session countdown is tracked in.
	TimeLimitSeconds = int(TimeLimit / time.Second)

	// PassingPercentage is the minimum percentage required to pass.
	PassingPercentage = 80

	// RecentSetWindow is how many of the most recent used-question-id sets
	// are treated as "recently used" during selection.
	RecentSetWindow = 3
)
