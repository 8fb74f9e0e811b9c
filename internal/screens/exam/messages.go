package exam

import (
	"time"

	"github.com/grilled-pork-chop/civitest/internal/quiz"
)

// examStartedMsg is sent when selection finished and the session is live.
type examStartedMsg struct {
	Session *quiz.Session
}

// timerTickMsg is sent every second to drive the countdown.
type timerTickMsg time.Time

// examOverMsg is sent to trigger the end-of-exam flow (timer expiry or an
// explicit finish).
type examOverMsg struct{}
