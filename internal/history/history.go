package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/grilled-pork-chop/civitest/internal/quiz"
	"github.com/grilled-pork-chop/civitest/internal/store"
)

// historyKey is the single key the whole history blob lives under.
const historyKey = "quiz-history"

// Retention limits. MaxUsedSets bounds the freshness window; the trim caps
// apply only when a save hits the storage quota (oldest-first eviction).
const (
	MaxUsedSets    = 10
	TrimResultsCap = 20
	TrimSetsCap    = 5
)

// History is the persisted shape: the append-only result log plus the
// rolling window of recently used question-id sets.
type History struct {
	Results          []quiz.Result `json:"results"`
	UsedQuestionSets [][]string    `json:"usedQuestionSets"`
	LastQuizDate     time.Time     `json:"lastQuizDate"`
}

// KV is the persistence collaborator the service writes through.
// *store.Store satisfies it.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

var _ KV = (*store.Store)(nil)

// SaveOutcome reports what a persistence attempt actually did.
type SaveOutcome struct {
	Success       bool
	QuotaExceeded bool // the first write hit the storage quota
	Trimmed       bool // history was trimmed before a retry
}

// Service owns the in-memory history and keeps it durable on a best-effort
// basis: a failed save is logged and the in-memory state stays intact.
type Service struct {
	mu   sync.Mutex
	kv   KV
	hist History
}

// NewService creates a Service and loads any existing history from kv.
// A corrupt stored blob is discarded with a warning rather than failing
// startup.
func NewService(kv KV) (*Service, error) {
	s := &Service{kv: kv}

	raw, err := kv.Get(historyKey)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if raw != nil {
		if err := json.Unmarshal(raw, &s.hist); err != nil {
			fmt.Fprintf(os.Stderr, "warning: stored history is corrupt, starting fresh: %v\n", err)
			s.hist = History{}
		}
	}
	return s, nil
}

// Snapshot returns a deep-enough copy of the current history for callers
// that need the whole blob (export, stats over used sets).
func (s *Service) Snapshot() History {
	s.mu.Lock()
	defer s.mu.Unlock()
	return History{
		Results:          append([]quiz.Result(nil), s.hist.Results...),
		UsedQuestionSets: append([][]string(nil), s.hist.UsedQuestionSets...),
		LastQuizDate:     s.hist.LastQuizDate,
	}
}

// Results returns all results newest-first.
func (s *Service) Results() []quiz.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]quiz.Result, len(s.hist.Results))
	for i, r := range s.hist.Results {
		out[len(out)-1-i] = r
	}
	return out
}

// UsedQuestionSets returns the rolling window of used id sets, oldest-first.
func (s *Service) UsedQuestionSets() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]string(nil), s.hist.UsedQuestionSets...)
}

// Append adds a result to the log and persists. On a quota failure the
// history is trimmed to the caps and the save retried once; if that still
// fails the result survives in memory and the outcome reports the failure.
func (s *Service) Append(r quiz.Result) SaveOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hist.Results = append(s.hist.Results, r)
	s.hist.LastQuizDate = r.Date
	return s.saveLocked()
}

// AppendUsedSet records the question ids of a started quiz, keeping at most
// MaxUsedSets entries.
func (s *Service) AppendUsedSet(ids []string) SaveOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hist.UsedQuestionSets = append(s.hist.UsedQuestionSets, append([]string(nil), ids...))
	if n := len(s.hist.UsedQuestionSets); n > MaxUsedSets {
		s.hist.UsedQuestionSets = s.hist.UsedQuestionSets[n-MaxUsedSets:]
	}
	return s.saveLocked()
}

// Clear wipes both the in-memory and the stored history.
func (s *Service) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hist = History{}
	return s.kv.Delete(historyKey)
}

// RecordResult implements quiz.Recorder. Persistence failures are logged;
// the completed result is never lost from memory.
func (s *Service) RecordResult(r quiz.Result) {
	if out := s.Append(r); !out.Success {
		fmt.Fprintln(os.Stderr, "warning: could not persist quiz result; it remains available this run only")
	}
}

// RecordUsedSet implements quiz.Recorder.
func (s *Service) RecordUsedSet(ids []string) {
	if out := s.AppendUsedSet(ids); !out.Success {
		fmt.Fprintln(os.Stderr, "warning: could not persist used-question set")
	}
}

func (s *Service) saveLocked() SaveOutcome {
	err := s.writeLocked()
	if err == nil {
		return SaveOutcome{Success: true}
	}
	if !errors.Is(err, store.ErrQuotaExceeded) {
		fmt.Fprintf(os.Stderr, "warning: save history: %v\n", err)
		return SaveOutcome{}
	}

	// Quota hit: evict oldest results and sets down to the caps, retry once.
	s.trimLocked()
	retryErr := s.writeLocked()
	if retryErr != nil {
		fmt.Fprintf(os.Stderr, "warning: save history after trim: %v\n", retryErr)
		return SaveOutcome{QuotaExceeded: true, Trimmed: true}
	}
	return SaveOutcome{Success: true, QuotaExceeded: true, Trimmed: true}
}

func (s *Service) writeLocked() error {
	raw, err := json.Marshal(s.hist)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	return s.kv.Set(historyKey, raw)
}

func (s *Service) trimLocked() {
	if n := len(s.hist.Results); n > TrimResultsCap {
		s.hist.Results = s.hist.Results[n-TrimResultsCap:]
	}
	if n := len(s.hist.UsedQuestionSets); n > TrimSetsCap {
		s.hist.UsedQuestionSets = s.hist.UsedQuestionSets[n-TrimSetsCap:]
	}
}
