package history

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grilled-pork-chop/civitest/internal/quiz"
	"github.com/grilled-pork-chop/civitest/internal/store"
)

// fakeKV is an in-memory KV with an injectable quota failure, so the
// trim-and-retry path can be exercised without a real database.
type fakeKV struct {
	data     map[string][]byte
	failSets int // fail this many Set calls with a quota error
	setCalls int
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string][]byte)}
}

func (f *fakeKV) Get(key string) ([]byte, error) {
	v, ok := f.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (f *fakeKV) Set(key string, value []byte) error {
	f.setCalls++
	if f.failSets > 0 {
		f.failSets--
		return fmt.Errorf("%w: injected", store.ErrQuotaExceeded)
	}
	f.data[key] = append([]byte(nil), value...)
	return nil
}

func (f *fakeKV) Delete(key string) error {
	delete(f.data, key)
	return nil
}

func result(id string, day int) quiz.Result {
	return quiz.Result{
		ID:             id,
		Date:           time.Date(2026, 3, day, 12, 0, 0, 0, time.UTC),
		Score:          33,
		TotalQuestions: 40,
		Percentage:     83,
		Passed:         true,
		TimeTaken:      1800,
	}
}

func TestNewServiceEmptyStore(t *testing.T) {
	svc, err := NewService(newFakeKV())
	require.NoError(t, err)
	assert.Empty(t, svc.Results())
	assert.Empty(t, svc.UsedQuestionSets())
}

func TestNewServiceCorruptBlobStartsFresh(t *testing.T) {
	kv := newFakeKV()
	kv.data[historyKey] = []byte(`{{{definitely not json`)

	svc, err := NewService(kv)
	require.NoError(t, err)
	assert.Empty(t, svc.Results())
}

func TestNewServiceLoadsExisting(t *testing.T) {
	kv := newFakeKV()
	svc, err := NewService(kv)
	require.NoError(t, err)
	svc.Append(result("r1", 1))

	reloaded, err := NewService(kv)
	require.NoError(t, err)
	results := reloaded.Results()
	require.Len(t, results, 1)
	assert.Equal(t, "r1", results[0].ID)
}

func TestResultsNewestFirst(t *testing.T) {
	svc, err := NewService(newFakeKV())
	require.NoError(t, err)

	svc.Append(result("r1", 1))
	svc.Append(result("r2", 2))
	svc.Append(result("r3", 3))

	results := svc.Results()
	require.Len(t, results, 3)
	assert.Equal(t, "r3", results[0].ID)
	assert.Equal(t, "r2", results[1].ID)
	assert.Equal(t, "r1", results[2].ID)

	assert.Equal(t, result("r3", 3).Date, svc.Snapshot().LastQuizDate)
}

func TestAppendUsedSetWindow(t *testing.T) {
	svc, err := NewService(newFakeKV())
	require.NoError(t, err)

	for i := 0; i < MaxUsedSets+4; i++ {
		out := svc.AppendUsedSet([]string{fmt.Sprintf("q-%d", i)})
		assert.True(t, out.Success)
	}

	sets := svc.UsedQuestionSets()
	require.Len(t, sets, MaxUsedSets)
	assert.Equal(t, []string{"q-4"}, sets[0], "oldest surviving set")
	assert.Equal(t, []string{fmt.Sprintf("q-%d", MaxUsedSets+3)}, sets[len(sets)-1])
}

func TestQuotaTrimAndRetry(t *testing.T) {
	kv := newFakeKV()
	svc, err := NewService(kv)
	require.NoError(t, err)

	for i := 0; i < TrimResultsCap+10; i++ {
		svc.Append(result(fmt.Sprintf("r%d", i), 1))
	}
	for i := 0; i < TrimSetsCap+3; i++ {
		svc.AppendUsedSet([]string{fmt.Sprintf("s%d", i)})
	}

	// Next save hits the quota once; the retry after trimming succeeds.
	kv.failSets = 1
	out := svc.Append(result("latest", 2))

	assert.True(t, out.Success)
	assert.True(t, out.QuotaExceeded)
	assert.True(t, out.Trimmed)

	results := svc.Results()
	require.Len(t, results, TrimResultsCap)
	assert.Equal(t, "latest", results[0].ID, "the triggering result must survive the trim")
	assert.Len(t, svc.UsedQuestionSets(), TrimSetsCap)
}

func TestQuotaPersistentFailureKeepsMemory(t *testing.T) {
	kv := newFakeKV()
	svc, err := NewService(kv)
	require.NoError(t, err)

	kv.failSets = 2 // first write and the post-trim retry both fail
	out := svc.Append(result("r1", 1))

	assert.False(t, out.Success)
	assert.True(t, out.QuotaExceeded)
	assert.True(t, out.Trimmed)

	// The result is still available for this run.
	require.Len(t, svc.Results(), 1)
}

func TestClear(t *testing.T) {
	kv := newFakeKV()
	svc, err := NewService(kv)
	require.NoError(t, err)
	svc.Append(result("r1", 1))
	svc.AppendUsedSet([]string{"q1"})

	require.NoError(t, svc.Clear())

	assert.Empty(t, svc.Results())
	assert.Empty(t, svc.UsedQuestionSets())
	assert.NotContains(t, kv.data, historyKey)
}

func TestRecorderInterface(t *testing.T) {
	svc, err := NewService(newFakeKV())
	require.NoError(t, err)

	var rec quiz.Recorder = svc
	rec.RecordResult(result("r1", 1))
	rec.RecordUsedSet([]string{"q1", "q2"})

	assert.Len(t, svc.Results(), 1)
	assert.Len(t, svc.UsedQuestionSets(), 1)
}

func TestExportImportRoundTrip(t *testing.T) {
	src, err := NewService(newFakeKV())
	require.NoError(t, err)
	src.Append(result("r1", 1))
	src.Append(result("r2", 2))
	src.AppendUsedSet([]string{"q1", "q2"})

	data, err := src.Export()
	require.NoError(t, err)

	dst, err := NewService(newFakeKV())
	require.NoError(t, err)
	require.NoError(t, dst.Import(data))

	assert.Equal(t, src.Snapshot(), dst.Snapshot())
}

func TestImportRejectsSyntax(t *testing.T) {
	svc, err := NewService(newFakeKV())
	require.NoError(t, err)
	svc.Append(result("keep", 1))

	err = svc.Import([]byte(`{not json`))

	var ierr *ImportError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, ImportSyntax, ierr.Kind)

	results := svc.Results()
	require.Len(t, results, 1, "history must be untouched after a rejected import")
	assert.Equal(t, "keep", results[0].ID)
}

func TestImportRejectsStructure(t *testing.T) {
	svc, err := NewService(newFakeKV())
	require.NoError(t, err)
	svc.Append(result("keep", 1))

	tests := []struct {
		name    string
		payload string
	}{
		{"missing results", `{"somethingElse": []}`},
		{"results not an array", `{"results": 42}`},
		{"result missing required fields", `{"results": [{"id": "x"}]}`},
		{"top level not an object", `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Import([]byte(tt.payload))
			var ierr *ImportError
			require.ErrorAs(t, err, &ierr)
			assert.Equal(t, ImportStructure, ierr.Kind)
		})
	}

	results := svc.Results()
	require.Len(t, results, 1)
	assert.Equal(t, "keep", results[0].ID)
}

func TestImportTrimsUsedSets(t *testing.T) {
	sets := make([][]string, MaxUsedSets+5)
	for i := range sets {
		sets[i] = []string{fmt.Sprintf("q-%d", i)}
	}
	payload, err := json.Marshal(History{
		Results:          []quiz.Result{result("r1", 1)},
		UsedQuestionSets: sets,
	})
	require.NoError(t, err)

	svc, err := NewService(newFakeKV())
	require.NoError(t, err)
	require.NoError(t, svc.Import(payload))

	got := svc.UsedQuestionSets()
	require.Len(t, got, MaxUsedSets)
	assert.Equal(t, []string{"q-5"}, got[0])
}

func TestImportRevertsOnPersistFailure(t *testing.T) {
	kv := newFakeKV()
	svc, err := NewService(kv)
	require.NoError(t, err)
	svc.Append(result("keep", 1))

	payload, err := json.Marshal(History{Results: []quiz.Result{result("new", 2)}})
	require.NoError(t, err)

	kv.failSets = 2 // both the save and the post-trim retry fail
	err = svc.Import(payload)
	require.Error(t, err)

	results := svc.Results()
	require.Len(t, results, 1)
	assert.Equal(t, "keep", results[0].ID)
}
