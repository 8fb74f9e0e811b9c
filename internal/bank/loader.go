package bank

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// LoadResult reports what happened while loading a set of bank files.
type LoadResult struct {
	Questions []Question
	// Skipped lists files that could not be read or parsed, with the reason.
	Skipped map[string]error
	// Rejected lists question ids (or file:index for id-less records) that
	// failed validation, with the reason.
	Rejected map[string]*ValidationError
}

// ErrNoSources is returned when none of the given bank files could be loaded.
var ErrNoSources = errors.New("no question bank source could be loaded")

// LoadFiles reads and merges question bank files. Files that cannot be read
// or fail the shape check are skipped; the load succeeds as long as at least
// one file yields questions. Records failing semantic validation are dropped
// individually. Duplicate ids across files keep the first occurrence.
func LoadFiles(paths []string) (*LoadResult, error) {
	res := &LoadResult{
		Skipped:  make(map[string]error),
		Rejected: make(map[string]*ValidationError),
	}

	seen := make(map[string]bool)
	loadedAny := false

	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			res.Skipped[path] = err
			continue
		}
		if err := validateShape(raw); err != nil {
			res.Skipped[path] = err
			continue
		}

		var records []Question
		if err := json.Unmarshal(raw, &records); err != nil {
			// Shape check passed, so this should not happen; treat as a
			// skipped file rather than a fatal error.
			res.Skipped[path] = fmt.Errorf("decode: %w", err)
			continue
		}
		loadedAny = true

		for i, q := range records {
			if verr := Validate(q); verr != nil {
				key := q.ID
				if key == "" {
					key = fmt.Sprintf("%s[%d]", path, i)
				}
				res.Rejected[key] = verr
				continue
			}
			if seen[q.ID] {
				continue
			}
			seen[q.ID] = true
			res.Questions = append(res.Questions, q)
		}
	}

	if !loadedAny {
		return nil, fmt.Errorf("%w: %d file(s) failed", ErrNoSources, len(res.Skipped))
	}
	return res, nil
}

// TypeCount breaks a topic's supply down by question type.
type TypeCount struct {
	Knowledge   int
	Situational int
}

// Total returns the combined count for both types.
func (c TypeCount) Total() int { return c.Knowledge + c.Situational }

// Supply returns per-topic, per-type question counts for a loaded bank.
// Backs the `bank` command's supply table.
func Supply(questions []Question) map[Topic]TypeCount {
	supply := make(map[Topic]TypeCount, len(TopicOrder))
	for _, q := range questions {
		c := supply[q.Topic]
		if q.Type == TypeSituational {
			c.Situational++
		} else {
			c.Knowledge++
		}
		supply[q.Topic] = c
	}
	return supply
}
