package history

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ImportErrorKind distinguishes the two ways an import can be rejected.
type ImportErrorKind string

const (
	// ImportSyntax means the payload is not valid JSON at all.
	ImportSyntax ImportErrorKind = "syntax"
	// ImportStructure means the JSON parsed but does not have the
	// history shape.
	ImportStructure ImportErrorKind = "structure"
)

// ImportError reports why an import was rejected. The stored history is
// never touched when one is returned.
type ImportError struct {
	Kind ImportErrorKind
	Err  error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import rejected (%s): %v", e.Kind, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }

// historySchema describes the persisted History shape. Only the fields an
// older export is guaranteed to carry are required; the questions/answers
// review snapshot stays optional.
var historySchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"results": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":             map[string]any{"type": "string"},
					"date":           map[string]any{"type": "string"},
					"score":          map[string]any{"type": "integer"},
					"totalQuestions": map[string]any{"type": "integer"},
					"percentage":     map[string]any{"type": "integer"},
					"passed":         map[string]any{"type": "boolean"},
					"timeTaken":      map[string]any{"type": "integer"},
					"topicPerformance": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []any{"topic", "correct", "total", "percentage"},
						},
					},
				},
				"required": []any{"id", "date", "score", "totalQuestions", "percentage", "passed", "timeTaken"},
			},
		},
		"usedQuestionSets": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
	},
	"required": []any{"results"},
}

var (
	histSchemaOnce sync.Once
	histSchema     *jsonschema.Schema
	histSchemaErr  error
)

func compileHistorySchema() (*jsonschema.Schema, error) {
	histSchemaOnce.Do(func() {
		defBytes, err := json.Marshal(historySchema)
		if err != nil {
			histSchemaErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			histSchemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const schemaURL = "schema://quiz-history.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			histSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		histSchema, histSchemaErr = c.Compile(schemaURL)
	})
	return histSchema, histSchemaErr
}

// Export returns the full history as pretty-printed JSON, suitable for
// writing to a file. The same shape is accepted back by Import.
func (s *Service) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := json.MarshalIndent(s.hist, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}
	return raw, nil
}

// Import replaces the stored history with the given JSON payload after
// validating it. A syntactically invalid payload and a structurally invalid
// one are rejected with distinguishable *ImportError kinds, and in both
// cases the existing history is left untouched.
func (s *Service) Import(data []byte) error {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return &ImportError{Kind: ImportSyntax, Err: err}
	}

	schema, err := compileHistorySchema()
	if err != nil {
		return fmt.Errorf("compile history schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return &ImportError{Kind: ImportStructure, Err: err}
	}

	var incoming History
	if err := json.Unmarshal(data, &incoming); err != nil {
		return &ImportError{Kind: ImportStructure, Err: err}
	}
	if n := len(incoming.UsedQuestionSets); n > MaxUsedSets {
		incoming.UsedQuestionSets = incoming.UsedQuestionSets[n-MaxUsedSets:]
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	previous := s.hist
	s.hist = incoming
	if out := s.saveLocked(); !out.Success {
		s.hist = previous
		return fmt.Errorf("imported history could not be persisted")
	}
	return nil
}
