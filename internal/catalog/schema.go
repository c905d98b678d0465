package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const documentSchemaURL = "schema://psyquest-catalog.json"

var (
	questionDef = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{"type": "string", "minLength": 1},
			"options": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"a": map[string]any{"type": "string", "minLength": 1},
					"b": map[string]any{"type": "string", "minLength": 1},
					"c": map[string]any{"type": "string", "minLength": 1},
					"d": map[string]any{"type": "string"},
				},
				"required":             []any{"a", "b", "c"},
				"additionalProperties": false,
			},
			"scores": map[string]any{
				"type":          "object",
				"propertyNames": map[string]any{"pattern": "^[A-Da-d]$"},
				"additionalProperties": map[string]any{
					"type":    "integer",
					"minimum": 0,
					"maximum": 9,
				},
			},
		},
		"required":             []any{"text", "options"},
		"additionalProperties": false,
	}

	resultDef = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"key":        map[string]any{"type": "string"},
			"title":      map[string]any{"type": "string", "minLength": 1},
			"desc":       map[string]any{"type": "string"},
			"color":      map[string]any{"type": "string"},
			"strengths":  map[string]any{"type": "string"},
			"weaknesses": map[string]any{"type": "string"},
			"advice":     map[string]any{"type": "string"},
			"quests":     map[string]any{"type": "string"},
			"imageUrl":   map[string]any{"type": "string"},
			"range": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"min": map[string]any{"type": "integer"},
					"max": map[string]any{"type": "integer"},
				},
				"required":             []any{"min", "max"},
				"additionalProperties": false,
			},
		},
		"required":             []any{"title"},
		"additionalProperties": false,
	}

	contentDef = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{"type": "array", "items": questionDef},
			"results":   map[string]any{"type": "array", "items": resultDef},
		},
		"additionalProperties": false,
	}

	scoringDef = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"type":     map[string]any{"enum": []any{"TRAIT_COUNT", "SCORE_RANGE"}},
			"encoding": map[string]any{"enum": []any{"ascending", "descending", "per_question"}},
			"tieBreak": map[string]any{"enum": []any{"first", "last"}},
			"bucket": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"letter": map[string]any{"enum": []any{"A", "B", "C", "D"}},
					"tiers": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"min": map[string]any{"type": "integer", "minimum": 0},
								"key": map[string]any{"type": "string", "minLength": 1},
							},
							"required":             []any{"min", "key"},
							"additionalProperties": false,
						},
					},
					"otherwise": map[string]any{"type": "string", "minLength": 1},
				},
				"required":             []any{"letter", "tiers", "otherwise"},
				"additionalProperties": false,
			},
		},
		"required":             []any{"type"},
		"additionalProperties": false,
	}

	// documentSchema describes a catalog file after YAML decoding.
	documentSchema = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"version": map[string]any{"type": "string"},
			"tests": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":          map[string]any{"type": "string", "minLength": 1},
						"title":       map[string]any{"type": "string", "minLength": 1},
						"description": map[string]any{"type": "string"},
						"imageUrl":    map[string]any{"type": "string"},
						"genderBased": map[string]any{"type": "boolean"},
						"scoring":     scoringDef,
						"questions":   map[string]any{"type": "array", "items": questionDef},
						"results":     map[string]any{"type": "array", "items": resultDef},
						"gender": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"male":   contentDef,
								"female": contentDef,
							},
							"additionalProperties": false,
						},
					},
					"required":             []any{"id", "title", "scoring"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"tests"},
		"additionalProperties": false,
	}
)

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// compiledSchema compiles documentSchema once.
func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a parsed JSON value, not Go maps with typed slices.
		defBytes, err := json.Marshal(documentSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(documentSchemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(documentSchemaURL)
	})
	return compiled, compileErr
}

// validateDocument checks a decoded catalog document against the schema.
// doc must be a JSON-shaped value (maps, slices, float64, string, bool).
func validateDocument(doc any) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("catalog schema: %w", err)
	}
	return nil
}
