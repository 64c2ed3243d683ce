// Package requestspec parses the JSON request specification file: the item
// and rate to calculate for, plus any externally supplied inputs at specific
// points in the production chain.
package requestspec

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/myron-alexander/srcalc/internal/overrides"
)

//go:embed request.schema.json
var schemaJSON string

// Spec mirrors the JSON document shape.
type Spec struct {
	Request RequestDef `json:"request" validate:"required"`
	Inputs  []InputDef `json:"inputs,omitempty" validate:"dive"`
}

// RequestDef is the item request. ItemsPerMinute below 1 means "use the
// output of a single machine", decided by the caller who has the database.
type RequestDef struct {
	Item           string  `json:"item" validate:"required"`
	ItemsPerMinute float64 `json:"items_per_minute" validate:"gte=0"`
}

// InputDef is one externally supplied input.
type InputDef struct {
	ForItem      []string `json:"for_item" validate:"required,min=1,dive,required"`
	ProvidedItem string   `json:"provided_item" validate:"required"`
	ProvidedIPM  float64  `json:"provided_ipm" validate:"gte=0"`
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error

	validate = validator.New()
)

// compiledSchema compiles the embedded schema once.
func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("failed to parse embedded schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("request.schema.json", doc); err != nil {
			schemaErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile("request.schema.json")
	})
	return schema, schemaErr
}

// Parse validates raw JSON against the schema and struct tags and returns the
// spec with all item names normalized to lowercase.
func Parse(data []byte) (*Spec, error) {
	sch, err := compiledSchema()
	if err != nil {
		return nil, err
	}

	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse request spec: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return nil, fmt.Errorf("request spec failed schema validation: %w", err)
	}

	var spec Spec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to decode request spec: %w", err)
	}
	if err := validate.Struct(&spec); err != nil {
		return nil, fmt.Errorf("request spec failed validation: %w", err)
	}

	spec.normalize()
	return &spec, nil
}

// LoadFile reads and parses a request spec file.
func LoadFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request spec file: %w", err)
	}
	return Parse(data)
}

// normalize lowercases every item name so lookups match the database.
func (s *Spec) normalize() {
	s.Request.Item = normName(s.Request.Item)
	for i := range s.Inputs {
		in := &s.Inputs[i]
		in.ProvidedItem = normName(in.ProvidedItem)
		for j := range in.ForItem {
			in.ForItem[j] = normName(in.ForItem[j])
		}
	}
}

func normName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// OverrideEntries converts the spec inputs into override index entries.
func (s *Spec) OverrideEntries() []overrides.Entry {
	if len(s.Inputs) == 0 {
		return nil
	}
	entries := make([]overrides.Entry, 0, len(s.Inputs))
	for _, in := range s.Inputs {
		entries = append(entries, overrides.Entry{
			ForItem:      in.ForItem,
			ProvidedItem: in.ProvidedItem,
			ProvidedIPM:  in.ProvidedIPM,
		})
	}
	return entries
}
