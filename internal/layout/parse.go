package layout

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/myron-alexander/srcalc/internal/domain"
)

//go:embed layout.schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
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
		if err := compiler.AddResource("layout.schema.json", doc); err != nil {
			schemaErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile("layout.schema.json")
	})
	return schema, schemaErr
}

// Parse validates raw JSON against the schema, rejects duplicate object keys,
// and returns the definitions with item names normalized to lowercase.
func Parse(data []byte) (*Definitions, error) {
	sch, err := compiledSchema()
	if err != nil {
		return nil, err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse layout: %v", domain.ErrInvalidLayout, err)
	}
	if err := sch.Validate(inst); err != nil {
		return nil, fmt.Errorf("%w: layout failed schema validation: %v", domain.ErrInvalidLayout, err)
	}
	if err := checkDuplicateKeys(data); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidLayout, err)
	}

	var defs Definitions
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("%w: failed to decode layout: %v", domain.ErrInvalidLayout, err)
	}

	defs.normalize()
	return &defs, nil
}

// LoadFile reads and parses a layout file.
func LoadFile(path string) (*Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file: %w", err)
	}
	return Parse(data)
}

// checkDuplicateKeys walks the raw JSON token stream and rejects any object
// that names the same key twice. encoding/json silently keeps the last
// duplicate, which would hide a mistyped machine or factory ID.
func checkDuplicateKeys(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	return checkValue(dec)
}

func checkValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return nil
	}
	switch delim {
	case '{':
		seen := make(map[string]struct{})
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return err
			}
			key := keyTok.(string)
			if _, dup := seen[key]; dup {
				return fmt.Errorf("duplicate key '%s'", key)
			}
			seen[key] = struct{}{}
			if err := checkValue(dec); err != nil {
				return err
			}
		}
		if _, err := dec.Token(); err != nil {
			return err
		}
	case '[':
		for dec.More() {
			if err := checkValue(dec); err != nil {
				return err
			}
		}
		if _, err := dec.Token(); err != nil {
			return err
		}
	}
	return nil
}

// normalize lowercases every item name so lookups match the database. IDs are
// left as written.
func (d *Definitions) normalize() {
	for _, site := range d.Sites {
		for _, fac := range site.Factories {
			for id, m := range fac.Machines {
				m.Item = normName(m.Item)
				m.Variant = normName(m.Variant)
				fac.Machines[id] = m
			}
			for id, out := range fac.Outputs {
				out.DispatchedItem = normName(out.DispatchedItem)
				fac.Outputs[id] = out
			}
			for id, st := range fac.Storage {
				for i := range st.Items {
					st.Items[i] = normName(st.Items[i])
				}
				fac.Storage[id] = st
			}
		}
	}
}

func normName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
