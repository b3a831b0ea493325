package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is the JSON shape a reply must have. It is sent to the vendor as
// the structured-output format and also checked locally, since not every
// vendor enforces it strictly.
type Schema struct {
	// Name is the kebab-case format name sent to the vendor.
	Name        string
	Description string
	Definition  map[string]any

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

// Check validates raw against the schema. It returns a Malformed *Error
// naming provider when raw is not JSON or does not conform.
func (s *Schema) Check(provider string, raw json.RawMessage) error {
	s.once.Do(s.compile)
	if s.err != nil {
		return malformed(provider, raw, fmt.Errorf("compile schema %q: %w", s.Name, s.err))
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return malformed(provider, raw, fmt.Errorf("invalid JSON: %w", err))
	}
	if err := s.compiled.Validate(doc); err != nil {
		return malformed(provider, raw, err)
	}
	return nil
}

// compile round-trips the definition through JSON because the compiler
// wants decoded values (json.Number, []any), not Go literals.
func (s *Schema) compile() {
	def, err := json.Marshal(s.Definition)
	if err != nil {
		s.err = err
		return
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		s.err = err
		return
	}

	url := "mem://" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		s.err = err
		return
	}
	s.compiled, s.err = c.Compile(url)
}
