package llm

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiledSchemas caches compiled schemas keyed by name plus serialized
// definition, so two schemas sharing a name never collide.
var compiledSchemas sync.Map // map[string]*jsonschema.Schema

// checkReply extracts JSON from a raw reply and validates it against the
// schema. Returns the clean JSON on success and *ErrInvalidReply otherwise.
func checkReply(schema *Schema, raw json.RawMessage) (json.RawMessage, error) {
	content, err := ExtractJSON(raw)
	if err != nil {
		return nil, &ErrInvalidReply{Content: raw, Err: err}
	}

	if schema == nil {
		return content, nil
	}

	var parsed any
	if err := json.Unmarshal(content, &parsed); err != nil {
		return nil, &ErrInvalidReply{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := compileSchema(schema)
	if err != nil {
		return nil, &ErrInvalidReply{Content: raw, Err: fmt.Errorf("compile schema %q: %w", schema.Name, err)}
	}

	if err := compiled.Validate(parsed); err != nil {
		return nil, &ErrInvalidReply{Content: raw, Err: fmt.Errorf("schema validation: %w", err)}
	}

	return content, nil
}

func compileSchema(schema *Schema) (*jsonschema.Schema, error) {
	// The compiler wants a parsed JSON value, not a Go map with arbitrary
	// types. Round-trip through encoding/json to normalize; the serialized
	// form doubles as the cache key.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}

	key := schema.Name + "\x00" + string(defBytes)
	if cached, ok := compiledSchemas.Load(key); ok {
		return cached.(*jsonschema.Schema), nil
	}

	var def any
	if err := json.Unmarshal(defBytes, &def); err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	compiledSchemas.Store(key, compiled)
	return compiled, nil
}
