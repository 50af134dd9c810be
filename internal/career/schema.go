package career

import (
	"embed"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

var (
	schemaMu    sync.Mutex
	schemaCache = map[RequestType]*gojsonschema.Schema{}
)

func loadSchema(t RequestType) (*gojsonschema.Schema, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()
	if s, ok := schemaCache[t]; ok {
		return s, nil
	}
	data, err := schemaFiles.ReadFile("schemas/" + string(t) + ".json")
	if err != nil {
		return nil, fmt.Errorf("load %s schema: %w", t, err)
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", t, err)
	}
	schemaCache[t] = s
	return s, nil
}

// validateSchema checks a reply payload against the embedded schema for t.
func validateSchema(t RequestType, payload []byte) error {
	s, err := loadSchema(t)
	if err != nil {
		return err
	}
	result, err := s.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return &DecodeError{Type: t, Fields: []FieldError{{Field: "(root)", Message: "payload is not valid JSON"}}, Cause: err}
	}
	if result.Valid() {
		return nil
	}
	out := &DecodeError{Type: t, Fields: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		out.Fields = append(out.Fields, FieldError{Field: field, Message: desc.Description()})
	}
	return out
}
