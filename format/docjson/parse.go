package docjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/scholarly-tools/litingest/doc"
	"github.com/scholarly-tools/litingest/format"
)

// Parse reads canonical document JSON: either one object (an artifact) or an
// array of objects.
func (f *Format) Parse(r io.Reader, _ *format.ParseOptions) ([]*doc.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty input")
	}

	if trimmed[0] == '[' {
		var documents []*doc.Document
		if err := json.Unmarshal(trimmed, &documents); err != nil {
			return nil, fmt.Errorf("decoding documents: %w", err)
		}
		return documents, nil
	}

	var document doc.Document
	if err := json.Unmarshal(trimmed, &document); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return []*doc.Document{&document}, nil
}
