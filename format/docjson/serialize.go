package docjson

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/scholarly-tools/litingest/doc"
	"github.com/scholarly-tools/litingest/format"
)

// Serialize writes documents as JSON. A single document is written as one
// object (the artifact shape); multiple documents as an array.
func (f *Format) Serialize(w io.Writer, documents []*doc.Document, opts *format.SerializeOptions) error {
	if opts == nil {
		opts = format.NewSerializeOptions()
	}

	encoder := json.NewEncoder(w)
	if opts.Pretty {
		encoder.SetIndent("", "  ")
	}

	if len(documents) == 1 {
		if err := encoder.Encode(documents[0]); err != nil {
			return fmt.Errorf("encoding document: %w", err)
		}
		return nil
	}
	if err := encoder.Encode(documents); err != nil {
		return fmt.Errorf("encoding documents: %w", err)
	}
	return nil
}

// Marshal renders one document to the artifact bytes the batch driver writes.
func Marshal(document *doc.Document) ([]byte, error) {
	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return append(data, '\n'), nil
}
