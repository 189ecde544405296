package repositories

import (
	"encoding/json"
	"fmt"
)

const (
	// Document keys for the badger backend. Each store persists its whole
	// record set under a single key, mirroring the full read-modify-write
	// cycle of the flat-file backend.
	PostDocKey    = "doc:posts"
	AccountDocKey = "doc:accounts"
	TagDocKey     = "doc:tags"
)

// marshalDoc marshals a document to JSON
func marshalDoc(doc interface{}) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %v", err)
	}
	return data, nil
}

// unmarshalDoc unmarshals JSON data into a document
func unmarshalDoc(data []byte, doc interface{}) error {
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to unmarshal document: %v", err)
	}
	return nil
}
