package search

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/abiiranathan/docsearch/document"
)

// Serialize writes the document snapshot to out so it can be searched later
// without re-running extraction. Uses gob encoding.
func Serialize(out string, docs []document.Document) error {
	w, err := os.Create(out)
	if err != nil {
		return err
	}
	defer w.Close()

	enc := gob.NewEncoder(w)
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("error encoding snapshot: %v", err)
	}
	return nil
}

// Deserialize reads a document snapshot written by Serialize.
// Uses gob decoding.
func Deserialize(in string) ([]document.Document, error) {
	r, err := os.Open(in)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	dec := gob.NewDecoder(r)
	var docs []document.Document
	if err := dec.Decode(&docs); err != nil {
		return nil, fmt.Errorf("error decoding snapshot: %v", err)
	}
	return docs, nil
}
