package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"finqa/internal/logging"
)

// Load reads a JSON dataset file into an ordered document corpus.
func Load(path string) ([]*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	docs, err := LoadReader(file)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}
	return docs, nil
}

// LoadReader decodes a JSON array of documents, preserving input order.
// Corpus order is the ranking tie-breaker, so it must survive loading intact.
func LoadReader(r io.Reader) ([]*Document, error) {
	var docs []*Document
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	kept := docs[:0]
	skipped := 0
	for _, doc := range docs {
		if doc == nil {
			skipped++
			continue
		}
		kept = append(kept, doc)
	}
	if skipped > 0 {
		logging.NewComponentLogger("corpus").Warn("skipped %d null dataset entries", skipped)
	}
	return kept, nil
}

// FilterAnswerable returns the documents that carry a question/answer pair,
// preserving corpus order.
func FilterAnswerable(docs []*Document) []*Document {
	out := make([]*Document, 0, len(docs))
	for _, doc := range docs {
		if doc.HasQA() {
			out = append(out, doc)
		}
	}
	return out
}
