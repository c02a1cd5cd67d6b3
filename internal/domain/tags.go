package domain

import (
	"encoding/json"
	"fmt"
)

// EncodeTags serializes a tag list to its persisted JSON form. Nil and empty
// lists both encode to "[]" so a stored blob is never absent or empty text.
func EncodeTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	// json.Marshal cannot fail for a []string.
	blob, _ := json.Marshal(tags)
	return string(blob)
}

// DecodeTags parses a persisted tag blob back into an ordered tag list.
// A malformed blob is a corrupt-data condition: this server only ever writes
// blobs produced by EncodeTags, so the error path is defensive.
func DecodeTags(blob string) ([]string, error) {
	var tags []string
	if err := json.Unmarshal([]byte(blob), &tags); err != nil {
		return nil, fmt.Errorf("corrupt tag blob %q: %w", blob, err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}
