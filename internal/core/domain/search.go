package domain

import (
	"bytes"
	"encoding/json"
)

// DefaultMaxResults is used when a search asks for zero or fewer results.
const DefaultMaxResults = 10

// MinQueryLength is the shortest query a picker forwards to search.
const MinQueryLength = 3

// SearchResult is the outcome of a channel search: either an ordered list of
// videos in the remote relevance order, or an error message.
type SearchResult struct {
	// Videos are the hits in insertion (relevance) order.
	Videos []VideoSummary

	// Error is set when the search could not be performed.
	Error string
}

// SearchFailed builds an error-flagged result.
func SearchFailed(message string) SearchResult {
	return SearchResult{Error: message}
}

// Failed returns true if the result carries an error.
func (r SearchResult) Failed() bool {
	return r.Error != ""
}

// Titles returns the id -> title mapping. Ordering is only kept by Videos.
func (r SearchResult) Titles() map[string]string {
	titles := make(map[string]string, len(r.Videos))
	for _, v := range r.Videos {
		titles[v.ID] = v.Title
	}
	return titles
}

// MarshalJSON encodes the result as an ordered object {"<id>": "<title>"}
// or {"error": "<message>"}.
func (r SearchResult) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		return json.Marshal(map[string]string{"error": r.Error})
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	seen := make(map[string]bool, len(r.Videos))
	first := true
	for _, v := range r.Videos {
		if seen[v.ID] {
			continue
		}
		seen[v.ID] = true

		key, err := json.Marshal(v.ID)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(v.Title)
		if err != nil {
			return nil, err
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
