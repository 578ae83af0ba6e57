// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/ytpicker/internal/core/domain"
)

// SearchDebounced fires once typing pauses. Seq identifies the keystroke
// that scheduled it; stale ticks are ignored.
type SearchDebounced struct {
	Seq   int
	Query string
}

// SearchCompleted carries search results back to the model.
// Results whose Seq is older than the current query are dropped.
type SearchCompleted struct {
	Seq    int
	Query  string
	Result domain.SearchResult
}

// VideoPicked is sent once the chosen video's label has been resolved.
type VideoPicked struct {
	ID    string
	Label string
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Cancelled signals the picker was closed without a choice.
type Cancelled struct{}
