package errors

import (
	"math"
	"unicode"
)

// maxNodeIDLength bounds ids accepted from flags, query strings and tool calls.
const maxNodeIDLength = 64

// ValidateNodeID checks that id is usable as a node identifier.
// It does not check membership in any graph; see graph.Graph.Has for that.
//
// Rules:
//   - not empty
//   - at most 64 bytes
//   - no control characters or whitespace
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}
	if len(id) > maxNodeIDLength {
		return New(ErrCodeInvalidInput, "node id too long (max %d characters)", maxNodeIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "node id %q contains invalid characters", id)
		}
	}
	return nil
}

// ValidateWeight checks that w is a usable edge weight: finite and non-negative.
func ValidateWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return New(ErrCodeInvalidGraph, "edge weight must be finite, got %v", w)
	}
	if w < 0 {
		return New(ErrCodeInvalidGraph, "negative edge weight %v", w)
	}
	return nil
}
