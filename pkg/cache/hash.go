package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Keyer builds cache keys. Implementations must be deterministic.
type Keyer interface {
	// ArtifactKey identifies one rendered output of a query.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds every option that changes rendered bytes.
type ArtifactKeyOpts struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Format   string `json:"format"`
	Style    string `json:"style,omitempty"`
	Animated bool   `json:"animated,omitempty"`
	Pinned   bool   `json:"pinned,omitempty"`

	// Timing only matters for animated output.
	Interval     time.Duration `json:"interval,omitempty"`
	StartupDelay time.Duration `json:"startup_delay,omitempty"`

	Scale  float64 `json:"scale,omitempty"`
	Labels string  `json:"labels,omitempty"` // serialized label offsets
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
