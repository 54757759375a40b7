package tbucket

import (
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"
)

// configFile is the top-level JSON structure: a named set of bucket
// configurations, each an ordered list of bandwidths.
type configFile struct {
	Buckets map[string]bucketConfigJSON `json:"buckets"`
}

type bucketConfigJSON struct {
	Bandwidths []bandwidthJSON `json:"bandwidths"`
}

type bandwidthJSON struct {
	Capacity      int64  `json:"capacity"`
	InitialTokens int64  `json:"initial_tokens"`
	RefillTokens  int64  `json:"refill_tokens"`
	RefillPeriod  string `json:"refill_period"`
	Mode          string `json:"mode"`
}

// LoadConfiguration reads a JSON configuration file and builds the
// [BucketConfiguration] for the named bucket entry.
//
// This performs only structural decoding: the same shape rule
// [NewBucketConfiguration] already enforces (non-empty, ordered bandwidths)
// is surfaced as a decode-time error, but per-bandwidth invariants
// (capacity, refill_tokens, refill_period all positive) are left to
// [NewBandwidth], which this function calls for every entry. A malformed
// bandwidth therefore fails here with whatever error NewBandwidth returns,
// not a hand-rolled check duplicating it.
func LoadConfiguration(path, name string) (*BucketConfiguration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tbucket: read config: %w", err)
	}

	var cfg configFile
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("tbucket: parse config: %w", err)
	}

	raw, ok := cfg.Buckets[name]
	if !ok {
		return nil, fmt.Errorf("tbucket: bucket %q not found in config", name)
	}

	bandwidths := make([]Bandwidth, 0, len(raw.Bandwidths))

	for i, bw := range raw.Bandwidths {
		mode, err := parseRefillMode(bw.Mode)
		if err != nil {
			return nil, fmt.Errorf("tbucket: bucket %q: bandwidth %d: %w", name, i, err)
		}

		period, err := time.ParseDuration(bw.RefillPeriod)
		if err != nil {
			return nil, fmt.Errorf(
				"tbucket: bucket %q: bandwidth %d: refill_period: %w",
				name, i, err,
			)
		}

		b, err := NewBandwidth(bw.Capacity, bw.InitialTokens, bw.RefillTokens, period, mode)
		if err != nil {
			return nil, fmt.Errorf("tbucket: bucket %q: bandwidth %d: %w", name, i, err)
		}

		bandwidths = append(bandwidths, b)
	}

	cfg2, err := NewBucketConfiguration(bandwidths...)
	if err != nil {
		return nil, fmt.Errorf("tbucket: bucket %q: %w", name, err)
	}

	return cfg2, nil
}

// parseRefillMode maps a config string to a [RefillMode]. An empty string
// defaults to greedy, the common case.
func parseRefillMode(s string) (RefillMode, error) {
	switch s {
	case "", "greedy":
		return Greedy, nil
	case "intervally":
		return Intervally, nil
	default:
		return 0, fmt.Errorf("unknown refill mode %q", s)
	}
}

// writeFile is a minimal helper used by tests to create temporary JSON
// config files.
func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
