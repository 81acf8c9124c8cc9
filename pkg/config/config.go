// Package config builds DetectionConfig values: the tunables an
// Orchestrator is constructed with (worker count, detector timeout,
// confidence floor, which detector families run, coreference on/off).
package config

import (
	"os"
	"strconv"
	"time"
)

// DetectionConfig collects the knobs an Orchestrator is built from.
// Grounded on this package's own clampInt/GetEnvInt contract (the only
// surviving fragment of the teacher's config package) generalized from
// citadel's ScorerConfig-style env-var-driven construction to this
// module's detection-pipeline knobs.
type DetectionConfig struct {
	Detectors         []string
	MaxWorkers        int
	DetectorTimeout   time.Duration
	ConfidenceFloor   float64
	EnableCoreference bool
	StrictValidation  bool

	// OverlapStrategy names the span-resolver tie-break rule for partially
	// overlapping spans of different entity types (spec.md §4.11): one of
	// "HIGHER_CONFIDENCE" (default), "HIGHER_TIER", "LONGER_SPAN".
	OverlapStrategy string
}

const (
	minWorkers = 1
	maxWorkers = 8
)

// NewDefaultConfig runs every shipped pattern-family detector (the ML
// stub is skipped automatically since it reports IsAvailable() == false)
// with a 4-worker pool, a 120s per-detector timeout, a 0.70 confidence
// floor, and coreference enabled.
func NewDefaultConfig() *DetectionConfig {
	return &DetectionConfig{
		Detectors:         []string{"checksum", "financial", "government", "generic_pii", "secrets", "ml"},
		MaxWorkers:        clampInt(GetEnvInt("DETECT_MAX_WORKERS", 4), minWorkers, maxWorkers),
		DetectorTimeout:   120 * time.Second,
		ConfidenceFloor:   0.70,
		EnableCoreference: true,
		StrictValidation:  false,
		OverlapStrategy:   "HIGHER_CONFIDENCE",
	}
}

// Full is an alias for NewDefaultConfig's detector set, named for
// symmetry with Quick/PatternsOnly below.
func Full() *DetectionConfig {
	return NewDefaultConfig()
}

// PatternsOnly skips the checksum tier, for callers who only want regex-
// validated signal (faster, lower precision) without the stricter
// checksum-gated detectors.
func PatternsOnly() *DetectionConfig {
	cfg := NewDefaultConfig()
	cfg.Detectors = []string{"financial", "government", "generic_pii", "secrets"}
	return cfg
}

// Quick runs only the checksum and secrets detectors — the two families
// with the lowest false-positive rate — with coreference disabled, for
// latency-sensitive call sites.
func Quick() *DetectionConfig {
	return &DetectionConfig{
		Detectors:         []string{"checksum", "secrets"},
		MaxWorkers:        clampInt(GetEnvInt("DETECT_MAX_WORKERS", 2), minWorkers, maxWorkers),
		DetectorTimeout:   30 * time.Second,
		ConfidenceFloor:   0.80,
		EnableCoreference: false,
		StrictValidation:  false,
		OverlapStrategy:   "HIGHER_CONFIDENCE",
	}
}

// NewHighSecurityConfig runs every detector including the checksum tier
// with a lower confidence floor (catch more, at the cost of more false
// positives) and strict span validation, for compliance-sensitive
// pipelines that would rather fail loudly than silently drop a
// malformed span.
func NewHighSecurityConfig() *DetectionConfig {
	cfg := NewDefaultConfig()
	cfg.ConfidenceFloor = 0.50
	cfg.StrictValidation = true
	cfg.DetectorTimeout = 180 * time.Second
	return cfg
}

// clampInt restricts val to [min, max].
func clampInt(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// GetEnvInt reads key from the environment as an integer, falling back
// to def when the variable is unset or not a valid integer.
func GetEnvInt(key string, def int) int {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
