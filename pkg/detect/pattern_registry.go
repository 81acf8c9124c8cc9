package detect

import "regexp"

// PatternDef is an immutable pattern-family entry: a compiled regex, the
// entity type it produces, a declared confidence, which capture group
// carries the value (0 = whole match), and an optional validator.
//
// Grounded on original_source/core/detectors/pattern_registry.py's
// PatternDefinition frozen dataclass and its _p() factory.
type PatternDef struct {
	Regex      *regexp.Regexp
	EntityType string
	Confidence float64
	Group      int
	Validator  func(string) bool

	// FailConfidence, when non-nil, is the raw confidence emitted — at a
	// downgraded TierPattern rather than this pattern's declared tier —
	// when Validator returns false, instead of dropping the match
	// entirely. Per spec.md §4.1/§4.3: a validator failure "lowers
	// confidence rather than reject" for some patterns (SSN structural
	// rules, Luhn, IBAN mod-97) while others simply drop. nil means
	// drop-on-fail, the default for most checksum patterns.
	FailConfidence *float64
}

// pat compiles pattern and returns a PatternDef. Panics on an invalid
// regex: pattern tables are built once at package init from literal
// strings, so a bad pattern is a programmer error caught at startup, not
// a runtime condition to recover from.
func pat(pattern, entityType string, confidence float64, group int, validator func(string) bool) PatternDef {
	return PatternDef{
		Regex:      regexp.MustCompile(pattern),
		EntityType: entityType,
		Confidence: confidence,
		Group:      group,
		Validator:  validator,
	}
}

// patLenient is pat plus a declared fail-confidence: the pattern is still
// emitted (at TierPattern, not its family's usual tier) when Validator
// returns false, rather than dropped.
func patLenient(pattern, entityType string, confidence float64, group int, validator func(string) bool, failConfidence float64) PatternDef {
	p := pat(pattern, entityType, confidence, group, validator)
	p.FailConfidence = &failConfidence
	return p
}

// runRegistry applies every pattern in registry to text and returns the
// resulting spans, following the algorithm in spec.md §4.2: non-
// overlapping matches per pattern, capture-group extraction, optional
// validator, then pattern-level dedup by (start,end) where the higher-
// confidence match wins (ties broken by registration order).
func runRegistry(registry []PatternDef, text, detectorName string, tier Tier) []Span {
	type key struct{ start, end int }
	best := make(map[key]Span)
	order := make(map[key]int)
	idx := 0

	for _, p := range registry {
		matches := p.Regex.FindAllStringSubmatchIndex(text, -1)
		for _, m := range matches {
			start, end := m[0], m[1]
			if p.Group > 0 {
				gi := p.Group * 2
				if gi+1 >= len(m) || m[gi] < 0 || m[gi+1] < 0 {
					continue
				}
				start, end = m[gi], m[gi+1]
			}
			if start >= end {
				continue
			}
			value := text[start:end]
			confidence := p.Confidence
			spanTier := tier
			if p.Validator != nil && !p.Validator(value) {
				if p.FailConfidence == nil {
					continue
				}
				// Validator failed but this pattern tolerates it: emit at
				// reduced confidence and a downgraded tier, since the span
				// is no longer checksum-authoritative.
				confidence = *p.FailConfidence
				spanTier = TierPattern
			}
			k := key{start, end}
			cur, exists := best[k]
			if !exists || confidence > cur.Confidence {
				best[k] = Span{
					Start:      start,
					End:        end,
					Text:       value,
					EntityType: p.EntityType,
					Confidence: confidence,
					Detector:   detectorName,
					Tier:       spanTier,
				}
				order[k] = idx
			}
			idx++
		}
	}

	spans := make([]Span, 0, len(best))
	for _, s := range best {
		spans = append(spans, s)
	}
	return spans
}

// Detector is the contract every pattern-family and ML detector satisfies.
// Grounded on original_source/core/detectors/base.py's BaseDetector.
type Detector interface {
	Name() string
	Tier() Tier
	Detect(text string) []Span
	IsAvailable() bool
}
