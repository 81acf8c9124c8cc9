package detect

// tierFloor and tierCeiling bound the calibrated confidence a span of a
// given tier can land in, per spec.md §4.10 and grounded on
// original_source/core/pipeline/confidence.py. A higher tier both raises
// the floor and narrows the remaining band: a checksum-validated SSN
// can never calibrate below 0.90, while an ML guess can calibrate
// anywhere in [0, 0.50).
func tierFloor(t Tier) float64 {
	switch t {
	case TierChecksum:
		return 0.90
	case TierStructured:
		return 0.75
	case TierPattern:
		return 0.50
	default: // TierML
		return 0.0
	}
}

func tierCeiling(t Tier) float64 {
	switch t {
	case TierChecksum:
		return 1.0
	case TierStructured:
		return 0.90
	case TierPattern:
		return 0.75
	default: // TierML
		return 0.50
	}
}

// calibrateConfidence maps a detector's raw [0,1] confidence into its
// tier's band: floor + raw*(ceiling-floor). A pattern detector's raw 1.0
// calibrates to 0.75 (the top of PATTERN's band, still below STRUCTURED's
// floor), never to a value that would let a weak pattern match outrank a
// checksum-validated one.
func calibrateConfidence(tier Tier, raw float64) float64 {
	if raw < 0 {
		raw = 0
	}
	if raw > 1 {
		raw = 1
	}
	floor, ceiling := tierFloor(tier), tierCeiling(tier)
	return floor + raw*(ceiling-floor)
}

// calibrateSpans applies calibrateConfidence to every span's raw
// confidence in place, returning the same slice for chaining.
func calibrateSpans(spans []Span) []Span {
	for i := range spans {
		spans[i].Confidence = calibrateConfidence(spans[i].Tier, spans[i].Confidence)
	}
	return spans
}
