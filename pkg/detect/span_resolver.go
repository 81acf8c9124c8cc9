package detect

import "sort"

// OverlapStrategy names the tie-breaking rule applied when two spans with
// DIFFERENT normalized entity types partially overlap (spec.md §4.11 step
// 3e). It has no effect on same-type overlaps (always merged) or exact
// containment (the container always wins).
type OverlapStrategy int

const (
	// HigherConfidence keeps the span with the larger calibrated confidence.
	HigherConfidence OverlapStrategy = iota
	// HigherTier keeps the span from the higher-authority detector tier.
	HigherTier
	// LongerSpan keeps the span covering more characters.
	LongerSpan
)

// resolveSpans sorts spans by (start, -tier, -confidence) and runs a single
// left-to-right pass that deduplicates and merges overlapping spans, per
// spec.md §4.11. strategy breaks ties between different entity types;
// HigherConfidence is the documented default.
//
// The corrected merge behavior (spec.md §9 redesign flag): when two spans
// of the SAME normalized entity type merge, the winner's Text is
// RE-EXTRACTED from the original input via text[newStart:newEnd], not built
// by concatenating the losing spans' Text fields. The Python original built
// the merged text by string concatenation of whichever fragments it had
// kept, which silently corrupted the output whenever a merge widened the
// interval beyond the union of the literal fragments (e.g. a gap between
// two spans that belongs to neither). Re-slicing the source text is always
// correct.
func resolveSpans(text string, spans []Span, strategy OverlapStrategy) []Span {
	if len(spans) < 2 {
		return append([]Span(nil), spans...)
	}
	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		if sorted[i].Tier != sorted[j].Tier {
			return sorted[i].Tier > sorted[j].Tier
		}
		return sorted[i].Confidence > sorted[j].Confidence
	})

	var stack []Span
	for _, s := range sorted {
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if s.Start >= top.End {
				break
			}
			// top and s overlap (possibly one contains the other).
			sameType := NormalizeEntityType(s.EntityType) == NormalizeEntityType(top.EntityType)
			sameInterval := s.Start == top.Start && s.End == top.End
			contains := (top.Start <= s.Start && top.End >= s.End) || (s.Start <= top.Start && s.End >= top.End)

			switch {
			case sameInterval:
				// Exact same (start,end): keep higher tier, ties by
				// confidence — spec.md step 3b is explicit about this
				// ordering regardless of the configured overlap strategy.
				if s.Tier > top.Tier || (s.Tier == top.Tier && s.Confidence > top.Confidence) {
					stack[len(stack)-1] = s
				}
			case contains && !sameType:
				// One span strictly contains the other: keep the container,
				// regardless of type (spec.md §4.11 step 3c).
				container := *top
				if top.End-top.Start < s.End-s.Start {
					container = s
				}
				stack[len(stack)-1] = container
			case sameType:
				// Partial (or full) overlap, same entity type: merge into the
				// union interval with identity from the higher-priority span.
				winner := *top
				if better(s, strategy, *top) {
					winner = s
				}
				newStart, newEnd := top.Start, top.End
				if s.Start < newStart {
					newStart = s.Start
				}
				if s.End > newEnd {
					newEnd = s.End
				}
				winner.Start, winner.End = newStart, newEnd
				winner.Text = text[newStart:newEnd]
				stack[len(stack)-1] = winner
			default:
				// Partial overlap, different entity types: the strategy picks
				// a single winner unchanged; the loser is discarded entirely.
				if better(s, strategy, *top) {
					stack[len(stack)-1] = s
				}
			}
			// The incoming span has been consumed by comparison against the
			// stack top (either merged into it, replaced it, or lost to it).
			s = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				break
			}
		}
		stack = append(stack, s)
	}
	return stack
}

// better reports whether candidate should win over current under the given
// overlap-breaking strategy. Ties fall back to tier, then confidence, so the
// function is total.
func better(candidate Span, strategy OverlapStrategy, current Span) bool {
	switch strategy {
	case HigherTier:
		if candidate.Tier != current.Tier {
			return candidate.Tier > current.Tier
		}
		return candidate.Confidence > current.Confidence
	case LongerSpan:
		cl, rl := candidate.End-candidate.Start, current.End-current.Start
		if cl != rl {
			return cl > rl
		}
		return candidate.Confidence > current.Confidence
	default: // HigherConfidence
		if candidate.Confidence != current.Confidence {
			return candidate.Confidence > current.Confidence
		}
		return candidate.Tier > current.Tier
	}
}
