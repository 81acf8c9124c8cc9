package detect

import "testing"

func TestResolveSpansNonOverlappingPassThrough(t *testing.T) {
	text := "Alice called Bob yesterday."
	spans := []Span{
		{Start: 0, End: 5, Text: "Alice", EntityType: "NAME", Tier: TierPattern, Confidence: 0.8},
		{Start: 13, End: 16, Text: "Bob", EntityType: "NAME", Tier: TierPattern, Confidence: 0.8},
	}
	got := resolveSpans(text, spans, HigherConfidence)
	if len(got) != 2 {
		t.Fatalf("expected 2 spans unchanged, got %d", len(got))
	}
}

func TestResolveSpansMergesOverlapByTier(t *testing.T) {
	text := "SSN 123-45-6789 found here."
	spans := []Span{
		{Start: 4, End: 15, Text: "123-45-6789", EntityType: "SSN", Tier: TierChecksum, Confidence: 0.97},
		{Start: 4, End: 11, Text: "123-45-", EntityType: "SSN", Tier: TierPattern, Confidence: 0.99},
	}
	got := resolveSpans(text, spans, HigherConfidence)
	if len(got) != 1 {
		t.Fatalf("expected overlapping spans to merge into one, got %d", len(got))
	}
	if got[0].EntityType != "SSN" {
		t.Errorf("expected the higher-tier span to win identity, got %q", got[0].EntityType)
	}
	if got[0].Text != text[got[0].Start:got[0].End] {
		t.Errorf("merged span text %q does not match re-sliced source %q", got[0].Text, text[got[0].Start:got[0].End])
	}
}

func TestResolveSpansMergeWidensIntervalCorrectly(t *testing.T) {
	// The corrected behavior: when a merge widens the interval beyond
	// either original span, the winner's Text must be re-extracted from
	// the source, not concatenated from the losing fragments.
	text := "ABCDEFGHIJ"
	spans := []Span{
		{Start: 2, End: 5, Text: "CDE", EntityType: "X", Tier: TierPattern, Confidence: 0.6},
		{Start: 4, End: 8, Text: "EFGH", EntityType: "X", Tier: TierPattern, Confidence: 0.9},
	}
	got := resolveSpans(text, spans, HigherConfidence)
	if len(got) != 1 {
		t.Fatalf("expected one merged span, got %d", len(got))
	}
	if got[0].Start != 2 || got[0].End != 8 {
		t.Fatalf("expected merged interval [2:8], got [%d:%d]", got[0].Start, got[0].End)
	}
	if got[0].Text != "CDEFGH" {
		t.Errorf("expected re-sliced text %q, got %q", "CDEFGH", got[0].Text)
	}
}

func TestResolveSpansDifferentTypesDiscardsLoser(t *testing.T) {
	// Partial overlap, different entity types: the strategy picks a single
	// winner unchanged; no union span is produced (spec.md §4.11 step 3e).
	text := "call 555-123-4567x ext"
	spans := []Span{
		{Start: 5, End: 18, Text: "555-123-4567x", EntityType: "PHONE", Tier: TierPattern, Confidence: 0.9},
		{Start: 16, End: 22, Text: "x ext", EntityType: "EXTENSION", Tier: TierPattern, Confidence: 0.5},
	}
	got := resolveSpans(text, spans, HigherConfidence)
	if len(got) != 1 {
		t.Fatalf("expected the lower-confidence overlapping span discarded, got %d spans", len(got))
	}
	if got[0].EntityType != "PHONE" {
		t.Errorf("expected PHONE to win on HigherConfidence strategy, got %q", got[0].EntityType)
	}
	if got[0].Start != 5 || got[0].End != 18 {
		t.Errorf("winner's interval must stay unchanged (no union), got [%d:%d]", got[0].Start, got[0].End)
	}
}

func TestResolveSpansContainmentKeepsContainer(t *testing.T) {
	text := "Dr. Jane Smith MD"
	spans := []Span{
		{Start: 4, End: 14, Text: "Jane Smith", EntityType: "NAME", Tier: TierPattern, Confidence: 0.85},
		{Start: 4, End: 17, Text: "Jane Smith MD", EntityType: "NAME_PROVIDER", Tier: TierPattern, Confidence: 0.80},
	}
	got := resolveSpans(text, spans, HigherConfidence)
	if len(got) != 1 {
		t.Fatalf("expected the container to win, got %d spans", len(got))
	}
	if got[0].Start != 4 || got[0].End != 17 {
		t.Errorf("expected the containing span's interval [4:17], got [%d:%d]", got[0].Start, got[0].End)
	}
}

func TestResolveSpansIdempotent(t *testing.T) {
	text := "SSN 123-45-6789 and card 4111-1111-1111-1111 here"
	spans := []Span{
		{Start: 4, End: 15, Text: "123-45-6789", EntityType: "SSN", Tier: TierChecksum, Confidence: 0.97},
		{Start: 4, End: 11, Text: "123-45-", EntityType: "SSN", Tier: TierPattern, Confidence: 0.99},
		{Start: 25, End: 45, Text: "4111-1111-1111-1111", EntityType: "CREDIT_CARD", Tier: TierChecksum, Confidence: 0.96},
	}
	once := resolveSpans(text, spans, HigherConfidence)
	twice := resolveSpans(text, once, HigherConfidence)
	if len(once) != len(twice) {
		t.Fatalf("resolve is not idempotent: %d spans then %d spans", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("span %d changed on second resolve pass: %+v vs %+v", i, once[i], twice[i])
		}
	}
}
