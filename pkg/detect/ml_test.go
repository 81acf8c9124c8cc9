package detect

import "testing"

func TestChunkTextUnderLimitIsSingleChunk(t *testing.T) {
	chunks := ChunkText("short text", 300, 20)
	if len(chunks) != 1 || chunks[0].Offset != 0 || chunks[0].Text != "short text" {
		t.Fatalf("expected a single passthrough chunk, got %+v", chunks)
	}
}

func TestChunkTextSplitsOverlongTextWithOverlap(t *testing.T) {
	text := make([]byte, 1000)
	for i := range text {
		text[i] = 'a'
	}
	chunks := ChunkText(string(text), 300, 20)
	if len(chunks) != 4 {
		t.Fatalf("expected 4 overlapping chunks, got %d: %+v", len(chunks), chunks)
	}
	if chunks[0].Offset != 0 || len(chunks[0].Text) != 300 {
		t.Errorf("unexpected first chunk: offset=%d len=%d", chunks[0].Offset, len(chunks[0].Text))
	}
	if chunks[1].Offset >= chunks[0].Offset+len(chunks[0].Text) {
		t.Error("expected consecutive chunks to overlap")
	}
	last := chunks[len(chunks)-1]
	if last.Offset+len(last.Text) != len(text) {
		t.Errorf("expected the final chunk to reach the end of the input, got end=%d want=%d", last.Offset+len(last.Text), len(text))
	}
}

func TestExpandToWhitespaceWidensToWordBoundary(t *testing.T) {
	text := "the cat sat"
	start, end := ExpandToWhitespace(text, 5, 6)
	if start != 4 || end != 7 {
		t.Errorf("expected expansion to the full word 'cat' [4,7), got [%d,%d)", start, end)
	}
}

func TestTrimMLNameTrimsTrailingFiller(t *testing.T) {
	span := Span{Text: "Maria van der Berg said", EntityType: "NAME", Start: 0, End: len("Maria van der Berg said")}
	out := TrimMLName(span)
	if out.Text != "Maria van der Berg" {
		t.Errorf("expected trailing filler trimmed, got %q", out.Text)
	}
	if out.End != len("Maria van der Berg") {
		t.Errorf("expected End recalculated to match trimmed text, got %d", out.End)
	}
}

func TestTrimMLNameIgnoresNonNameSpan(t *testing.T) {
	span := Span{Text: "123 Main St said", EntityType: "ADDRESS", Start: 0, End: 17}
	out := TrimMLName(span)
	if out.Text != span.Text {
		t.Error("expected a non-name entity type to pass through untouched")
	}
}

func TestFilterFalsePositiveID(t *testing.T) {
	text := "item-AB12345 needs restocking"
	span := Span{EntityType: "MRN", Start: 5, End: 12}
	if !FilterFalsePositiveID(text, span) {
		t.Error("expected an MRN match preceded by a product-code prefix to be filtered")
	}
	other := Span{EntityType: "SSN", Start: 5, End: 12}
	if FilterFalsePositiveID(text, other) {
		t.Error("expected FilterFalsePositiveID to only apply to ID-family entity types")
	}
}

func TestMergeMLChunkSpansSameTypeUnion(t *testing.T) {
	text := "John Doe Smithsonian"
	spans := []Span{
		{Start: 0, End: 10, Text: text[0:10], EntityType: "NAME", Confidence: 0.6},
		{Start: 5, End: 15, Text: text[5:15], EntityType: "NAME", Confidence: 0.8},
	}
	merged := MergeMLChunkSpans(text, spans)
	if len(merged) != 1 {
		t.Fatalf("expected same-type overlapping spans to merge into one, got %d: %+v", len(merged), merged)
	}
	if merged[0].Start != 0 || merged[0].End != 15 {
		t.Errorf("expected merged span to cover the full union [0,15), got [%d,%d)", merged[0].Start, merged[0].End)
	}
	if merged[0].Confidence != 0.8 {
		t.Errorf("expected merged span to keep the higher confidence, got %v", merged[0].Confidence)
	}
	if merged[0].Text != text[0:15] {
		t.Errorf("expected merged span's Text re-sliced from source, got %q want %q", merged[0].Text, text[0:15])
	}
}

func TestMergeMLChunkSpansDifferentTypeHigherConfidenceWins(t *testing.T) {
	text := "John Doe jane@x.co"
	spans := []Span{
		{Start: 0, End: 10, EntityType: "NAME", Confidence: 0.5, Text: text[0:10]},
		{Start: 5, End: 12, EntityType: "EMAIL", Confidence: 0.9, Text: text[5:12]},
	}
	merged := MergeMLChunkSpans(text, spans)
	if len(merged) != 1 {
		t.Fatalf("expected overlapping different-type spans to collapse to one, got %d", len(merged))
	}
	if merged[0].EntityType != "EMAIL" {
		t.Errorf("expected the higher-confidence EMAIL span to win, got %q", merged[0].EntityType)
	}
}
