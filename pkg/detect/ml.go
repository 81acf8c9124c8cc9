package detect

import (
	"sort"
	"strings"
)

// MLDetector is the contract any machine-learning NER implementation must
// satisfy (spec.md §4.8). The core never embeds a model runtime itself —
// "the weights themselves are externally supplied artifacts" — so this is
// an interface a caller's own ONNX/transformer-backed detector implements
// and registers with the Orchestrator.
type MLDetector interface {
	Detector
}

// StubMLDetector is the default no-op ML detector: IsAvailable reports
// false, so the orchestrator records its absence in DetectorsUsed rather
// than running it. Mirrors citadel's OSS-stub pattern for features whose
// concrete implementation lives outside the open module
// (pkg/ml/multiturn_stub.go, pkg/ml/tis_stub.go, pkg/ml/intent_client.go).
type StubMLDetector struct{}

func NewStubMLDetector() *StubMLDetector { return &StubMLDetector{} }

func (d *StubMLDetector) Name() string     { return "ml" }
func (d *StubMLDetector) Tier() Tier        { return TierML }
func (d *StubMLDetector) IsAvailable() bool { return false }
func (d *StubMLDetector) Detect(text string) []Span { return nil }

// ChunkText splits text into overlapping windows suitable for feeding a
// token-limited NER model, per spec.md §4.8.1: windows of at most
// maxChars, overlapping by at least minOverlap characters, preferring to
// break at a paragraph, then sentence, then line, then word boundary.
// Text at or under maxChars is returned as a single chunk with Offset 0.
type TextChunk struct {
	Text   string
	Offset int // character offset of Text[0] within the original input
}

func ChunkText(text string, maxChars, minOverlap int) []TextChunk {
	if len(text) <= maxChars {
		return []TextChunk{{Text: text, Offset: 0}}
	}
	var chunks []TextChunk
	start := 0
	for start < len(text) {
		end := start + maxChars
		if end >= len(text) {
			chunks = append(chunks, TextChunk{Text: text[start:], Offset: start})
			break
		}
		boundary := findBreakBoundary(text, start, end)
		chunks = append(chunks, TextChunk{Text: text[start:boundary], Offset: start})
		next := boundary - minOverlap
		if next <= start {
			next = boundary
		}
		start = next
	}
	return chunks
}

// findBreakBoundary looks backward from end (bounded by start) for a
// paragraph break, then sentence break, then line break, then word
// boundary, returning end unchanged if none is found within a reasonable
// lookback window.
func findBreakBoundary(text string, start, end int) int {
	lookback := end - 200
	if lookback < start {
		lookback = start
	}
	if idx := strings.LastIndex(text[lookback:end], "\n\n"); idx >= 0 {
		return lookback + idx + 2
	}
	for _, sep := range []string{". ", "! ", "? "} {
		if idx := strings.LastIndex(text[lookback:end], sep); idx >= 0 {
			return lookback + idx + len(sep)
		}
	}
	if idx := strings.LastIndex(text[lookback:end], "\n"); idx >= 0 {
		return lookback + idx + 1
	}
	if idx := strings.LastIndex(text[lookback:end], " "); idx >= 0 {
		return lookback + idx + 1
	}
	return end
}

// ExpandToWhitespace expands [start,end) outward to the nearest
// whitespace boundaries in text so a span never splits a token mid-word
// (spec.md §4.8.2).
func ExpandToWhitespace(text string, start, end int) (int, int) {
	for start > 0 && !isSpaceByte(text[start-1]) && isWordByte(text[start-1]) {
		start--
	}
	for end < len(text) && !isSpaceByte(text[end]) && isWordByte(text[end]) {
		end++
	}
	return start, end
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// TrimMLName applies the ML contract's name-trimming rule (spec.md
// §4.8.3) to a NAME-family span's text, returning the new End offset.
func TrimMLName(span Span) Span {
	if !IsNameEntityType(span.EntityType) {
		return span
	}
	trimmed, removed := trimNameSpan(span.Text)
	if removed == 0 {
		return span
	}
	span.Text = trimmed
	span.End = span.Start + len(trimmed)
	return span
}

// FilterFalsePositiveID reports whether an ID-typed span (MRN, ID, ...)
// should be dropped because it is preceded by a product-code prefix word,
// per spec.md §4.8.4.
func FilterFalsePositiveID(text string, span Span) bool {
	switch span.EntityType {
	case "MRN", "ID", "MEMBER_ID", "HEALTH_PLAN_ID":
		return hasProductCodePrefix(text, span.Start)
	default:
		return false
	}
}

func sortSpansByStart(spans []Span) {
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End < spans[j].End
	})
}

// MergeMLChunkSpans deduplicates spans produced across overlapping ML
// chunks, per spec.md §4.8.5: same-type overlaps merge into a union span,
// different-type overlaps keep the higher-confidence span. text is the
// original (unchunked) input, used to re-slice Text after a merge widens a
// span's interval — the same correctness fix as the span resolver's (see
// resolveSpans's doc comment): concatenating chunk fragments would corrupt
// the text whenever the merged interval includes characters neither
// fragment covered (the chunk overlap region itself).
func MergeMLChunkSpans(text string, spans []Span) []Span {
	if len(spans) < 2 {
		return append([]Span(nil), spans...)
	}
	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sortSpansByStart(sorted)

	result := make([]Span, 0, len(sorted))
	for _, s := range sorted {
		if len(result) == 0 {
			result = append(result, s)
			continue
		}
		last := &result[len(result)-1]
		if s.Start >= last.End {
			result = append(result, s)
			continue
		}
		// Overlap.
		if NormalizeEntityType(s.EntityType) == NormalizeEntityType(last.EntityType) {
			newStart := last.Start
			newEnd := last.End
			if s.End > newEnd {
				newEnd = s.End
			}
			if s.Confidence > last.Confidence {
				last.Confidence, last.Detector, last.EntityType = s.Confidence, s.Detector, s.EntityType
			}
			last.Start, last.End = newStart, newEnd
			last.Text = text[newStart:newEnd]
		} else if s.Confidence > last.Confidence {
			result[len(result)-1] = s
		}
	}
	return result
}
