package detect

// ValidationMode selects how validateSpans reacts to an invariant
// violation, grounded on original_source/core/pipeline/span_validation.py.
type ValidationMode int

const (
	// ValidationLenient drops offending spans silently (the default).
	ValidationLenient ValidationMode = iota
	// ValidationStrict surfaces the first violation as an error.
	ValidationStrict
)

// validateSpans checks every span's offsets against text: 0 <= Start <
// End <= len(text), and len(text[Start:End]) == len(Text) (content is
// compared case-insensitively elsewhere as a warning signal, not here —
// length is the only condition that invalidates the offsets). In lenient
// mode offending spans are dropped and validation always succeeds; in
// strict mode the first violation is returned as a *ValidationError and
// processing stops.
func validateSpans(text string, spans []Span, mode ValidationMode) ([]Span, error) {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if reason := spanViolation(text, s); reason != "" {
			if mode == ValidationStrict {
				return nil, &ValidationError{Span: s, Reason: reason}
			}
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func spanViolation(text string, s Span) string {
	if s.Start < 0 || s.End < 0 {
		return "negative offset"
	}
	if s.Start >= s.End {
		return "empty or inverted span"
	}
	if s.End > len(text) {
		return "end beyond input length"
	}
	// Length match is mandatory; content mismatch is only a warning (spec.md
	// §4.13) since genericpii.go validates spans sliced from NFKC-normalized
	// text against the original, unnormalized input — case and width can
	// legitimately differ without the offsets themselves being wrong. A
	// same-length span is kept even when strings.EqualFold would report a
	// mismatch; only a length mismatch invalidates the offsets.
	if slice := text[s.Start:s.End]; len(slice) != len(s.Text) {
		return "text does not match input at offsets"
	}
	return ""
}
