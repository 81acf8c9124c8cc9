package detect

import "golang.org/x/text/unicode/norm"

// normalizeUnicode applies NFKC normalization, converting mathematical and
// stylistic Unicode variants (fullwidth, circled, bold-script digits/
// letters) to their plain ASCII equivalents so pattern matching and OCR-
// substitution handling (generic-PII phone detection, §4.7) see a
// consistent character set.
//
// Adapted from citadel's pkg/ml/normalize.go (NormalizeUnicode), which
// applies the same transform ahead of its prompt-injection obfuscation
// checks; here it runs ahead of the generic-PII and secrets detectors and
// the ML contract's chunking instead.
func normalizeUnicode(text string) (normalized string, wasNormalized bool) {
	normalized = norm.NFKC.String(text)
	wasNormalized = normalized != text
	return
}
