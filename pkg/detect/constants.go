package detect

import "time"

// MaxDetectorWorkers bounds the orchestrator's worker pool, matching
// original_source/core/constants.py's MAX_DETECTOR_WORKERS.
const MaxDetectorWorkers = 8

// DefaultDetectorTimeout is the per-detector wall-clock timeout (spec §5).
const DefaultDetectorTimeout = 120 * time.Second

// DefaultConfidenceThreshold is the span resolver's default drop threshold.
const DefaultConfidenceThreshold = 0.70

// DefaultMaxWorkers is the orchestrator's default pool size (spec §6).
const DefaultMaxWorkers = 4

// BERTMaxLength is the maximum token window BIO-tagging NER models in this
// family are commonly trained with; used to size ML chunking windows.
const BERTMaxLength = 512

// nameTypes is the set of entity types treated as "name family" for
// coreference expansion and name-trimming purposes.
var nameTypes = map[string]struct{}{
	"NAME":          {},
	"NAME_PATIENT":  {},
	"NAME_PROVIDER": {},
	"NAME_RELATIVE": {},
	"PERSON":        {},
	"PER":           {},
}

// IsNameEntityType reports whether entityType is in the name family,
// either directly or via the _PATIENT/_PROVIDER/_RELATIVE suffix
// convention used throughout the taxonomy.
func IsNameEntityType(entityType string) bool {
	if _, ok := nameTypes[entityType]; ok {
		return true
	}
	for _, suffix := range []string{"_PATIENT", "_PROVIDER", "_RELATIVE"} {
		if len(entityType) > len(suffix) && entityType[len(entityType)-len(suffix):] == suffix {
			return true
		}
	}
	return false
}

// nonNameWords are common words that are not name components; used by the
// ML contract's name-trimming helper to strip trailing filler from a
// name-family span.
var nonNameWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "is": {}, "was": {}, "were": {}, "are": {},
	"appears": {}, "appeared": {}, "seems": {}, "seemed": {}, "patient": {},
	"said": {}, "says": {}, "stated": {}, "reported": {}, "noted": {},
	"and": {}, "or": {}, "but": {}, "who": {}, "which": {}, "that": {},
	"at": {}, "in": {}, "on": {}, "to": {}, "of": {}, "for": {}, "with": {},
	"from": {}, "by": {}, "has": {}, "have": {}, "had": {}, "will": {},
	"would": {}, "can": {}, "could": {}, "should": {}, "may": {}, "might": {},
	"this": {}, "that's": {}, "it": {}, "he": {}, "she": {}, "they": {},
	"presents": {}, "presented": {}, "complains": {}, "complained": {},
	"arrived": {}, "admitted": {}, "discharged": {}, "visited": {},
	"mr": {}, "mrs": {}, "ms": {}, "dr": {}, "prof": {},
}

// nameConnectors are lowercase particles that may legitimately appear
// inside a surname and should not be trimmed as filler words.
var nameConnectors = map[string]struct{}{
	"van": {}, "von": {}, "de": {}, "del": {}, "della": {}, "la": {}, "le": {},
	"du": {}, "dos": {}, "das": {}, "ben": {}, "ibn": {}, "bin": {}, "al": {},
	"el": {}, "y": {}, "di": {}, "da": {}, "der": {}, "den": {}, "ter": {},
}

// productCodePrefixes are prefix words that, when found immediately before
// an otherwise-valid MRN/ID match, indicate the match is actually a product
// or inventory code rather than a medical record number.
var productCodePrefixes = map[string]struct{}{
	"sku": {}, "item": {}, "part": {}, "model": {}, "ref": {}, "cat": {},
	"inv": {}, "po": {}, "so": {}, "lot": {}, "batch": {}, "ser": {},
	"prod": {}, "art": {}, "stock": {}, "upc": {}, "ean": {}, "asin": {},
	"isbn": {}, "gtin": {}, "mpn": {}, "oem": {}, "ndc": {}, "abc": {}, "xyz": {},
}

// titleWords are honorifics stripped before comparing name-family spans by
// shared word tokens in the partial-name-linking pass.
var titleWords = map[string]struct{}{
	"dr": {}, "mr": {}, "mrs": {}, "ms": {}, "prof": {}, "rev": {},
	"jr": {}, "sr": {}, "ii": {}, "iii": {}, "iv": {},
}

// abbreviations are tokens ending in '.' that must not be treated as
// sentence boundaries by the coreference expander's sentence splitter.
var abbreviations = map[string]struct{}{
	"dr": {}, "mr": {}, "mrs": {}, "ms": {}, "jr": {}, "sr": {}, "prof": {},
	"rev": {}, "vs": {}, "etc": {}, "inc": {}, "ltd": {}, "corp": {},
}
