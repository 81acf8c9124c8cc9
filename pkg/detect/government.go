package detect

import "strings"

// GovernmentDetector finds classification markings and government
// contracting identifiers. Tier = PATTERN, grounded on spec.md §4.6 and
// original_source/core/detectors/government.py.
type GovernmentDetector struct {
	patterns []PatternDef
}

func NewGovernmentDetector() *GovernmentDetector {
	return &GovernmentDetector{patterns: governmentPatterns()}
}

func (d *GovernmentDetector) Name() string     { return "government" }
func (d *GovernmentDetector) Tier() Tier        { return TierPattern }
func (d *GovernmentDetector) IsAvailable() bool { return len(d.patterns) > 0 }

// classificationContextWords must appear within classificationWindow
// characters of a bare "SECRET" match for it to qualify as a
// CLASSIFICATION_LEVEL, per spec.md §4.6 and original_source/core/
// detectors/government.py's _is_false_positive_classification.
var classificationContextWords = []string{
	"//", "classified", "clearance", "noforn", "sci", "fouo", "dissem",
	"caveat", "portion", "marking", "unclassified", "secret//", "//secret",
}

const classificationWindow = 50

func (d *GovernmentDetector) Detect(text string) []Span {
	spans := runRegistry(d.patterns, text, d.Name(), d.Tier())
	lower := strings.ToLower(text)
	out := spans[:0]
	for _, s := range spans {
		if s.EntityType == "CLASSIFICATION_LEVEL" && strings.EqualFold(s.Text, "SECRET") {
			if !hasClassificationContext(lower, s.Start, s.End) {
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

func hasClassificationContext(lower string, start, end int) bool {
	lo := start - classificationWindow
	if lo < 0 {
		lo = 0
	}
	hi := end + classificationWindow
	if hi > len(lower) {
		hi = len(lower)
	}
	window := lower[lo:hi]
	for _, kw := range classificationContextWords {
		if strings.Contains(window, kw) {
			return true
		}
	}
	return false
}

func governmentPatterns() []PatternDef {
	return []PatternDef{
		pat(`\bTOP SECRET(?://[A-Z/]+)?\b`, "CLASSIFICATION_MARKING", 0.96, 0, nil),
		pat(`\bSECRET(?://[A-Z/]+)\b`, "CLASSIFICATION_MARKING", 0.95, 0, nil),
		pat(`\bSECRET\b`, "CLASSIFICATION_LEVEL", 0.70, 0, nil),
		pat(`\bCONFIDENTIAL\b`, "CLASSIFICATION_LEVEL", 0.60, 0, nil),
		pat(`\bUNCLASSIFIED(?://FOUO)?\b`, "CLASSIFICATION_LEVEL", 0.60, 0, nil),
		pat(`\bCUI(?://[A-Z/]+)?\b`, "CLASSIFICATION_LEVEL", 0.65, 0, nil),
		pat(`//(SI|TK|HCS|COMINT|GAMMA|KLONDIKE)\b`, "SCI_MARKING", 0.90, 0, nil),
		pat(`\bREL TO [A-Z, ]+\b`, "DISSEMINATION_CONTROL", 0.88, 0, nil),
		pat(`\bNOFORN\b`, "DISSEMINATION_CONTROL", 0.90, 0, nil),
		pat(`\bORCON\b`, "DISSEMINATION_CONTROL", 0.88, 0, nil),
		pat(`\b(?:CAGE|Cage Code)\s*[:#]?\s*([0-9A-Z]{5})\b`, "CAGE_CODE", 0.88, 1, nil),
		pat(`\bDUNS\s*[:#]?\s*(\d{9})\b`, "DUNS_NUMBER", 0.90, 1, nil),
		pat(`\bUEI\s*[:#]?\s*([A-Z0-9]{12})\b`, "UEI", 0.90, 1, nil),
		pat(`\b[A-Z]{2}[0-9]{4}-[0-9]{2}-[A-Z]-[0-9]{4}\b`, "DOD_CONTRACT", 0.85, 0, nil),
		pat(`\bGS-[0-9]{2}[A-Z]-[0-9]{4}[A-Z]\b`, "GSA_CONTRACT", 0.85, 0, nil),
		pat(`\b(?:TOP SECRET|SECRET|CONFIDENTIAL)\s+clearance\b`, "CLEARANCE_LEVEL", 0.85, 0, nil),
		pat(`\bITAR[- ]controlled\b`, "ITAR_MARKING", 0.88, 0, nil),
		pat(`\bEAR99\b`, "EAR_MARKING", 0.85, 0, nil),
		pat(`\bExport Controlled\b`, "EAR_MARKING", 0.70, 0, nil),
	}
}
