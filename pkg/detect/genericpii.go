package detect

import (
	"regexp"
	"strconv"
	"strings"
)

// GenericPIIDetector finds names, contact information, geography, and
// insurance/employment identifiers via regex with heuristic false-
// positive filtering. Tier = PATTERN. Grounded on spec.md §4.7 and
// original_source/core/detectors/{patterns,additional_patterns}.py; the
// additional-patterns sub-detector (EMPLOYER/AGE/HEALTH_PLAN_ID/
// MEMBER_ID/NPI-in-context/BANK_ROUTING/EMPLOYEE_ID) is folded into this
// same detector's registry rather than kept as a second Detector, per
// SPEC_FULL.md §3.2.
type GenericPIIDetector struct {
	patterns []PatternDef
}

func NewGenericPIIDetector() *GenericPIIDetector {
	return &GenericPIIDetector{patterns: genericPIIPatterns()}
}

func (d *GenericPIIDetector) Name() string     { return "generic_pii" }
func (d *GenericPIIDetector) Tier() Tier        { return TierPattern }
func (d *GenericPIIDetector) IsAvailable() bool { return len(d.patterns) > 0 }

func (d *GenericPIIDetector) Detect(text string) []Span {
	normalized, _ := normalizeUnicode(text)
	spans := runRegistry(d.patterns, normalized, d.Name(), d.Tier())

	out := spans[:0]
	for _, s := range spans {
		switch s.EntityType {
		case "NAME":
			if isFalsePositiveName(s.Text) {
				continue
			}
		case "AGE":
			if !ageInRange(s.Text) {
				continue
			}
		case "MRN", "MEMBER_ID":
			if hasProductCodePrefix(normalized, s.Start) {
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

var ageDigitsRE = regexp.MustCompile(`\d+`)

func ageInRange(value string) bool {
	m := ageDigitsRE.FindString(value)
	if m == "" {
		return false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return false
	}
	return n >= 0 && n <= 120
}

// hasProductCodePrefix checks whether the word immediately preceding
// start is a product-code prefix (SKU, ITEM, PART, ...), per spec.md
// §4.8.4's false-positive filter for ID-like types.
func hasProductCodePrefix(text string, start int) bool {
	i := start
	for i > 0 && (text[i-1] == ' ' || text[i-1] == '-' || text[i-1] == '_') {
		i--
	}
	j := i
	for j > 0 && isWordByte(text[j-1]) {
		j--
	}
	if j == i {
		return false
	}
	prefix := strings.ToLower(text[j:i])
	_, ok := productCodePrefixes[prefix]
	return ok
}

func isWordByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func genericPIIPatterns() []PatternDef {
	return []PatternDef{
		// Names with credential suffixes.
		pat(`\b(?:Dr\.?|Mr\.?|Mrs\.?|Ms\.?|Prof\.?)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,2})\b`,
			"NAME", 0.80, 1, nil),
		pat(`\b([A-Z][a-z]+\s+[A-Z][a-z]+),\s*(?:MD|DO|RN|NP|PA|DDS|DVM|PhD|Esq|CPA|LCSW)\b`,
			"NAME", 0.85, 1, nil),

		// Phones: US and international, with or without a label.
		pat(`\b(?:\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`, "PHONE", 0.85, 0, nil),
		pat(`\b\+\d{1,3}[-.\s]?\d{1,4}[-.\s]?\d{3,4}[-.\s]?\d{3,4}\b`, "PHONE", 0.75, 0, nil),
		pat(`(?i)\b(?:phone|tel|fax|cell|mobile)\s*[:\s]\s*([SBl\d][SBl\d.\s()-]{8,16}\d)\b`,
			"PHONE", 0.80, 1, nil),

		// Email.
		pat(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`, "EMAIL", 0.95, 0, nil),

		// IPv4 / IPv6.
		pat(`\b(?:(?:25[0-5]|2[0-4]\d|1?\d?\d)\.){3}(?:25[0-5]|2[0-4]\d|1?\d?\d)\b`, "IP_ADDRESS", 0.85, 0, nil),
		pat(`\b(?:[0-9a-fA-F]{1,4}:){7}[0-9a-fA-F]{1,4}\b`, "IP_ADDRESS", 0.85, 0, nil),

		// MAC address.
		pat(`\b(?:[0-9A-Fa-f]{2}:){5}[0-9A-Fa-f]{2}\b`, "MAC_ADDRESS", 0.90, 0, nil),

		// Addresses.
		pat(`\b\d{1,6}\s+(?:[NSEW]\.?\s+)?[A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)*\s+(?:Street|St|Avenue|Ave|Boulevard|Blvd|Road|Rd|Lane|Ln|Drive|Dr|Court|Ct|Place|Pl|Way|Circle|Cir)\.?\b`,
			"ADDRESS", 0.80, 0, nil),

		// ZIP.
		pat(`\b\d{5}(?:-\d{4})?\b`, "ZIP", 0.55, 0, nil),

		// Facility / pharmacy chains.
		pat(`\b(?:CVS|Walgreens|Rite Aid|Walmart Pharmacy)\b`, "PHARMACY", 0.80, 0, nil),
		pat(`(?i)\b([A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+)*\s+(?:Hospital|Medical Center|Clinic|Health System))\b`,
			"FACILITY", 0.78, 1, nil),

		// Medical record number.
		pat(`(?i)\b(?:MRN|medical\s+record\s+(?:number|no\.?|#))\s*[:\s#]*([A-Z0-9]{5,12})\b`, "MRN", 0.80, 1, nil),

		// Medicare Beneficiary Identifier (MBI): 11 chars, alternating
		// letter/digit pattern excluding S,L,O,I,B,Z in certain positions.
		pat(`\b[1-9][A-CEGHJ-KM-NP-R-TW-Y][A-Z0-9][0-9][-\s]?[A-CEGHJ-KM-NP-R-TW-Y][A-Z][0-9][-\s]?[A-CEGHJ-KM-NP-R-TW-Y][A-Z][0-9]{2}\b`,
			"HEALTH_PLAN_ID", 0.85, 0, nil),

		// --- additional_patterns.py folded in ---
		pat(`\b([A-Z][A-Za-z0-9&'-]*(?:\s+[A-Z][A-Za-z0-9&'-]*){0,5})\s+(?:Inc\.?|Corp\.?|Corporation|Company|Co\.?|LLC|L\.L\.C\.?|Ltd\.?|Limited|LP|L\.P\.?|LLP|PLC|Group|Holdings|Partners|Associates|Services|Solutions|Industries|Enterprises|International|Consulting|Technologies|Tech)\b`,
			"EMPLOYER", 0.85, 0, nil),
		pat(`(?i)\b(?:employer|employed\s+(?:at|by)|works?\s+(?:at|for)|company)\s*[:\s]+([A-Z][A-Za-z0-9\s&'-]{2,40}?)(?:[,.\n]|$)`,
			"EMPLOYER", 0.82, 1, nil),
		pat(`\b(\d{1,3})\s*[-–]?\s*(?:years?\s*old|year[-–]old|y/?o(?:ld)?|yo|yr\s*old)\b`, "AGE", 0.92, 0, nil),
		pat(`(?i)\b(?:age[d]?|patient\s+age|pt\.?\s+age)\s*[:\s]\s*(\d{1,3})\b`, "AGE", 0.90, 1, nil),
		pat(`(?i)\b(\d{1,3})[-–](?:year|yr)[-–]old\s+(?:male|female|patient|man|woman|child|infant|boy|girl|adult)\b`,
			"AGE", 0.93, 1, nil),
		pat(`(?i)\b(?:a|an)\s+(\d{1,3})[-\s]?(?:year|yr)[-\s]?old\b`, "AGE", 0.88, 1, nil),
		pat(`(?i)\b(?:member|subscriber|policy|group|plan|insurance|ins|beneficiary)\s*(?:id|#|no\.?|number|num)\s*[:\s#]*([A-Z0-9]{5,20})\b`,
			"HEALTH_PLAN_ID", 0.88, 1, nil),
		pat(`\b((?:BCBS|UHC|UHG|AETNA|CIGNA|HUMANA|KAISER|ANTHEM|WPS|TRICARE|CHAMPUS)[A-Z0-9]{4,15})\b`,
			"HEALTH_PLAN_ID", 0.90, 1, nil),
		pat(`(?i)\bmember\s*(?:id|#|number)\s*[:\s#]*([A-Z]{2,4}\d{6,12})\b`, "MEMBER_ID", 0.85, 1, nil),
		pat(`(?i)\b(?:NPI|national\s+provider\s+(?:id|identifier|number))\s*[:\s#]*([12]\d{9})\b`, "NPI", 0.95, 1, nil),
		pat(`(?i)\b(?:routing|ABA|RTN)\s*(?:number|#|no\.?)?\s*[:\s#]*(\d{9})\b`, "BANK_ROUTING", 0.90, 1, nil),
		pat(`(?i)\b(?:employee|staff|personnel|worker)\s*(?:id|#|number|no\.?)\s*[:\s#]*([A-Z0-9]{4,15})\b`,
			"EMPLOYEE_ID", 0.82, 1, nil),
	}
}
