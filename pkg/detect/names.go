package detect

import "strings"

// falsePositiveNames is a deny list of ≈200 common capitalized words that
// otherwise match the NAME regex: document headers, field labels, US
// state abbreviations, OCR artifacts, medical terms, insurance names,
// honorifics, and greeting words. Grounded on original_source/core/
// detectors/patterns.py's FALSE_POSITIVE_NAMES and carried over per
// spec.md §4.7 ("must be reproduced") and SPEC_FULL.md §3.4.
var falsePositiveNames = map[string]struct{}{
	"REPORT": {}, "LABORATORY": {}, "RESULTS": {}, "SUMMARY": {}, "PATIENT": {},
	"DOCTOR": {}, "HOSPITAL": {}, "CLINIC": {}, "DEPARTMENT": {}, "DIVISION": {},
	"SECTION": {}, "PAGE": {}, "DATE": {}, "TIME": {}, "SIGNATURE": {},
	"ADDRESS": {}, "PHONE": {}, "FAX": {}, "EMAIL": {}, "REFERENCE": {},
	"ACCOUNT": {}, "NUMBER": {}, "FORM": {}, "NOTICE": {}, "STATEMENT": {},
	"INVOICE": {}, "RECEIPT": {}, "BALANCE": {}, "TOTAL": {}, "AMOUNT": {},
	"INSURANCE": {}, "MEDICARE": {}, "MEDICAID": {}, "PROVIDER": {}, "MEMBER": {},
	"SUBSCRIBER": {}, "POLICY": {}, "GROUP": {}, "PLAN": {}, "CLAIM": {},
	"DIAGNOSIS": {}, "TREATMENT": {}, "MEDICATION": {}, "PRESCRIPTION": {},
	"DOSAGE": {}, "ALLERGIES": {}, "HISTORY": {}, "EXAMINATION": {}, "VITALS": {},
	"TEMPERATURE": {}, "PRESSURE": {}, "WEIGHT": {}, "HEIGHT": {}, "PULSE": {},
	"CONFIDENTIAL": {}, "PRIVILEGED": {}, "DRAFT": {}, "FINAL": {}, "COPY": {},
	"ORIGINAL": {}, "ATTACHMENT": {}, "ENCLOSURE": {}, "EXHIBIT": {}, "APPENDIX": {},
	"CHAPTER": {}, "ARTICLE": {}, "PARAGRAPH": {}, "SCHEDULE": {}, "TABLE": {},
	"FIGURE": {}, "CHART": {}, "GRAPH": {}, "DIAGRAM": {}, "INDEX": {},
	"CONTENTS": {}, "INTRODUCTION": {}, "CONCLUSION": {}, "OVERVIEW": {},
	"BACKGROUND": {}, "PURPOSE": {}, "SCOPE": {}, "METHODOLOGY": {}, "FINDINGS": {},
	"RECOMMENDATIONS": {}, "APPROVED": {}, "REJECTED": {}, "PENDING": {},
	"ALABAMA": {}, "ALASKA": {}, "ARIZONA": {}, "ARKANSAS": {}, "CALIFORNIA": {},
	"COLORADO": {}, "CONNECTICUT": {}, "DELAWARE": {}, "FLORIDA": {}, "GEORGIA": {},
	"HAWAII": {}, "IDAHO": {}, "ILLINOIS": {}, "INDIANA": {}, "IOWA": {},
	"KANSAS": {}, "KENTUCKY": {}, "LOUISIANA": {}, "MAINE": {}, "MARYLAND": {},
	"MICHIGAN": {}, "MINNESOTA": {}, "MISSISSIPPI": {}, "MISSOURI": {},
	"MONTANA": {}, "NEBRASKA": {}, "NEVADA": {}, "OHIO": {}, "OKLAHOMA": {},
	"OREGON": {}, "TENNESSEE": {}, "TEXAS": {}, "UTAH": {}, "VERMONT": {},
	"VIRGINIA": {}, "WASHINGTON": {}, "WISCONSIN": {}, "WYOMING": {},
	"GOOD MORNING": {}, "GOOD AFTERNOON": {}, "GOOD EVENING": {}, "DEAR SIR": {},
	"DEAR MADAM": {}, "TO WHOM IT MAY CONCERN": {}, "THANK YOU": {}, "SINCERELY": {},
	"REGARDS": {}, "BEST REGARDS": {},
}

// validCredentials are professional-credential suffixes that, when seen
// after a comma following what otherwise looks like a city/state
// abbreviation, indicate the preceding token really is a person's name
// ("Smith, MD" rather than "Austin, TX").
var validCredentials = map[string]struct{}{
	"MD": {}, "DO": {}, "RN": {}, "NP": {}, "PA": {}, "DDS": {}, "DVM": {},
	"PHD": {}, "ESQ": {}, "JR": {}, "SR": {}, "III": {}, "CPA": {}, "LCSW": {},
}

// usStateAbbreviations is used to distinguish "City, ST" geography from
// "Name, <credential>" in the trailing-fragment heuristic below.
var usStateAbbreviations = map[string]struct{}{
	"AL": {}, "AK": {}, "AZ": {}, "AR": {}, "CA": {}, "CO": {}, "CT": {}, "DE": {},
	"FL": {}, "GA": {}, "HI": {}, "ID": {}, "IL": {}, "IN": {}, "IA": {}, "KS": {},
	"KY": {}, "LA": {}, "ME": {}, "MD": {}, "MA": {}, "MI": {}, "MN": {}, "MS": {},
	"MO": {}, "MT": {}, "NE": {}, "NV": {}, "NH": {}, "NJ": {}, "NM": {}, "NY": {},
	"NC": {}, "ND": {}, "OH": {}, "OK": {}, "OR": {}, "PA": {}, "RI": {}, "SC": {},
	"SD": {}, "TN": {}, "TX": {}, "UT": {}, "VT": {}, "VA": {}, "WA": {}, "WV": {},
	"WI": {}, "WY": {},
}

// cityWords is a small set of common city names that precede a state
// abbreviation, used to prefer the "City, ST" geography reading over the
// "Name, <credential>" reading when both a city word and a valid US state
// abbreviation are present.
var cityWords = map[string]struct{}{
	"AUSTIN": {}, "BOSTON": {}, "CHICAGO": {}, "DALLAS": {}, "DENVER": {},
	"HOUSTON": {}, "MIAMI": {}, "PHOENIX": {}, "PORTLAND": {}, "SEATTLE": {},
}

// isFalsePositiveName reports whether value — a candidate NAME-family
// match — is actually one of the deny-listed non-name words, grounded on
// original_source/core/detectors/patterns.py's _is_false_positive_name.
func isFalsePositiveName(value string) bool {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) < 2 {
		return true
	}
	upper := strings.ToUpper(trimmed)
	if _, ok := falsePositiveNames[upper]; ok {
		return true
	}
	words := strings.Fields(upper)
	if len(words) == 0 {
		return true
	}
	allFP := true
	for _, w := range words {
		if _, ok := falsePositiveNames[w]; !ok {
			allFP = false
			break
		}
	}
	if allFP {
		return true
	}
	if _, ok := falsePositiveNames[words[0]]; ok {
		return true
	}
	if _, ok := falsePositiveNames[words[len(words)-1]]; ok {
		return true
	}

	// "City, ST" vs "Name, <credential>" disambiguation.
	if strings.Contains(trimmed, ",") {
		parts := strings.SplitN(trimmed, ",", 2)
		before := strings.ToUpper(strings.TrimSpace(parts[0]))
		after := strings.ToUpper(strings.TrimSpace(parts[1]))
		if _, isCred := validCredentials[after]; isCred {
			return false
		}
		if _, isState := usStateAbbreviations[after]; isState {
			beforeWords := strings.Fields(before)
			if _, isCity := cityWords[before]; isCity || len(beforeWords) == 1 {
				return true
			}
		}
	}

	// Trailing-fragment artifacts like "visitPA", "visitMA" produced when
	// OCR drops a space before a state abbreviation.
	for state := range usStateAbbreviations {
		if strings.HasSuffix(upper, "VISIT"+state) {
			return true
		}
	}

	return false
}

// trimNameSpan trims trailing non-name filler words and punctuation from
// value, used both by the generic-PII name detector and the ML contract's
// name-trimming requirement (spec.md §4.8.3). Returns the trimmed value
// and how many trailing runes were removed (so callers can adjust a
// span's End offset).
func trimNameSpan(value string) (trimmed string, trimmedRunes int) {
	original := value
	for {
		value = strings.TrimRight(value, " \t\n\r.,;:!?")
		words := strings.Fields(value)
		if len(words) == 0 {
			break
		}
		last := strings.ToLower(words[len(words)-1])
		if _, connector := nameConnectors[last]; connector {
			break
		}
		if _, filler := nonNameWords[last]; !filler {
			break
		}
		idx := strings.LastIndex(value, words[len(words)-1])
		value = strings.TrimRight(value[:idx], " \t\n\r")
	}
	return value, len(original) - len(value)
}
