package detect

import (
	"math"
)

// weightScale converts a raw entity weight (1-10) into the scorer's point
// scale. Authored fresh per DESIGN.md Open Question 1: the original's
// scorer.py body was not available in the retrieval pack, so this value
// is calibrated by construction against spec.md §4.15's own worked
// example rather than copied.
const weightScale = 2.5

// entityWeights assigns each entity family a base severity weight on a
// 1-10 scale: checksum-grade financial/identity credentials at the top,
// demographic and geographic context at the bottom. Unlisted types fall
// back to defaultEntityWeight.
var entityWeights = map[string]float64{
	// Tier 10 — direct, checksum-grade identity or financial compromise.
	"SSN": 10, "CREDIT_CARD": 10, "PASSPORT": 10, "NATIONAL_ID": 10,
	"BANK_ACCOUNT": 10, "IBAN": 10, "PRIVATE_KEY": 10, "AWS_SECRET_KEY": 10,
	"DB_CONNECTION_STRING": 10, "CRYPTO_SEED_PHRASE": 10, "GENERIC_SECRET": 10,

	// Tier 8-9 — strong identity or credentialed secrets.
	"DRIVER_LICENSE": 9, "ITIN": 9, "TIN": 9, "EIN": 9,
	"AWS_ACCESS_KEY": 8, "GITHUB_TOKEN": 8, "STRIPE_KEY": 8, "JWT": 8,
	"BASIC_AUTH": 8, "BEARER_TOKEN": 8, "AZURE_KEY": 8, "GOOGLE_API_KEY": 8,
	"PASSWORD": 8, "BITCOIN_ADDRESS": 8, "ETHEREUM_ADDRESS": 8,

	// Tier 6-7 — clinical / financial-adjacent identifiers.
	"MRN": 7, "HEALTH_PLAN_ID": 7, "DIAGNOSIS": 7, "MEDICATION": 7,
	"PROCEDURE": 7, "LAB_RESULT": 7, "HEALTH_CONDITION": 7,
	"ACCOUNT_NUMBER": 7, "BANK_ROUTING": 6, "NPI": 6, "DEA": 6,
	"MEMBER_ID": 6, "CUSIP": 6, "ISIN": 6, "SEDOL": 6, "SWIFT": 6,
	"FIGI": 6, "LEI": 6, "VIN": 6,

	// Tier 4-5 — direct personal identification.
	"NAME": 5, "NAME_PATIENT": 6, "NAME_PROVIDER": 4, "NAME_RELATIVE": 5,
	"DATE_DOB": 5, "DATE_DEATH": 5, "EMPLOYEE_ID": 4, "STUDENT_ID": 4,
	"VOTER_ID": 5, "SALARY": 4,

	// Tier 2-3 — contact and indirect identifiers.
	"EMAIL": 3, "PHONE": 3, "FAX": 2, "ADDRESS": 3, "IP_ADDRESS": 3,
	"MAC_ADDRESS": 2, "USERNAME": 2, "EMPLOYER": 2, "JOB_TITLE": 2,
	"DATE_ADMISSION": 3, "DATE_DISCHARGE": 3,

	// Tier 1 — weak, contextual, or geographic-only signal.
	"ZIP": 1, "CITY": 1, "STATE": 1, "COUNTRY": 1, "AGE": 2, "GENDER": 1,
	"RACE": 2, "ETHNICITY": 2, "FACILITY": 2, "TRACKING_NUMBER": 1,

	// Government / classification.
	"CLASSIFICATION_MARKING": 9, "CLASSIFICATION_LEVEL": 7,
	"SCI_MARKING": 9, "DISSEMINATION_CONTROL": 7, "CLEARANCE_LEVEL": 6,
}

const defaultEntityWeight = 3.0

func weightFor(entityType string) float64 {
	if w, ok := entityWeights[entityType]; ok {
		return w
	}
	return defaultEntityWeight
}

// coOccurrenceRules names pairs of entity types whose joint presence
// raises the severity of a document beyond the sum of its parts — e.g. a
// name plus an SSN plus a date of birth is an identity-theft kit, not
// three independent low-risk facts. Authored per DESIGN.md Open Question
// 2 from spec.md §4.15's single worked example, shaped after (not
// copied from) other_examples/.../MacAttak-pi-scanner/pkg/scoring/
// factors.go's CoOccurrenceMultipliers map structure.
var coOccurrenceRules = []struct {
	types      []string
	multiplier float64
}{
	{[]string{"NAME", "SSN", "DATE_DOB"}, 1.3},
	{[]string{"NAME_PATIENT", "SSN", "DATE_DOB"}, 1.3},
	{[]string{"SSN", "CREDIT_CARD"}, 1.2},
	{[]string{"NAME", "CREDIT_CARD"}, 1.15},
	{[]string{"NAME_PATIENT", "DIAGNOSIS"}, 1.15},
	{[]string{"NAME_PATIENT", "MEDICATION"}, 1.1},
	{[]string{"NAME", "BANK_ACCOUNT", "BANK_ROUTING"}, 1.25},
	{[]string{"PASSWORD", "EMAIL"}, 1.2},
	{[]string{"AWS_ACCESS_KEY", "AWS_SECRET_KEY"}, 1.3},
	{[]string{"NAME", "ADDRESS", "DATE_DOB"}, 1.15},
}

const maxCoOccurrenceMultiplier = 2.0

// coOccurrenceMultiplier folds every matching rule's multiplier together
// (multiplicatively, since each rule represents an independent amplifying
// combination), capped at maxCoOccurrenceMultiplier.
func coOccurrenceMultiplier(present map[string]struct{}) float64 {
	multiplier := 1.0
	for _, rule := range coOccurrenceRules {
		if allTypesPresent(present, rule.types) {
			multiplier *= rule.multiplier
		}
	}
	if multiplier > maxCoOccurrenceMultiplier {
		return maxCoOccurrenceMultiplier
	}
	return multiplier
}

func allTypesPresent(present map[string]struct{}, types []string) bool {
	for _, t := range types {
		if _, ok := present[t]; !ok {
			return false
		}
	}
	return true
}

var exposureMultipliers = map[ExposureLevel]float64{
	ExposurePrivate:  1.0,
	ExposureInternal: 1.1,
	ExposureOrgWide:  1.3,
	ExposurePublic:   1.5,
}

func exposureMultiplier(level ExposureLevel) float64 {
	if m, ok := exposureMultipliers[level]; ok {
		return m
	}
	return 1.0
}

// riskTierFor bands a clamped [0,100] score per spec.md §4.15 / types.go's
// RiskTier constant comments.
func riskTierFor(score int) RiskTier {
	switch {
	case score <= 10:
		return RiskMinimal
	case score <= 30:
		return RiskLow
	case score <= 54:
		return RiskMedium
	case score <= 79:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// Score computes a ScoringResult from per-entity-type counts and the
// confidence-weighted spans that produced them, per spec.md §4.15:
// Σ(weight × WEIGHT_SCALE × (1+ln(count)) × mean_confidence) across
// entity types, times the co-occurrence multiplier (capped at 2.0), times
// the exposure multiplier, clamped to [0,100] and rounded to the nearest
// integer.
func Score(spans []Span, exposure ExposureLevel) ScoringResult {
	type agg struct {
		count      int
		confidence float64
	}
	byType := make(map[string]*agg)
	present := make(map[string]struct{})
	for _, s := range spans {
		t := NormalizeEntityType(s.EntityType)
		present[t] = struct{}{}
		a, ok := byType[t]
		if !ok {
			a = &agg{}
			byType[t] = a
		}
		a.count++
		a.confidence += s.Confidence
	}

	// breakdown aggregates per-type contributions into their taxonomy
	// family (spec.md §3 category_breakdown: "contribution per category
	// (financial / healthcare / identifiers / contact / …)"), not per raw
	// entity type.
	breakdown := make(map[string]float64, len(byType))
	var total float64
	for t, a := range byType {
		meanConfidence := a.confidence / float64(a.count)
		contribution := weightFor(t) * weightScale * (1 + math.Log(float64(a.count))) * meanConfidence
		breakdown[CategoryForEntityType(t)] += contribution
		total += contribution
	}

	total *= coOccurrenceMultiplier(present)
	total *= exposureMultiplier(exposure)

	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}
	score := int(math.Round(total))

	return ScoringResult{
		Score:             score,
		Tier:              riskTierFor(score),
		CategoryBreakdown: breakdown,
	}
}

// ScoreEntityCounts implements the external `score` operation exactly as
// named in spec.md §6: entity_counts, not spans, cross the public boundary.
// Each counted occurrence is treated as full-confidence (1.0) since a bare
// count carries no per-detection confidence; callers that already have the
// detected spans in hand (e.g. the orchestrator's own caller, immediately
// after Detect) should prefer Score, which folds in each span's actual
// calibrated confidence instead of assuming 1.0.
func ScoreEntityCounts(entityCounts map[string]int, exposure ExposureLevel) ScoringResult {
	var spans []Span
	for entityType, count := range entityCounts {
		for i := 0; i < count; i++ {
			spans = append(spans, Span{EntityType: entityType, Confidence: 1.0})
		}
	}
	return Score(spans, exposure)
}
