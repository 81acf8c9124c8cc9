package detect

// PolicyCategory enumerates the regulatory/sensitivity categories a
// policy pack can declare. The taxonomy carries all 19 values named by
// original_source/core/policies/schema.py's PolicyCategory enum even
// though this module only ships builtin packs for a representative
// subset (see policy_data.go) — callers define custom packs for the rest.
type PolicyCategory string

const (
	CategoryPII            PolicyCategory = "PII"
	CategoryPHI            PolicyCategory = "PHI"
	CategoryPCI            PolicyCategory = "PCI"
	CategoryPFI            PolicyCategory = "PFI"
	CategoryGovernment     PolicyCategory = "GOVERNMENT"
	CategoryBiometric      PolicyCategory = "BIOMETRIC"
	CategoryCredentials    PolicyCategory = "CREDENTIALS"
	CategoryCommunications PolicyCategory = "COMMUNICATIONS"
	CategoryFinancial      PolicyCategory = "FINANCIAL"
	CategoryBehavioral     PolicyCategory = "BEHAVIORAL"
	CategoryLocation       PolicyCategory = "LOCATION"
	CategoryDemographic    PolicyCategory = "DEMOGRAPHIC"
	CategoryEmployment     PolicyCategory = "EMPLOYMENT"
	CategoryEducation      PolicyCategory = "EDUCATION"
	CategoryLegal          PolicyCategory = "LEGAL"
	CategoryInsurance      PolicyCategory = "INSURANCE"
	CategoryGenetic        PolicyCategory = "GENETIC"
	CategoryChildren       PolicyCategory = "CHILDREN"
	CategoryImmigration    PolicyCategory = "IMMIGRATION"
)

// Trigger decides whether a PolicyPack applies to a set of detected
// entity types. Evaluated in the fixed order exclude_if_only → any_of →
// all_of → combinations, per spec.md §4.16 and original_source/core/
// policies/engine.py's _evaluate_trigger.
type Trigger struct {
	// ExcludeIfOnly skips the pack entirely when the detected type set is
	// exactly this set (no more, no fewer) — e.g. a lone ZIP code alone
	// shouldn't trigger HIPAA.
	ExcludeIfOnly []string `yaml:"exclude_if_only,omitempty"`
	// AnyOf matches if at least one of these types was detected with
	// confidence >= MinConfidence and count >= MinCount (spec.md §4.14:
	// "any one present with confidence >= threshold").
	AnyOf []string `yaml:"any_of,omitempty"`
	// AllOf matches only if every one of these types was detected, each
	// clearing MinConfidence and MinCount.
	AllOf []string `yaml:"all_of,omitempty"`
	// Combinations matches if any inner slice is a subset of the detected
	// types (each inner slice is its own all_of group, ORed together),
	// each type in the winning combination clearing MinConfidence and
	// MinCount.
	Combinations [][]string `yaml:"combinations,omitempty"`
	// MinConfidence is the per-type calibrated-confidence floor a matched
	// type must clear for any_of/all_of/combinations to fire. Zero (the
	// YAML-absent value) defaults to 0.5, matching original_source/core/
	// policies/schema.py's PolicyTrigger.min_confidence default.
	MinConfidence float64 `yaml:"min_confidence,omitempty"`
	// MinCount is the per-type minimum span count a matched type must
	// clear for any_of/all_of/combinations to fire. Zero (the YAML-absent
	// value) defaults to 1, matching schema.py's PolicyTrigger.min_count.
	MinCount int `yaml:"min_count,omitempty"`
}

// effectiveMinConfidence and effectiveMinCount apply schema.py's
// PolicyTrigger defaults (0.5 / 1) when a pack's YAML leaves the field
// absent — Go's zero value and "not set" are indistinguishable, and 0.5/1
// are the only defaults the original ever ships.
func (t Trigger) effectiveMinConfidence() float64 {
	if t.MinConfidence <= 0 {
		return 0.5
	}
	return t.MinConfidence
}

func (t Trigger) effectiveMinCount() int {
	if t.MinCount <= 0 {
		return 1
	}
	return t.MinCount
}

// Obligation is what a triggered PolicyPack asserts about the handling
// requirements for the text it matched.
type Obligation struct {
	Categories         []PolicyCategory `yaml:"categories"`
	RiskLevel          RiskTier         `yaml:"risk_level"`
	RequiresEncryption bool             `yaml:"requires_encryption"`
	RequiresConsent    bool             `yaml:"requires_consent"`
	Geography          []string         `yaml:"geography,omitempty"`
	MinRetentionDays   *int             `yaml:"min_retention_days,omitempty"`
	MaxRetentionDays   *int             `yaml:"max_retention_days,omitempty"`
	Jurisdictions      []string         `yaml:"jurisdictions,omitempty"`
}

// PolicyPack is a single named, declarative rule: a trigger plus the
// obligation it asserts when triggered.
type PolicyPack struct {
	Name       string     `yaml:"name"`
	Trigger    Trigger    `yaml:"trigger"`
	Obligation Obligation `yaml:"obligation"`
}

// PolicyResult is the merged outcome of evaluating every applicable
// policy pack against one detection's entity types.
type PolicyResult struct {
	MatchedPacks       []string         `json:"matched_packs"`
	Categories         []PolicyCategory `json:"categories"`
	RiskLevel          RiskTier         `json:"risk_level"`
	RequiresEncryption bool             `json:"requires_encryption"`
	RequiresConsent    bool             `json:"requires_consent"`
	Geography          []string         `json:"geography,omitempty"`
	MinRetentionDays   *int             `json:"min_retention_days,omitempty"`
	MaxRetentionDays   *int             `json:"max_retention_days,omitempty"`
	Jurisdictions      []string         `json:"jurisdictions,omitempty"`
}

var riskLevelRank = map[RiskTier]int{
	RiskMinimal:  0,
	RiskLow:      1,
	RiskMedium:   2,
	RiskHigh:     3,
	RiskCritical: 4,
}

// EvaluatePolicies runs every pack in packs against the detected entity
// types in spans and merges the obligations of every pack whose trigger
// fires, per spec.md §4.16's merge algebra: union categories, max risk
// level, OR the two boolean flags, intersect geography when every
// matched pack restricts it (union when only some do), longest min-
// retention / shortest max-retention, union jurisdictions.
func EvaluatePolicies(packs []PolicyPack, spans []Span) PolicyResult {
	present := make(map[string]struct{})
	maxConfidence := make(map[string]float64)
	counts := make(map[string]int)
	for _, s := range spans {
		t := NormalizeEntityType(s.EntityType)
		present[t] = struct{}{}
		counts[t]++
		if s.Confidence > maxConfidence[t] {
			maxConfidence[t] = s.Confidence
		}
	}
	ctx := evalContext{present: present, maxConfidence: maxConfidence, counts: counts}

	var matched []PolicyPack
	for _, p := range packs {
		if triggerFires(p.Trigger, ctx) {
			matched = append(matched, p)
		}
	}

	result := PolicyResult{RiskLevel: RiskMinimal}
	categorySeen := make(map[PolicyCategory]struct{})
	jurisdictionSeen := make(map[string]struct{})
	var geoSets [][]string

	for _, p := range matched {
		result.MatchedPacks = append(result.MatchedPacks, p.Name)
		for _, c := range p.Obligation.Categories {
			categorySeen[c] = struct{}{}
		}
		if riskLevelRank[p.Obligation.RiskLevel] > riskLevelRank[result.RiskLevel] {
			result.RiskLevel = p.Obligation.RiskLevel
		}
		result.RequiresEncryption = result.RequiresEncryption || p.Obligation.RequiresEncryption
		result.RequiresConsent = result.RequiresConsent || p.Obligation.RequiresConsent
		if len(p.Obligation.Geography) > 0 {
			geoSets = append(geoSets, p.Obligation.Geography)
		}
		for _, j := range p.Obligation.Jurisdictions {
			jurisdictionSeen[j] = struct{}{}
		}
		result.MinRetentionDays = mergeRetention(result.MinRetentionDays, p.Obligation.MinRetentionDays, maxInt)
		result.MaxRetentionDays = mergeRetention(result.MaxRetentionDays, p.Obligation.MaxRetentionDays, minInt)
	}

	for c := range categorySeen {
		result.Categories = append(result.Categories, c)
	}
	for j := range jurisdictionSeen {
		result.Jurisdictions = append(result.Jurisdictions, j)
	}
	result.Geography = mergeGeography(geoSets)
	return result
}

// evalContext is the per-evaluation bookkeeping triggerFires reads from:
// which normalized types are present, each type's running maximum
// calibrated confidence, and each type's span count — mirroring
// original_source/core/policies/engine.py's EvaluationContext dataclass.
type evalContext struct {
	present       map[string]struct{}
	maxConfidence map[string]float64
	counts        map[string]int
}

// clearsGate reports whether every type in types is present in ctx AND
// individually clears both minConfidence and minCount — the shared gate
// any_of/all_of/combinations all apply, per spec.md §4.14's "any one
// present with confidence >= threshold" and the min_confidence/min_count
// trigger predicates.
func (ctx evalContext) clearsGate(types []string, minConfidence float64, minCount int) bool {
	for _, t := range types {
		if _, ok := ctx.present[t]; !ok {
			return false
		}
		if ctx.maxConfidence[t] < minConfidence {
			return false
		}
		if ctx.counts[t] < minCount {
			return false
		}
	}
	return true
}

// triggerFires implements the fixed exclude_if_only → any_of → all_of →
// combinations evaluation order. The first applicable rule decides the
// outcome; a trigger with none of the four fields set never fires.
//
// any_of fires when at least one listed type is present and that matched
// subset clears the confidence/count gate; all_of and combinations require
// every type in the (sub)set to clear it. The original
// (engine.py:216-263) only shows an explicit min_count check on the
// any_of branch; this generalizes min_count to all_of/combinations too; so
// a pack author can rely on min_count regardless of which trigger shape
// they use.
func triggerFires(t Trigger, ctx evalContext) bool {
	if len(t.ExcludeIfOnly) > 0 && setEquals(ctx.present, t.ExcludeIfOnly) {
		return false
	}
	minConfidence, minCount := t.effectiveMinConfidence(), t.effectiveMinCount()
	if len(t.AnyOf) > 0 {
		var matched []string
		for _, typ := range t.AnyOf {
			if _, ok := ctx.present[typ]; ok {
				matched = append(matched, typ)
			}
		}
		return len(matched) > 0 && ctx.clearsGate(matched, minConfidence, minCount)
	}
	if len(t.AllOf) > 0 {
		return ctx.clearsGate(t.AllOf, minConfidence, minCount)
	}
	if len(t.Combinations) > 0 {
		for _, combo := range t.Combinations {
			if ctx.clearsGate(combo, minConfidence, minCount) {
				return true
			}
		}
		return false
	}
	return false
}

func setEquals(present map[string]struct{}, types []string) bool {
	if len(present) != len(types) {
		return false
	}
	for _, t := range types {
		if _, ok := present[t]; !ok {
			return false
		}
	}
	return true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// mergeRetention folds a newly matched pack's retention value into the
// running value using combine (max for the floor, min for the ceiling),
// treating a nil running value as "unset" rather than zero.
func mergeRetention(running, next *int, combine func(int, int) int) *int {
	if next == nil {
		return running
	}
	if running == nil {
		v := *next
		return &v
	}
	v := combine(*running, *next)
	return &v
}

// mergeGeography intersects every matched pack's geography restriction
// when all matched packs declared one; when only some did, it unions
// them, since an unrestricted pack expresses no opinion rather than
// "anywhere is fine" overriding a stricter sibling.
func mergeGeography(sets [][]string) []string {
	if len(sets) == 0 {
		return nil
	}
	if len(sets) == 1 {
		return sets[0]
	}
	counts := make(map[string]int)
	for _, set := range sets {
		seen := make(map[string]struct{})
		for _, g := range set {
			if _, dup := seen[g]; dup {
				continue
			}
			seen[g] = struct{}{}
			counts[g]++
		}
	}
	var intersection []string
	for g, n := range counts {
		if n == len(sets) {
			intersection = append(intersection, g)
		}
	}
	if len(intersection) > 0 {
		return intersection
	}
	var union []string
	for g := range counts {
		union = append(union, g)
	}
	return union
}
