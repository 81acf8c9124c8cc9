package detect

import "testing"

func TestBuiltinPolicyPacksParse(t *testing.T) {
	packs, err := BuiltinPolicyPacks()
	if err != nil {
		t.Fatalf("unexpected error parsing builtin packs: %v", err)
	}
	if len(packs) == 0 {
		t.Fatal("expected at least one builtin policy pack")
	}
	names := make(map[string]struct{})
	for _, p := range packs {
		names[p.Name] = struct{}{}
	}
	for _, want := range []string{"HIPAA", "GDPR", "PCI-DSS", "CCPA", "PII", "PHI"} {
		if _, ok := names[want]; !ok {
			t.Errorf("expected builtin pack %q to be present", want)
		}
	}
}

func TestEvaluatePoliciesHIPAATriggers(t *testing.T) {
	packs, err := BuiltinPolicyPacks()
	if err != nil {
		t.Fatal(err)
	}
	spans := []Span{
		{EntityType: "NAME_PATIENT", Text: "Jane Doe", Confidence: 0.95},
		{EntityType: "DIAGNOSIS", Text: "type 2 diabetes", Confidence: 0.9},
	}
	result := EvaluatePolicies(packs, spans)
	if !containsPack(result.MatchedPacks, "HIPAA") {
		t.Errorf("expected HIPAA to trigger on NAME_PATIENT+DIAGNOSIS, matched %v", result.MatchedPacks)
	}
	if !result.RequiresEncryption {
		t.Error("expected HIPAA match to require encryption")
	}
}

func TestEvaluatePoliciesExcludeIfOnly(t *testing.T) {
	packs, err := BuiltinPolicyPacks()
	if err != nil {
		t.Fatal(err)
	}
	spans := []Span{{EntityType: "ZIP", Text: "90210", Confidence: 0.9}, {EntityType: "AGE", Text: "42", Confidence: 0.9}}
	result := EvaluatePolicies(packs, spans)
	if containsPack(result.MatchedPacks, "HIPAA") {
		t.Error("expected a lone ZIP+AGE to NOT trigger HIPAA (exclude_if_only)")
	}
}

func TestEvaluatePoliciesPCITriggersOnCreditCard(t *testing.T) {
	packs, err := BuiltinPolicyPacks()
	if err != nil {
		t.Fatal(err)
	}
	spans := []Span{{EntityType: "CREDIT_CARD", Text: "4111111111111111", Confidence: 0.95}}
	result := EvaluatePolicies(packs, spans)
	if !containsPack(result.MatchedPacks, "PCI-DSS") {
		t.Errorf("expected PCI-DSS to trigger on CREDIT_CARD, matched %v", result.MatchedPacks)
	}
	if result.RiskLevel != RiskCritical {
		t.Errorf("expected PCI-DSS match to carry CRITICAL risk level, got %v", result.RiskLevel)
	}
}

func TestEvaluatePoliciesMergesAcrossMultiplePacks(t *testing.T) {
	packs, err := BuiltinPolicyPacks()
	if err != nil {
		t.Fatal(err)
	}
	spans := []Span{
		{EntityType: "NAME_PATIENT", Text: "Jane Doe", Confidence: 0.95},
		{EntityType: "DIAGNOSIS", Text: "hypertension", Confidence: 0.9},
		{EntityType: "CREDIT_CARD", Text: "4111111111111111", Confidence: 0.95},
	}
	result := EvaluatePolicies(packs, spans)
	if !containsPack(result.MatchedPacks, "HIPAA") || !containsPack(result.MatchedPacks, "PCI-DSS") {
		t.Fatalf("expected both HIPAA and PCI-DSS to match, got %v", result.MatchedPacks)
	}
	if result.RiskLevel != RiskCritical {
		t.Errorf("expected the merged risk level to be the max of all matched packs (CRITICAL), got %v", result.RiskLevel)
	}
}

func TestTriggerFiresEvaluationOrder(t *testing.T) {
	ctx := evalContext{
		present:       map[string]struct{}{"A": {}},
		maxConfidence: map[string]float64{"A": 1.0},
		counts:        map[string]int{"A": 1},
	}
	trigger := Trigger{
		ExcludeIfOnly: []string{"A"},
		AnyOf:         []string{"A"},
	}
	if triggerFires(trigger, ctx) {
		t.Error("exclude_if_only must take precedence over any_of")
	}
}

func TestTriggerFiresRespectsMinConfidence(t *testing.T) {
	ctx := evalContext{
		present:       map[string]struct{}{"SSN": {}},
		maxConfidence: map[string]float64{"SSN": 0.6},
		counts:        map[string]int{"SSN": 1},
	}
	trigger := Trigger{AnyOf: []string{"SSN"}, MinConfidence: 0.9}
	if triggerFires(trigger, ctx) {
		t.Error("expected any_of to not fire when matched type's confidence is below min_confidence")
	}
	trigger.MinConfidence = 0.5
	if !triggerFires(trigger, ctx) {
		t.Error("expected any_of to fire once min_confidence is cleared")
	}
}

func TestTriggerFiresRespectsMinCount(t *testing.T) {
	ctx := evalContext{
		present:       map[string]struct{}{"SSN": {}},
		maxConfidence: map[string]float64{"SSN": 1.0},
		counts:        map[string]int{"SSN": 1},
	}
	trigger := Trigger{AnyOf: []string{"SSN"}, MinCount: 2}
	if triggerFires(trigger, ctx) {
		t.Error("expected any_of to not fire when matched type's count is below min_count")
	}
	ctx.counts["SSN"] = 2
	if !triggerFires(trigger, ctx) {
		t.Error("expected any_of to fire once min_count is cleared")
	}
}

func TestTriggerFiresAllOfRequiresEveryTypeToClearGate(t *testing.T) {
	ctx := evalContext{
		present:       map[string]struct{}{"NAME": {}, "SSN": {}},
		maxConfidence: map[string]float64{"NAME": 0.95, "SSN": 0.4},
		counts:        map[string]int{"NAME": 1, "SSN": 1},
	}
	trigger := Trigger{AllOf: []string{"NAME", "SSN"}, MinConfidence: 0.5}
	if triggerFires(trigger, ctx) {
		t.Error("expected all_of to not fire when one required type fails min_confidence")
	}
}

func containsPack(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}
