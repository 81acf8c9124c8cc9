package detect

import "testing"

func TestScoreSingleLowWeightEntityIsMinimalOrLow(t *testing.T) {
	spans := []Span{{EntityType: "ZIP", Confidence: 0.6}}
	result := Score(spans, ExposurePrivate)
	if result.Tier == RiskCritical || result.Tier == RiskHigh {
		t.Errorf("expected a lone ZIP code to score low, got %v (%d)", result.Tier, result.Score)
	}
}

func TestScoreIdentityTheftKitIsCriticalAtPublicExposure(t *testing.T) {
	// Mirrors the spec's own end-to-end scenario: SSN + CREDIT_CARD + NAME
	// at PUBLIC exposure must land at score >= 80, tier CRITICAL.
	spans := []Span{
		{EntityType: "SSN", Confidence: 1.0},
		{EntityType: "CREDIT_CARD", Confidence: 1.0},
		{EntityType: "NAME", Confidence: 0.9},
	}
	result := Score(spans, ExposurePublic)
	if result.Score < 80 {
		t.Errorf("expected score >= 80 for SSN+CREDIT_CARD+NAME at PUBLIC exposure, got %d", result.Score)
	}
	if result.Tier != RiskCritical {
		t.Errorf("expected CRITICAL tier, got %v", result.Tier)
	}
}

func TestScoreExposureOrdering(t *testing.T) {
	spans := []Span{{EntityType: "NAME", Confidence: 0.9}, {EntityType: "EMAIL", Confidence: 0.9}}
	private := Score(spans, ExposurePrivate)
	public := Score(spans, ExposurePublic)
	if public.Score < private.Score {
		t.Errorf("expected PUBLIC exposure to score >= PRIVATE for identical spans, got public=%d private=%d",
			public.Score, private.Score)
	}
}

func TestScoreClampedToHundred(t *testing.T) {
	var spans []Span
	for i := 0; i < 20; i++ {
		spans = append(spans, Span{EntityType: "SSN", Confidence: 1.0})
		spans = append(spans, Span{EntityType: "CREDIT_CARD", Confidence: 1.0})
		spans = append(spans, Span{EntityType: "PRIVATE_KEY", Confidence: 1.0})
	}
	result := Score(spans, ExposurePublic)
	if result.Score > 100 {
		t.Errorf("expected score clamped to 100, got %d", result.Score)
	}
}

func TestScoreEmptySpansIsZero(t *testing.T) {
	result := Score(nil, ExposurePrivate)
	if result.Score != 0 || result.Tier != RiskMinimal {
		t.Errorf("expected zero score/MINIMAL tier for no spans, got %d/%v", result.Score, result.Tier)
	}
}

func TestScoreEntityCountsMatchesSpecScenario6(t *testing.T) {
	counts := map[string]int{"SSN": 1, "CREDIT_CARD": 1, "NAME": 1}
	result := ScoreEntityCounts(counts, ExposurePublic)
	if result.Score < 80 {
		t.Errorf("expected score >= 80 for spec §8 scenario 6, got %d", result.Score)
	}
	if result.Tier != RiskCritical {
		t.Errorf("expected CRITICAL tier, got %v", result.Tier)
	}
}

func TestScoreEntityCountsEmptyIsZeroMinimal(t *testing.T) {
	result := ScoreEntityCounts(map[string]int{}, ExposurePrivate)
	if result.Score != 0 || result.Tier != RiskMinimal {
		t.Errorf("expected zero score/MINIMAL tier for empty entity_counts, got %d/%v", result.Score, result.Tier)
	}
}

func TestScoreCategoryBreakdownKeyedByTaxonomyFamilyNotType(t *testing.T) {
	spans := []Span{
		{EntityType: "SSN", Confidence: 0.9},
		{EntityType: "CREDIT_CARD", Confidence: 0.9},
		{EntityType: "NAME", Confidence: 0.9},
	}
	result := Score(spans, ExposurePrivate)
	if _, ok := result.CategoryBreakdown["SSN"]; ok {
		t.Error("expected CategoryBreakdown to be keyed by category, not raw entity type")
	}
	if _, ok := result.CategoryBreakdown["identifiers"]; !ok {
		t.Errorf("expected an \"identifiers\" bucket for SSN, got %v", result.CategoryBreakdown)
	}
	if _, ok := result.CategoryBreakdown["financial"]; !ok {
		t.Errorf("expected a \"financial\" bucket for CREDIT_CARD, got %v", result.CategoryBreakdown)
	}
	if _, ok := result.CategoryBreakdown["names"]; !ok {
		t.Errorf("expected a \"names\" bucket for NAME, got %v", result.CategoryBreakdown)
	}
}

func TestCoOccurrenceMultiplierCapped(t *testing.T) {
	present := map[string]struct{}{
		"NAME": {}, "SSN": {}, "DATE_DOB": {}, "CREDIT_CARD": {},
		"BANK_ACCOUNT": {}, "BANK_ROUTING": {}, "ADDRESS": {},
		"AWS_ACCESS_KEY": {}, "AWS_SECRET_KEY": {}, "PASSWORD": {}, "EMAIL": {},
	}
	if m := coOccurrenceMultiplier(present); m > maxCoOccurrenceMultiplier {
		t.Errorf("expected multiplier capped at %v, got %v", maxCoOccurrenceMultiplier, m)
	}
}
