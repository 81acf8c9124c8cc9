package detect

import "testing"

func TestSplitSentencesHonorsAbbreviations(t *testing.T) {
	text := "Dr. Smith arrived at the clinic. He was examined immediately."
	sentences := splitSentences(text)
	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences (abbreviation 'Dr.' must not split), got %d: %+v", len(sentences), sentences)
	}
	if text[sentences[0].Start:sentences[0].End] != "Dr. Smith arrived at the clinic." {
		t.Errorf("unexpected first sentence: %q", text[sentences[0].Start:sentences[0].End])
	}
}

func TestRuleBasedCorefLinksPronounToPrecedingAnchor(t *testing.T) {
	// spec.md §4.12/§8 scenario 5: the pronoun is discovered directly from
	// the text, not pre-tagged by another detector.
	text := "John Smith arrived at the clinic. He was examined immediately."
	spans := []Span{
		{Start: 0, End: 10, Text: "John Smith", EntityType: "NAME", Confidence: 0.9},
	}
	out := ruleBasedCoref(text, spans)

	var pronoun *Span
	for i := range out {
		if out[i].Text == "He" {
			pronoun = &out[i]
		}
	}
	if pronoun == nil {
		t.Fatal("expected a new span to be emitted for the discovered pronoun 'He'")
	}
	if pronoun.CorefAnchorValue != "John Smith" {
		t.Errorf("expected pronoun to link to 'John Smith', got %q", pronoun.CorefAnchorValue)
	}
	if pronoun.Tier != TierML {
		t.Errorf("expected coref-expanded span to carry TierML, got %v", pronoun.Tier)
	}
	wantConfidence := 0.9 * corefConfidenceDecay
	if diff := pronoun.Confidence - wantConfidence; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected confidence decayed to %v, got %v", wantConfidence, pronoun.Confidence)
	}
}

func TestRuleBasedCorefSkipsOutOfGenderPronoun(t *testing.T) {
	text := "Mary Jones filed the claim. He signed it later."
	spans := []Span{
		{Start: 0, End: 10, Text: "Mary Jones", EntityType: "NAME", Confidence: 0.9},
	}
	out := ruleBasedCoref(text, spans)
	for _, s := range out {
		if s.Text == "He" && s.CorefAnchorValue != "" {
			t.Errorf("expected a male pronoun to not link to a female anchor, got anchor %q", s.CorefAnchorValue)
		}
	}
}

func TestRuleBasedCorefSkipsPositionsAlreadyCovered(t *testing.T) {
	text := "John Smith spoke to him about it."
	spans := []Span{
		{Start: 0, End: 10, Text: "John Smith", EntityType: "NAME", Confidence: 0.9},
		{Start: 20, End: 23, Text: "him", EntityType: "NAME_RELATIVE", Confidence: 0.9},
	}
	out := ruleBasedCoref(text, spans)
	if len(out) != len(spans) {
		t.Errorf("expected no new span for a pronoun position already covered by a detector, got %d spans (started with %d)",
			len(out), len(spans))
	}
}

func TestRuleBasedCorefEmptySpansYieldsEmpty(t *testing.T) {
	out := ruleBasedCoref("He went home.", nil)
	if len(out) != 0 {
		t.Errorf("expected coref on an empty span list to yield an empty list, got %d", len(out))
	}
}

func TestLinkPartialNamesLinksSharedSurname(t *testing.T) {
	spans := []Span{
		{Start: 0, End: 10, Text: "John Smith", EntityType: "NAME"},
		{Start: 50, End: 55, Text: "Smith", EntityType: "NAME"},
	}
	out := linkPartialNames(spans)
	if out[1].CorefAnchorValue != "John Smith" {
		t.Errorf("expected partial mention 'Smith' to link to 'John Smith', got %q", out[1].CorefAnchorValue)
	}
}

func TestLinkPartialNamesIgnoresTitleOnlyOverlap(t *testing.T) {
	spans := []Span{
		{Start: 0, End: 8, Text: "Dr. Lee", EntityType: "NAME"},
		{Start: 50, End: 57, Text: "Dr. Chen", EntityType: "NAME"},
	}
	out := linkPartialNames(spans)
	if out[0].CorefAnchorValue != "" || out[1].CorefAnchorValue != "" {
		t.Error("expected distinct names sharing only the honorific 'Dr' to not be linked")
	}
}
