package detect

import "testing"

func TestGovernmentDetectorRequiresClassificationContext(t *testing.T) {
	d := NewGovernmentDetector()

	withContext := d.Detect("This document is marked SECRET//NOFORN per the classification guide.")
	foundLevel := false
	for _, s := range withContext {
		if s.EntityType == "CLASSIFICATION_MARKING" {
			foundLevel = true
		}
	}
	if !foundLevel {
		t.Error("expected a SECRET//NOFORN marking to be detected directly")
	}

	bare := d.Detect("She kept her SECRET safe in the drawer.")
	for _, s := range bare {
		if s.EntityType == "CLASSIFICATION_LEVEL" && s.Text == "SECRET" {
			t.Error("expected bare 'SECRET' with no classification context to be filtered out")
		}
	}
}

func TestGovernmentDetectorFindsCageCode(t *testing.T) {
	d := NewGovernmentDetector()
	spans := d.Detect("Contractor CAGE: 1A2B3 is listed on the award.")
	found := false
	for _, s := range spans {
		if s.EntityType == "CAGE_CODE" && s.Text == "1A2B3" {
			found = true
		}
	}
	if !found {
		t.Error("expected government detector to find the CAGE code")
	}
}
