package detect

import "testing"

func TestGenericPIIDetectorFindsEmail(t *testing.T) {
	d := NewGenericPIIDetector()
	spans := d.Detect("Reach out at jane.doe@example.com for details.")
	found := false
	for _, s := range spans {
		if s.EntityType == "EMAIL" && s.Text == "jane.doe@example.com" {
			found = true
		}
	}
	if !found {
		t.Error("expected generic PII detector to find the email address")
	}
}

func TestGenericPIIDetectorFiltersFalsePositiveNames(t *testing.T) {
	d := NewGenericPIIDetector()
	spans := d.Detect("Dr. Laboratory Results reviewed the case file yesterday.")
	for _, s := range spans {
		if s.EntityType == "NAME" {
			t.Errorf("expected a deny-listed two-word phrase after an honorific to be filtered, got %+v", s)
		}
	}
}

func TestGenericPIIDetectorFindsNameWithCredential(t *testing.T) {
	d := NewGenericPIIDetector()
	spans := d.Detect("Consult was performed by John Anderson, MD yesterday.")
	found := false
	for _, s := range spans {
		if s.EntityType == "NAME" {
			found = true
		}
	}
	if !found {
		t.Error("expected generic PII detector to find the credentialed name")
	}
}

func TestGenericPIIDetectorAgeRangeFilter(t *testing.T) {
	d := NewGenericPIIDetector()
	inRange := d.Detect("The patient is a 45-year-old male.")
	foundAge := false
	for _, s := range inRange {
		if s.EntityType == "AGE" {
			foundAge = true
		}
	}
	if !foundAge {
		t.Error("expected a plausible age to be detected")
	}

	outOfRange := d.Detect("Serial number 999-year-old widget model.")
	for _, s := range outOfRange {
		if s.EntityType == "AGE" {
			t.Errorf("expected an out-of-range age value to be filtered, got %+v", s)
		}
	}
}

func TestHasProductCodePrefix(t *testing.T) {
	text := "item-AB12345 needs restocking"
	if !hasProductCodePrefix(text, 5) {
		t.Error("expected 'item-' immediately before the match to be recognized as a product-code prefix")
	}
	text2 := "Regarding AB12345 the patient record"
	if hasProductCodePrefix(text2, 10) {
		t.Error("did not expect an unrelated preceding word to be treated as a product-code prefix")
	}
}
