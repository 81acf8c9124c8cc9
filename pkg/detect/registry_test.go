package detect

import (
	"errors"
	"testing"
)

func TestBuildDetectorsSkipsUnavailableByDefault(t *testing.T) {
	detectors, err := BuildDetectors(DefaultDetectorNames(), false)
	if err != nil {
		t.Fatalf("unexpected error building default detectors: %v", err)
	}
	for _, d := range detectors {
		if d.Name() == "ml" {
			t.Error("expected the unavailable stub ML detector to be skipped by default")
		}
	}
	if len(detectors) != len(DefaultDetectorNames())-1 {
		t.Errorf("expected all detectors except the ML stub to build, got %d", len(detectors))
	}
}

func TestBuildDetectorsIncludesUnavailableWhenRequested(t *testing.T) {
	detectors, err := BuildDetectors([]string{"ml"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(detectors) != 1 || detectors[0].Name() != "ml" {
		t.Fatalf("expected the stub ML detector to be included when requested, got %+v", detectors)
	}
}

func TestBuildDetectorsUnknownNameErrors(t *testing.T) {
	_, err := BuildDetectors([]string{"not_a_real_detector"}, false)
	if err == nil {
		t.Fatal("expected an error for an unregistered detector name")
	}
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected the error to wrap ErrConfiguration, got %v", err)
	}
}

func TestRegisterDetectorAddsNewFactory(t *testing.T) {
	RegisterDetector("custom_test_detector", func() (Detector, error) {
		return NewStubMLDetector(), nil
	})
	detectors, err := BuildDetectors([]string{"custom_test_detector"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(detectors) != 1 {
		t.Fatalf("expected the newly registered detector to build, got %+v", detectors)
	}
}

func TestDefaultDetectorNamesOrdersChecksumFirst(t *testing.T) {
	names := DefaultDetectorNames()
	if len(names) == 0 || names[0] != "checksum" {
		t.Errorf("expected checksum to lead the default detector order, got %v", names)
	}
}
