package detect

import "fmt"

// Factory builds a Detector. Registered factories take no arguments today
// (none of the built-in detectors need configuration beyond their own
// pattern tables), but the signature returns an error to leave room for
// one that does without an interface-breaking change later.
type Factory func() (Detector, error)

// registry is the explicit construction-time detector table. Per
// spec.md §9's redesign flag, this replaces the Python original's
// decorator-based self-registration (scanning loaded modules for classes
// bearing an @register_detector annotation) with a plain, readable map
// populated once at package init — no reflection, no import-order-
// dependent side effects.
var registry = map[string]Factory{
	"checksum":     func() (Detector, error) { return NewChecksumDetector(), nil },
	"secrets":      func() (Detector, error) { return NewSecretsDetector(), nil },
	"financial":    func() (Detector, error) { return NewFinancialDetector(), nil },
	"government":   func() (Detector, error) { return NewGovernmentDetector(), nil },
	"generic_pii":  func() (Detector, error) { return NewGenericPIIDetector(), nil },
	"ml":           func() (Detector, error) { return NewStubMLDetector(), nil },
}

// DefaultDetectorNames lists every registered detector in the teacher's
// usual tier order: checksum first (highest authority), ML last (lowest,
// and absent unless a caller swaps in a real implementation).
func DefaultDetectorNames() []string {
	return []string{"checksum", "financial", "government", "generic_pii", "secrets", "ml"}
}

// RegisterDetector adds or replaces a factory under name, letting a
// caller substitute a real ML-backed detector for the stub, or add a
// detector family this module doesn't ship.
func RegisterDetector(name string, factory Factory) {
	registry[name] = factory
}

// BuildDetectors instantiates the named detectors in order, skipping ones
// whose IsAvailable() reports false (the stub ML detector, typically)
// unless includeUnavailable is set.
func BuildDetectors(names []string, includeUnavailable bool) ([]Detector, error) {
	detectors := make([]Detector, 0, len(names))
	for _, name := range names {
		factory, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown detector %q", ErrConfiguration, name)
		}
		d, err := factory()
		if err != nil {
			return nil, fmt.Errorf("building detector %q: %w", name, err)
		}
		if !includeUnavailable && !d.IsAvailable() {
			continue
		}
		detectors = append(detectors, d)
	}
	return detectors, nil
}
