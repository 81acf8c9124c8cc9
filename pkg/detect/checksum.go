package detect

// ChecksumDetector finds algorithmically validated identifiers: SSN,
// credit cards, NPI, DEA, IBAN, VIN, ABA routing numbers, and parcel
// tracking numbers. Grounded on spec.md §4.3 and original_source/core/
// detectors/checksum.py. Tier = CHECKSUM: the highest authority, since
// every emitted span passed a mathematical check.
type ChecksumDetector struct {
	patterns []PatternDef
}

// NewChecksumDetector builds the checksum pattern registry.
func NewChecksumDetector() *ChecksumDetector {
	return &ChecksumDetector{patterns: checksumPatterns()}
}

func (d *ChecksumDetector) Name() string    { return "checksum" }
func (d *ChecksumDetector) Tier() Tier       { return TierChecksum }
func (d *ChecksumDetector) IsAvailable() bool { return len(d.patterns) > 0 }

func (d *ChecksumDetector) Detect(text string) []Span {
	return runRegistry(d.patterns, text, d.Name(), d.Tier())
}

func checksumPatterns() []PatternDef {
	return []PatternDef{
		// SSN, credit card, and IBAN tolerate a failing validator: per
		// spec.md §4.1/§8, a structurally-plausible-but-invalid value is
		// still detected, at a downgraded tier and reduced confidence,
		// rather than silently dropped.
		patLenient(`\b\d{3}-\d{2}-\d{4}\b`, "SSN", 0.97, 0, ValidateSSN, 0.55),
		patLenient(`\b(?:4\d{3}|5[1-5]\d{2}|3[47]\d{2}|6(?:011|5\d{2}))[ -]?\d{4}[ -]?\d{4}[ -]?\d{1,4}\b`,
			"CREDIT_CARD", 0.97, 0, ValidateLuhn, 0.45),
		pat(`\b[12]\d{9}\b`, "NPI", 0.95, 0, ValidateNPI),
		pat(`\b[A-Z]{2}\d{7}\b`, "DEA", 0.90, 0, nil),
		patLenient(`\b[A-Z]{2}\d{2}[ ]?[A-Z0-9]{4,30}\b`, "IBAN", 0.97, 0, ValidateIBAN, 0.50),
		pat(`\b[A-HJ-NPR-Z0-9]{17}\b`, "VIN", 0.92, 0, nil),
		pat(`\b\d{9}\b`, "BANK_ROUTING", 0.85, 0, ValidateABA),
		pat(`\b1Z[0-9A-Z]{16}\b`, "TRACKING_NUMBER", 0.93, 0, nil),
		pat(`\b\d{12}\b`, "TRACKING_NUMBER", 0.70, 0, nil),
		pat(`\b(?:94|93|92|95)\d{20}\b`, "TRACKING_NUMBER", 0.90, 0, nil),
	}
}

// ValidateABA validates a 9-digit ABA routing number's embedded checksum:
// 3*(d1+d4+d7) + 7*(d2+d5+d8) + (d3+d6+d9) == 0 mod 10.
func ValidateABA(s string) bool {
	d := digitsOnly(s)
	if len(d) != 9 {
		return false
	}
	digits := make([]int, 9)
	for i, c := range d {
		digits[i] = int(c - '0')
	}
	sum := 3*(digits[0]+digits[3]+digits[6]) +
		7*(digits[1]+digits[4]+digits[7]) +
		(digits[2] + digits[5] + digits[8])
	return sum%10 == 0
}
