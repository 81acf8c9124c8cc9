package detect

// FinancialDetector finds financial instrument identifiers and
// cryptocurrency addresses: CUSIP, ISIN, SEDOL, SWIFT/BIC, FIGI, LEI, and
// Bitcoin/Ethereum/Solana/Cardano/Litecoin addresses plus BIP-39 seed
// phrases. Tier = PATTERN, grounded on spec.md §4.5 and original_source/
// core/detectors/financial.go.
type FinancialDetector struct {
	patterns []PatternDef
}

func NewFinancialDetector() *FinancialDetector {
	return &FinancialDetector{patterns: financialPatterns()}
}

func (d *FinancialDetector) Name() string     { return "financial" }
func (d *FinancialDetector) Tier() Tier        { return TierPattern }
func (d *FinancialDetector) IsAvailable() bool { return len(d.patterns) > 0 }

func (d *FinancialDetector) Detect(text string) []Span {
	spans := runRegistry(d.patterns, text, d.Name(), d.Tier())
	out := spans[:0]
	for _, s := range spans {
		if s.EntityType == "CRYPTO_SEED_PHRASE" && !ValidateSeedPhrase(s.Text) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func financialPatterns() []PatternDef {
	return []PatternDef{
		pat(`\b[0-9A-Z]{9}\b`, "CUSIP", 0.90, 0, ValidateCUSIP),
		pat(`\b[A-Z]{2}[0-9A-Z]{9}[0-9]\b`, "ISIN", 0.92, 0, ValidateISIN),
		pat(`\b[0-9B-DF-HJ-NP-TV-Z]{6}[0-9]\b`, "SEDOL", 0.85, 0, ValidateSEDOL),
		pat(`\b[A-Z]{6}[A-Z0-9]{2}(?:[A-Z0-9]{3})?\b`, "SWIFT", 0.80, 0, ValidateSWIFT),
		pat(`\bBBG[A-Z0-9]{9}\b`, "FIGI", 0.93, 0, nil),
		pat(`\b[A-Z0-9]{18}[0-9]{2}\b`, "LEI", 0.92, 0, ValidateLEI),
		pat(`\b[13][a-km-zA-HJ-NP-Z1-9]{25,34}\b`, "BITCOIN_ADDRESS", 0.90, 0, ValidateBitcoinBase58),
		pat(`\bbc1[qpzry9x8gf2tvdw0s3jn54khce6mua7l]{11,71}\b`, "BITCOIN_ADDRESS", 0.92, 0, ValidateBitcoinBech32),
		pat(`\b0x[a-fA-F0-9]{40}\b`, "ETHEREUM_ADDRESS", 0.90, 0, ValidateEthereum),
		pat(`\b[1-9A-HJ-NP-Za-km-z]{32,44}\b`, "SOLANA_ADDRESS", 0.55, 0, nil),
		pat(`\baddr1[a-z0-9]{50,}\b`, "CARDANO_ADDRESS", 0.85, 0, nil),
		pat(`\b[LM3][a-km-zA-HJ-NP-Z1-9]{26,33}\b`, "LITECOIN_ADDRESS", 0.65, 0, nil),
		pat(`\b(?:[a-z]+(?:\s+[a-z]+){11}|[a-z]+(?:\s+[a-z]+){14}|[a-z]+(?:\s+[a-z]+){17}|[a-z]+(?:\s+[a-z]+){20}|[a-z]+(?:\s+[a-z]+){23})\b`,
			"CRYPTO_SEED_PHRASE", 0.60, 0, nil),
	}
}
