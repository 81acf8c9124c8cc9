package detect

import (
	"encoding/base64"
	"strings"
)

// SecretsDetector finds credential and secret-key material: cloud provider
// keys, VCS tokens, chat/payment platform tokens, PEM private keys, JWTs,
// and connection strings with embedded credentials. Tier = PATTERN (high
// confidence): grounded on spec.md §4.4 and original_source/core/
// detectors/secrets.go.
type SecretsDetector struct {
	patterns []PatternDef
}

func NewSecretsDetector() *SecretsDetector {
	return &SecretsDetector{patterns: secretsPatterns()}
}

func (d *SecretsDetector) Name() string     { return "secrets" }
func (d *SecretsDetector) Tier() Tier        { return TierPattern }
func (d *SecretsDetector) IsAvailable() bool { return len(d.patterns) > 0 }

func (d *SecretsDetector) Detect(text string) []Span {
	spans := runRegistry(d.patterns, text, d.Name(), d.Tier())
	out := spans[:0]
	for _, s := range spans {
		if s.EntityType == "JWT" && !validateJWT(s.Text) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func secretsPatterns() []PatternDef {
	return []PatternDef{
		pat(`\b(?:AKIA|ABIA|ACCA|ASIA)[0-9A-Z]{16}\b`, "AWS_ACCESS_KEY", 0.97, 0, nil),
		pat(`(?i)aws_secret_access_key\s*[:=]\s*['"]?([A-Za-z0-9/+=]{40})['"]?`, "AWS_SECRET_KEY", 0.90, 1, nil),
		pat(`\bghp_[A-Za-z0-9]{36}\b`, "GITHUB_TOKEN", 0.98, 0, nil),
		pat(`\bgho_[A-Za-z0-9]{36}\b`, "GITHUB_TOKEN", 0.98, 0, nil),
		pat(`\bghu_[A-Za-z0-9]{36}\b`, "GITHUB_TOKEN", 0.98, 0, nil),
		pat(`\bghs_[A-Za-z0-9]{36}\b`, "GITHUB_TOKEN", 0.98, 0, nil),
		pat(`\bglpat-[A-Za-z0-9_-]{20}\b`, "GITLAB_TOKEN", 0.97, 0, nil),
		pat(`\bxox[bapr]-[A-Za-z0-9-]{10,72}\b`, "SLACK_TOKEN", 0.97, 0, nil),
		pat(`\bsk_live_[A-Za-z0-9]{24,}\b`, "STRIPE_KEY", 0.98, 0, nil),
		pat(`\bpk_live_[A-Za-z0-9]{24,}\b`, "STRIPE_KEY", 0.95, 0, nil),
		pat(`\bwhsec_[A-Za-z0-9]{32,}\b`, "STRIPE_KEY", 0.97, 0, nil),
		pat(`\bAC[a-f0-9]{32}\b`, "TWILIO_KEY", 0.92, 0, nil),
		pat(`\bSK[a-f0-9]{32}\b`, "TWILIO_KEY", 0.92, 0, nil),
		pat(`\bSG\.[A-Za-z0-9_-]{22}\.[A-Za-z0-9_-]{43}\b`, "SENDGRID_KEY", 0.98, 0, nil),
		pat(`\bAIza[A-Za-z0-9_-]{35}\b`, "GOOGLE_API_KEY", 0.97, 0, nil),
		pat(`\b[0-9a-f]{32}-us[0-9]{1,2}\b`, "MAILCHIMP_KEY", 0.93, 0, nil),
		pat(`\bmfa\.[A-Za-z0-9_-]{84}\b`, "DISCORD_TOKEN", 0.95, 0, nil),
		pat(`\bnpm_[A-Za-z0-9]{36}\b`, "NPM_TOKEN", 0.97, 0, nil),
		pat(`\bpypi-AgEIcHlwaS5vcmc[A-Za-z0-9_-]{50,}\b`, "PYPI_TOKEN", 0.97, 0, nil),
		pat(`\boy2[A-Za-z0-9]{43}\b`, "NUGET_TOKEN", 0.90, 0, nil),
		pat(`\b[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\b(?i:.{0,20}heroku)`, "HEROKU_KEY", 0.70, 0, nil),
		pat(`\bsq0[a-z]{3}-[A-Za-z0-9_-]{22,43}\b`, "SQUARE_TOKEN", 0.95, 0, nil),
		pat(`\bshpat_[a-fA-F0-9]{32}\b`, "SHOPIFY_TOKEN", 0.97, 0, nil),
		pat(`\b[a-f0-9]{32}\b(?i:.{0,20}datadog)`, "DATADOG_KEY", 0.65, 0, nil),
		pat(`(?i)new[_-]?relic.{0,20}([a-f0-9]{40})`, "NEWRELIC_KEY", 0.75, 1, nil),
		pat(`-----BEGIN [A-Z ]+PRIVATE KEY-----`, "PRIVATE_KEY", 0.99, 0, nil),
		pat(`\beyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\b`, "JWT", 0.90, 0, nil),
		pat(`(?i)\bauthorization:\s*basic\s+[A-Za-z0-9+/=]{8,}\b`, "BASIC_AUTH", 0.85, 0, nil),
		pat(`(?i)\bbearer\s+[A-Za-z0-9._-]{16,}\b`, "BEARER_TOKEN", 0.80, 0, nil),
		pat(`\b(?:postgres|postgresql|mysql|mongodb|mongodb\+srv|redis|rediss|jdbc:[a-z]+):\/\/[^\s:]+:[^\s@]+@[^\s/]+`,
			"DB_CONNECTION_STRING", 0.93, 0, nil),
		pat(`(?i)\bDefaultEndpointsProtocol=https;AccountName=[^;]+;AccountKey=[A-Za-z0-9+/=]{20,}`,
			"AZURE_KEY", 0.95, 0, nil),
		pat(`(?i)\b(?:password|passwd|pwd|api[_-]?key|secret|contraseña|mot de passe|passwort)\s*[:=]\s*['"]([^\s'"]{6,64})['"]`,
			"GENERIC_SECRET", 0.82, 1, nil),
	}
}

// validateJWT checks three-part base64url structure and that the first
// two parts decode as bytes (not necessarily valid JSON — the original
// source applies the same lenient check).
func validateJWT(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts[:2] {
		if p == "" {
			return false
		}
		padded := p
		if m := len(padded) % 4; m != 0 {
			padded += strings.Repeat("=", 4-m)
		}
		if _, err := base64.URLEncoding.DecodeString(padded); err != nil {
			if _, err2 := base64.RawURLEncoding.DecodeString(p); err2 != nil {
				return false
			}
		}
	}
	return true
}
