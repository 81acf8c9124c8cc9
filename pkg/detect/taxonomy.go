package detect

import "strings"

// KnownEntityTypes is the closed taxonomy of ~120 entity-type labels this
// core emits. Partitioned by family in entityFamilies below. Published as a
// stable artifact (spec §6): downstream systems interoperate on these
// exact label strings.
var KnownEntityTypes = buildKnownEntityTypes()

// entityCategory maps each normalized entity type to the taxonomy family.
// Built from the same entityFamilies partition as KnownEntityTypes so the
// two can never drift apart.
var entityCategory = buildEntityCategory()

// entityFamilies is the taxonomy's family partition: a category label
// (matching spec.md §3's category_breakdown naming) paired with the entity
// types it covers.
var entityFamilies = []struct {
	category string
	types    []string
}{
	{"identifiers", []string{"SSN", "EIN", "TIN", "ITIN", "PASSPORT", "DRIVER_LICENSE",
		"NATIONAL_ID", "VOTER_ID", "MRN", "HEALTH_PLAN_ID", "MEMBER_ID",
		"NPI", "DEA", "EMPLOYEE_ID", "STUDENT_ID", "VIN"}},
	{"names", []string{"NAME", "NAME_PATIENT", "NAME_PROVIDER", "NAME_RELATIVE", "PERSON", "PER"}},
	{"contact", []string{"EMAIL", "PHONE", "FAX", "URL", "IP_ADDRESS", "MAC_ADDRESS",
		"USERNAME", "HANDLE"}},
	{"geography", []string{"ADDRESS", "ZIP", "CITY", "STATE", "COUNTRY", "FACILITY",
		"GEO_COORDINATE"}},
	{"dates", []string{"DATE", "DATE_DOB", "DATE_ADMISSION", "DATE_DISCHARGE", "DATE_DEATH"}},
	{"demographics", []string{"AGE", "GENDER", "RACE", "ETHNICITY", "RELIGION", "MARITAL_STATUS"}},
	{"financial", []string{"CREDIT_CARD", "BANK_ACCOUNT", "ACCOUNT_NUMBER", "BANK_ROUTING",
		"IBAN", "SWIFT", "CUSIP", "ISIN", "SEDOL", "FIGI", "LEI",
		"BITCOIN_ADDRESS", "ETHEREUM_ADDRESS", "SOLANA_ADDRESS",
		"CARDANO_ADDRESS", "LITECOIN_ADDRESS", "CRYPTO_SEED_PHRASE"}},
	{"healthcare", []string{"DIAGNOSIS", "MEDICATION", "PROCEDURE", "LAB_RESULT",
		"INSURANCE_PROVIDER", "PHARMACY", "HEALTH_CONDITION"}},
	{"employment", []string{"EMPLOYER", "JOB_TITLE", "SALARY"}},
	{"secrets", []string{"AWS_ACCESS_KEY", "AWS_SECRET_KEY", "GITHUB_TOKEN", "GITLAB_TOKEN",
		"SLACK_TOKEN", "STRIPE_KEY", "TWILIO_KEY", "SENDGRID_KEY",
		"GOOGLE_API_KEY", "MAILCHIMP_KEY", "DISCORD_TOKEN", "NPM_TOKEN",
		"PYPI_TOKEN", "NUGET_TOKEN", "HEROKU_KEY", "SQUARE_TOKEN",
		"SHOPIFY_TOKEN", "DATADOG_KEY", "NEWRELIC_KEY", "PRIVATE_KEY",
		"JWT", "BASIC_AUTH", "BEARER_TOKEN", "DB_CONNECTION_STRING",
		"AZURE_KEY", "GENERIC_SECRET", "PASSWORD"}},
	{"government", []string{"CLASSIFICATION_LEVEL", "CLASSIFICATION_MARKING", "SCI_MARKING",
		"DISSEMINATION_CONTROL", "CAGE_CODE", "DUNS_NUMBER", "UEI",
		"DOD_CONTRACT", "GSA_CONTRACT", "CLEARANCE_LEVEL",
		"ITAR_MARKING", "EAR_MARKING"}},
	{"other", []string{"TRACKING_NUMBER"}},
}

func buildKnownEntityTypes() map[string]struct{} {
	set := make(map[string]struct{})
	for _, fam := range entityFamilies {
		for _, t := range fam.types {
			set[t] = struct{}{}
		}
	}
	return set
}

func buildEntityCategory() map[string]string {
	m := make(map[string]string)
	for _, fam := range entityFamilies {
		for _, t := range fam.types {
			m[t] = fam.category
		}
	}
	return m
}

// CategoryForEntityType returns the taxonomy family (e.g. "financial",
// "healthcare", "identifiers", "contact") that entityType belongs to, after
// normalization. Types outside the closed taxonomy (and thus passed through
// by NormalizeEntityType unchanged) fall back to "other".
func CategoryForEntityType(entityType string) string {
	if c, ok := entityCategory[NormalizeEntityType(entityType)]; ok {
		return c
	}
	return "other"
}

// clinicalContextTypes are entity types meaningful only in a clinical
// record context, used by consumers deciding whether HIPAA-style handling
// applies independent of the policy matcher.
var clinicalContextTypes = map[string]struct{}{
	"NAME_PATIENT": {}, "MRN": {}, "DIAGNOSIS": {}, "MEDICATION": {},
	"PROCEDURE": {}, "LAB_RESULT": {}, "DATE_ADMISSION": {},
	"DATE_DISCHARGE": {}, "DATE_DEATH": {}, "HEALTH_PLAN_ID": {},
	"HEALTH_CONDITION": {},
}

// IsClinicalContextType reports whether entityType belongs to the clinical
// subset of the taxonomy.
func IsClinicalContextType(entityType string) bool {
	_, ok := clinicalContextTypes[entityType]
	return ok
}

// ValidateEntityType reports whether entityType is a member of the closed
// taxonomy.
func ValidateEntityType(entityType string) bool {
	_, ok := KnownEntityTypes[entityType]
	return ok
}

// entityTypeAliases maps common variant spellings to the canonical label,
// mirroring citadel's NormalizeCategory keyword-fallback idiom
// (pkg/ml/category.go) adapted to this taxonomy.
var entityTypeAliases = map[string]string{
	"SOCIAL_SECURITY_NUMBER": "SSN",
	"CREDITCARD":             "CREDIT_CARD",
	"CC_NUMBER":              "CREDIT_CARD",
	"EMAIL_ADDRESS":          "EMAIL",
	"PHONE_NUMBER":           "PHONE",
	"IP":                     "IP_ADDRESS",
	"IPADDR":                 "IP_ADDRESS",
	"MAC":                    "MAC_ADDRESS",
	"DOB":                    "DATE_DOB",
	"BTC_ADDRESS":            "BITCOIN_ADDRESS",
	"ETH_ADDRESS":            "ETHEREUM_ADDRESS",
	"ZIPCODE":                "ZIP",
	"ZIP_CODE":               "ZIP",
	"MEDICAL_RECORD_NUMBER":  "MRN",
	"DRIVERS_LICENSE":        "DRIVER_LICENSE",
}

// NormalizeEntityType canonicalizes entityType: direct taxonomy membership
// first, then a known-alias lookup, then a case-insensitive retry, and
// finally the input unchanged (normalization never fails; an unrecognized
// type is simply passed through so entity_counts still records it).
func NormalizeEntityType(entityType string) string {
	if ValidateEntityType(entityType) {
		return entityType
	}
	upper := strings.ToUpper(strings.TrimSpace(entityType))
	if canon, ok := entityTypeAliases[upper]; ok {
		return canon
	}
	if ValidateEntityType(upper) {
		return upper
	}
	return entityType
}
