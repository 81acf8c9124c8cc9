package detect

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed policies/builtin.yaml
var builtinPolicyYAML []byte

type policyPackFile struct {
	Packs []PolicyPack `yaml:"packs"`
}

// BuiltinPolicyPacks parses the embedded builtin pack set (HIPAA, GDPR,
// PCI-DSS, CCPA, PII, PHI) on every call; packs are small and evaluation
// is not hot-path-sensitive enough to warrant caching a package-level
// var that callers could then mutate through Obligation's slice fields.
func BuiltinPolicyPacks() ([]PolicyPack, error) {
	var file policyPackFile
	if err := yaml.Unmarshal(builtinPolicyYAML, &file); err != nil {
		return nil, fmt.Errorf("detect: parsing builtin policy packs: %w", err)
	}
	return file.Packs, nil
}

// LoadPolicyPacks parses a caller-supplied YAML document in the same
// `packs: [...]` shape as the builtin set, for organizations that need a
// pack outside the six shipped here (the PolicyCategory taxonomy names
// 19 values; this lets a caller cover the rest).
func LoadPolicyPacks(yamlDoc []byte) ([]PolicyPack, error) {
	var file policyPackFile
	if err := yaml.Unmarshal(yamlDoc, &file); err != nil {
		return nil, fmt.Errorf("detect: parsing policy packs: %w", err)
	}
	return file.Packs, nil
}
