package parser

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

//go:embed vocabulary.yaml
var defaultVocabularyYAML []byte

// Vocabulary holds the phrase tables behind rule categorization and the
// faction keyword split.
type Vocabulary struct {
	CoreRules           []string `yaml:"core_rules"`
	FactionRules        []string `yaml:"faction_rules"`
	WeaponRules         []string `yaml:"weapon_rules"`
	GenericProfileTypes []string `yaml:"generic_profile_types"`
	FactionKeywords     []string `yaml:"faction_keywords"`
}

// DefaultVocabulary returns the built-in tables.
func DefaultVocabulary() Vocabulary {
	var v Vocabulary
	if err := yaml.Unmarshal(defaultVocabularyYAML, &v); err != nil {
		panic(fmt.Sprintf("parser: embedded vocabulary: %v", err))
	}
	return v
}

// LoadVocabulary reads a YAML override. Lists absent from the file keep
// their built-in values.
func LoadVocabulary(path string) (Vocabulary, error) {
	v := DefaultVocabulary()
	data, err := os.ReadFile(path)
	if err != nil {
		return v, fmt.Errorf("vocabulary: read %s: %w", path, err)
	}
	var override Vocabulary
	if err := yaml.UnmarshalStrict(data, &override); err != nil {
		return v, fmt.Errorf("vocabulary: parse %s: %w", path, err)
	}
	if override.CoreRules != nil {
		v.CoreRules = override.CoreRules
	}
	if override.FactionRules != nil {
		v.FactionRules = override.FactionRules
	}
	if override.WeaponRules != nil {
		v.WeaponRules = override.WeaponRules
	}
	if override.GenericProfileTypes != nil {
		v.GenericProfileTypes = override.GenericProfileTypes
	}
	if override.FactionKeywords != nil {
		v.FactionKeywords = override.FactionKeywords
	}
	return v, nil
}
