// Package classify assigns question-type and difficulty labels used for
// stratified accuracy reporting. The type taxonomy is a data file so new
// question categories never require a code change.
package classify

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// QuestionType labels the intent of a question.
type QuestionType string

const (
	TypeQuantity    QuestionType = "quantity"
	TypePercentage  QuestionType = "percentage"
	TypeFactual     QuestionType = "factual"
	TypeChange      QuestionType = "change"
	TypeExplanation QuestionType = "explanation"
	TypeComparison  QuestionType = "comparison"
	TypeOther       QuestionType = "other"
)

//go:embed taxonomy.yaml
var embeddedTaxonomy []byte

// TaxonomyEntry maps one question type to its trigger keywords.
type TaxonomyEntry struct {
	Type     QuestionType `yaml:"type" json:"type"`
	Keywords []string     `yaml:"keywords" json:"keywords"`
}

// Taxonomy is an ordered keyword rubric for question typing. Entry order is
// significant: the first entry with a matching keyword wins.
type Taxonomy struct {
	Version     string          `yaml:"version" json:"version"`
	Name        string          `yaml:"name" json:"name"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
	Types       []TaxonomyEntry `yaml:"types" json:"types"`
	Fallback    QuestionType    `yaml:"fallback" json:"fallback"`
}

// DefaultTaxonomy returns the embedded financial question taxonomy.
func DefaultTaxonomy() *Taxonomy {
	taxonomy, err := parseTaxonomy(embeddedTaxonomy)
	if err != nil {
		// The embedded rubric is validated by tests; reaching this is a build defect.
		panic(fmt.Sprintf("embedded taxonomy invalid: %v", err))
	}
	return taxonomy
}

// LoadTaxonomy loads a taxonomy rubric from a YAML file.
func LoadTaxonomy(path string) (*Taxonomy, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("taxonomy path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}
	return parseTaxonomy(data)
}

func parseTaxonomy(data []byte) (*Taxonomy, error) {
	var taxonomy Taxonomy
	if err := yaml.Unmarshal(data, &taxonomy); err != nil {
		return nil, fmt.Errorf("decode taxonomy: %w", err)
	}
	if err := taxonomy.Validate(); err != nil {
		return nil, err
	}
	return &taxonomy, nil
}

// Validate ensures the rubric is well-formed.
func (t *Taxonomy) Validate() error {
	if len(t.Types) == 0 {
		return fmt.Errorf("taxonomy types are required")
	}
	for _, entry := range t.Types {
		if strings.TrimSpace(string(entry.Type)) == "" {
			return fmt.Errorf("taxonomy entry type is required")
		}
		if len(entry.Keywords) == 0 {
			return fmt.Errorf("taxonomy entry %s has no keywords", entry.Type)
		}
	}
	if strings.TrimSpace(string(t.Fallback)) == "" {
		return fmt.Errorf("taxonomy fallback type is required")
	}
	return nil
}

// QuestionType resolves the type label for a question.
func (t *Taxonomy) QuestionType(question string) QuestionType {
	lower := strings.ToLower(question)
	for _, entry := range t.Types {
		for _, keyword := range entry.Keywords {
			if strings.Contains(lower, keyword) {
				return entry.Type
			}
		}
	}
	return t.Fallback
}
