package rules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/grahalabs/jyotish/internal/common"
	"github.com/grahalabs/jyotish/internal/model"
)

// ParseSet decodes a rule set document. Unknown fields are rejected so
// a misspelled constraint cannot silently weaken a rule.
func ParseSet(data []byte) (*model.RuleSet, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var set model.RuleSet
	if err := dec.Decode(&set); err != nil {
		return nil, common.NewRuleDefinition("", fmt.Errorf("parse rule set: %w", err))
	}
	return &set, nil
}

// LoadFile reads, parses and compiles a rule set document.
func LoadFile(path string) (*CompiledSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule set %s: %w", path, err)
	}
	set, err := ParseSet(data)
	if err != nil {
		return nil, err
	}
	return Compile(set)
}
