package model

import (
	"encoding/json"
	"fmt"
)

// Severity grades how strongly an affliction manifests. The numeric
// ordering lets rules express minimum-severity thresholds.
type Severity int

// Severity grades, lowest to highest.
const (
	SeverityLow Severity = iota + 1
	SeverityMedium
	SeverityHigh
)

var severityNames = map[Severity]string{
	SeverityLow:    "low",
	SeverityMedium: "medium",
	SeverityHigh:   "high",
}

// ParseSeverity resolves a severity label.
func ParseSeverity(name string) (Severity, error) {
	for s, n := range severityNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown severity %q", name)
}

func (s Severity) String() string {
	if n, ok := severityNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// MarshalJSON encodes the severity as its label.
func (s Severity) MarshalJSON() ([]byte, error) {
	n, ok := severityNames[s]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid severity %d", int(s))
	}
	return json.Marshal(n)
}

// UnmarshalJSON decodes a severity from its label.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// DoshaKind identifies a detectable affliction pattern.
type DoshaKind string

// Detectable doshas, in report order.
const (
	MangalDosha   DoshaKind = "mangal"
	KaalSarpDosha DoshaKind = "kaal_sarp"
)

// DoshaKinds lists the detectable doshas in canonical order. Findings
// are always reported in this order.
var DoshaKinds = []DoshaKind{MangalDosha, KaalSarpDosha}

// Evidence is one structured fact backing a finding or a rule match: the
// entity that satisfied a condition and a snapshot of the attributes
// that satisfied it. Fields not relevant to the entity stay empty.
type Evidence struct {
	Entity     string  `json:"entity"`
	Key        string  `json:"key"`
	Chart      string  `json:"chart,omitempty"`
	Sign       string  `json:"sign,omitempty"`
	Nakshatra  string  `json:"nakshatra,omitempty"`
	Strength   string  `json:"strength,omitempty"`
	Severity   string  `json:"severity,omitempty"`
	Variant    string  `json:"variant,omitempty"`
	Degree     float64 `json:"degree,omitempty"`
	House      int     `json:"house,omitempty"`
	Retrograde bool    `json:"retrograde,omitempty"`
}

// Evidence entity discriminators.
const (
	EvidencePlanet = "planet"
	EvidenceHouse  = "house"
	EvidenceDosha  = "dosha"
)

// DoshaFinding is one detected affliction, fully structured: which
// pattern, which variant of it, how severe, and the placements that
// triggered it.
type DoshaFinding struct {
	Kind     DoshaKind  `json:"kind"`
	Variant  string     `json:"variant,omitempty"`
	Evidence []Evidence `json:"evidence"`
	Severity Severity   `json:"severity"`
}
