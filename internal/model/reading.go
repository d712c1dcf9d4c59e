package model

import "github.com/google/uuid"

// readingNamespace seeds deterministic reading IDs so identical inputs
// always produce the identical reading, byte for byte.
var readingNamespace = uuid.MustParse("8c9e6f42-4d2a-5b18-9c7d-1e3f5a7b9d02")

// Reading is the complete derived output for one request: the rashi
// chart, the requested vargas, house strengths, dosha findings and the
// rule matches that held. Everything in it is structured and
// deterministic; free-text interpretation happens elsewhere.
type Reading struct {
	Birth          BirthInput        `json:"birth"`
	ID             string            `json:"id"`
	Fingerprint    string            `json:"fingerprint"`
	EngineVersion  string            `json:"engine_version"`
	Chart          Chart             `json:"chart"`
	Avakahada      *Avakahada        `json:"avakahada,omitempty"`
	Dasha          *DashaTimeline    `json:"dasha,omitempty"`
	Divisionals    []DivisionalChart `json:"divisionals,omitempty"`
	Strengths      []HouseStrength   `json:"strengths"`
	Doshas         []DoshaFinding    `json:"doshas"`
	Matches        []RuleMatch       `json:"matches"`
	RuleSetVersion int64             `json:"rule_set_version"`
}

// ReadingID derives the deterministic reading identifier for a
// fingerprint.
func ReadingID(fingerprint string) string {
	return uuid.NewSHA1(readingNamespace, []byte(fingerprint)).String()
}
