package model

// StrengthGrade buckets a house's net benefic score.
type StrengthGrade string

// Strength grades.
const (
	StrengthStrong  StrengthGrade = "strong"
	StrengthAverage StrengthGrade = "average"
	StrengthWeak    StrengthGrade = "weak"
)

// HouseOccupant records one graha contributing to a house's score.
type HouseOccupant struct {
	Planet  Planet `json:"planet"`
	Benefic bool   `json:"benefic"`
}

// HouseStrength is the occupancy-based strength of one house. Score is
// the net benefic count; Grade buckets it.
type HouseStrength struct {
	Grade     StrengthGrade   `json:"grade"`
	Occupants []HouseOccupant `json:"occupants,omitempty"`
	House     int             `json:"house"`
	Score     int             `json:"score"`
}
