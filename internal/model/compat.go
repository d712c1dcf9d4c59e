package model

// Avakahada is the set of birth-nakshatra attributes used in match
// making: the classification of the moon's mansion and sign.
type Avakahada struct {
	Nakshatra NakshatraPosition `json:"nakshatra"`
	Varna     string            `json:"varna"`
	Vashya    string            `json:"vashya"`
	Yoni      string            `json:"yoni"`
	Gana      string            `json:"gana"`
	Nadi      string            `json:"nadi"`
	Rashi     Sign              `json:"rashi"`
	RashiLord Planet            `json:"rashi_lord"`
}

// KutaScore is one of the eight compatibility factors with the points
// awarded out of its maximum.
type KutaScore struct {
	Name   string  `json:"name"`
	Points float64 `json:"points"`
	Max    float64 `json:"max"`
}

// CompatibilityResult is the full ashta-koota evaluation of two charts.
type CompatibilityResult struct {
	Verdict      string      `json:"verdict"`
	Kutas        []KutaScore `json:"kutas"`
	Total        float64     `json:"total"`
	Max          float64     `json:"max"`
	NadiDosha    bool        `json:"nadi_dosha"`
	BhakootDosha bool        `json:"bhakoot_dosha"`
}
