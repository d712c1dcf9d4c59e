package model

// TransitPosition places one transiting graha relative to a natal
// chart: its current sign and its house counted from both the lagna and
// the natal moon.
type TransitPosition struct {
	Planet         Planet `json:"planet"`
	Sign           Sign   `json:"sign"`
	HouseFromLagna int    `json:"house_from_lagna"`
	HouseFromMoon  int    `json:"house_from_moon"`
	Retrograde     bool   `json:"retrograde"`
}

// SadeSatiPhase names where Saturn stands in its seven-and-a-half-year
// passage over the natal moon.
type SadeSatiPhase string

// Sade sati phases. Dhaiya is the shorter panoti from houses 4 and 8.
const (
	SadeSatiNone    SadeSatiPhase = ""
	SadeSatiRising  SadeSatiPhase = "rising"
	SadeSatiPeak    SadeSatiPhase = "peak"
	SadeSatiSetting SadeSatiPhase = "setting"
	SadeSatiDhaiya  SadeSatiPhase = "dhaiya"
)

// SadeSatiStatus reports whether Saturn currently afflicts the natal
// moon and in which phase.
type SadeSatiStatus struct {
	Phase  SadeSatiPhase `json:"phase,omitempty"`
	Active bool          `json:"active"`
}

// TransitSnapshot relates current positions to a natal chart.
type TransitSnapshot struct {
	Positions []TransitPosition `json:"positions"`
	SadeSati  SadeSatiStatus    `json:"sade_sati"`
	MoonSign  Sign              `json:"moon_sign"`
	LagnaSign Sign              `json:"lagna_sign"`
}
