package model

import (
	"fmt"
	"time"
)

// Ayanamsa names the sidereal reference used to produce the supplied
// positions. The engine never converts between ayanamsas; the value is
// carried so that cached results are keyed by it.
type Ayanamsa string

// Supported ayanamsa labels.
const (
	Lahiri  Ayanamsa = "lahiri"
	Raman   Ayanamsa = "raman"
	Krishna Ayanamsa = "krishnamurti"
)

// DefaultAyanamsa is assumed when the input leaves the field empty.
const DefaultAyanamsa = Lahiri

// UTC offsets observed in civil time fall within -12:00..+14:00.
const (
	minUTCOffsetMinutes = -12 * 60
	maxUTCOffsetMinutes = 14 * 60
)

// BirthInput captures the birth instant and place a chart is derived
// for. Date and Time are kept as strings so the canonical form, and
// therefore the fingerprint, is independent of float formatting and
// timezone databases.
type BirthInput struct {
	Date             string   `json:"date"`
	Time             string   `json:"time"`
	Ayanamsa         Ayanamsa `json:"ayanamsa,omitempty"`
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	UTCOffsetMinutes int      `json:"utc_offset_minutes"`
}

// Validate checks the birth details without deriving anything.
func (b BirthInput) Validate() error {
	if _, err := time.Parse("2006-01-02", b.Date); err != nil {
		return fmt.Errorf("date %q is not YYYY-MM-DD: %w", b.Date, err)
	}
	if _, err := parseClock(b.Time); err != nil {
		return err
	}
	if b.Latitude < -90 || b.Latitude > 90 {
		return fmt.Errorf("latitude %v outside [-90, 90]", b.Latitude)
	}
	if b.Longitude < -180 || b.Longitude > 180 {
		return fmt.Errorf("longitude %v outside [-180, 180]", b.Longitude)
	}
	if b.UTCOffsetMinutes < minUTCOffsetMinutes || b.UTCOffsetMinutes > maxUTCOffsetMinutes {
		return fmt.Errorf("utc offset %d minutes outside [%d, %d]",
			b.UTCOffsetMinutes, minUTCOffsetMinutes, maxUTCOffsetMinutes)
	}
	if b.Ayanamsa != "" {
		switch b.Ayanamsa {
		case Lahiri, Raman, Krishna:
		default:
			return fmt.Errorf("unknown ayanamsa %q", b.Ayanamsa)
		}
	}
	return nil
}

// Canonical returns the normalized form used for fingerprinting: the
// time padded to HH:MM:SS and the ayanamsa defaulted. Two inputs that
// canonicalize identically derive identical charts.
func (b BirthInput) Canonical() BirthInput {
	out := b
	if t, err := parseClock(b.Time); err == nil {
		out.Time = t.Format("15:04:05")
	}
	if out.Ayanamsa == "" {
		out.Ayanamsa = DefaultAyanamsa
	}
	return out
}

// Timestamp composes the birth instant in its fixed-offset zone.
func (b BirthInput) Timestamp() (time.Time, error) {
	if err := b.Validate(); err != nil {
		return time.Time{}, err
	}
	c := b.Canonical()
	loc := time.FixedZone(fmt.Sprintf("UTC%+d", b.UTCOffsetMinutes/60), b.UTCOffsetMinutes*60)
	return time.ParseInLocation("2006-01-02 15:04:05", c.Date+" "+c.Time, loc)
}

func parseClock(s string) (time.Time, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("time %q is not HH:MM or HH:MM:SS", s)
}
