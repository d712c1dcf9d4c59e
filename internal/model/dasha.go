package model

import "time"

// AntardashaPeriod is one sub-period inside a mahadasha.
type AntardashaPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Lord  Planet    `json:"lord"`
	Years float64   `json:"years"`
}

// DashaPeriod is one Vimshottari mahadasha with its sub-periods.
type DashaPeriod struct {
	Start       time.Time          `json:"start"`
	End         time.Time          `json:"end"`
	Lord        Planet             `json:"lord"`
	Antardashas []AntardashaPeriod `json:"antardashas,omitempty"`
	Years       float64            `json:"years"`
}

// DashaTimeline is the full 120-year Vimshottari sequence from birth,
// starting with the balance of the moon-nakshatra lord's period.
type DashaTimeline struct {
	Periods      []DashaPeriod `json:"periods"`
	BalanceYears float64       `json:"balance_years"`
}

// PeriodAt returns the mahadasha and antardasha running at t.
func (d *DashaTimeline) PeriodAt(t time.Time) (DashaPeriod, AntardashaPeriod, bool) {
	for _, p := range d.Periods {
		if t.Before(p.Start) || !t.Before(p.End) {
			continue
		}
		for _, a := range p.Antardashas {
			if !t.Before(a.Start) && t.Before(a.End) {
				return p, a, true
			}
		}
		return p, AntardashaPeriod{}, true
	}
	return DashaPeriod{}, AntardashaPeriod{}, false
}
