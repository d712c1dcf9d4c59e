package model

import "testing"

func TestSignFromLongitude(t *testing.T) {
	tests := []struct {
		name      string
		want      Sign
		longitude float64
	}{
		{name: "start of zodiac", longitude: 0, want: Aries},
		{name: "middle of aries", longitude: 15.5, want: Aries},
		{name: "first degree of taurus", longitude: 30, want: Taurus},
		{name: "just under a boundary", longitude: 29.999999, want: Aries},
		{name: "scorpio", longitude: 213.42, want: Scorpio},
		{name: "last degree", longitude: 359.999, want: Pisces},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SignFromLongitude(tt.longitude); got != tt.want {
				t.Errorf("SignFromLongitude(%v) = %v, want %v", tt.longitude, got, tt.want)
			}
		})
	}
}

func TestSignArithmetic(t *testing.T) {
	if got := Capricorn.Add(3); got != Aries {
		t.Errorf("Capricorn.Add(3) = %v, want Aries", got)
	}
	if got := Aries.Add(-1); got != Pisces {
		t.Errorf("Aries.Add(-1) = %v, want Pisces", got)
	}
	if got := Aries.DistanceTo(Aries); got != 1 {
		t.Errorf("Aries.DistanceTo(Aries) = %d, want 1", got)
	}
	if got := Leo.DistanceTo(Cancer); got != 12 {
		t.Errorf("Leo.DistanceTo(Cancer) = %d, want 12", got)
	}
	if got := Scorpio.DistanceTo(Taurus); got != 7 {
		t.Errorf("Scorpio.DistanceTo(Taurus) = %d, want 7", got)
	}
}

func TestPlanetOrderIsStable(t *testing.T) {
	want := []Planet{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}
	if len(Planets) != len(want) {
		t.Fatalf("Planets has %d entries, want %d", len(Planets), len(want))
	}
	for i, p := range want {
		if Planets[i] != p {
			t.Errorf("Planets[%d] = %v, want %v", i, Planets[i], p)
		}
		if got := p.Index(); got != i {
			t.Errorf("%v.Index() = %d, want %d", p, got, i)
		}
	}
}

func TestParsePlanet(t *testing.T) {
	if _, err := ParsePlanet("Jupiter"); err != nil {
		t.Errorf("ParsePlanet(Jupiter) error = %v, want nil", err)
	}
	if _, err := ParsePlanet("Pluto"); err == nil {
		t.Error("ParsePlanet(Pluto) error = nil, want error")
	}
	if _, err := ParsePlanet("jupiter"); err == nil {
		t.Error("ParsePlanet(jupiter) error = nil, want error for wrong case")
	}
}

func TestPlanetClasses(t *testing.T) {
	beneficWant := map[Planet]bool{
		Jupiter: true, Venus: true, Mercury: true, Moon: true,
	}
	for _, p := range Planets {
		if got := p.IsBenefic(); got != beneficWant[p] {
			t.Errorf("%v.IsBenefic() = %v, want %v", p, got, beneficWant[p])
		}
		if p.IsBenefic() == p.IsMalefic() {
			t.Errorf("%v classified as both or neither", p)
		}
	}
}

func TestSignJSONRoundTrip(t *testing.T) {
	data, err := Scorpio.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(data) != `"Scorpio"` {
		t.Errorf("MarshalJSON() = %s, want %q", data, "Scorpio")
	}

	var s Sign
	if err := s.UnmarshalJSON([]byte(`"Aquarius"`)); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}
	if s != Aquarius {
		t.Errorf("UnmarshalJSON() = %v, want Aquarius", s)
	}
	if err := s.UnmarshalJSON([]byte(`"Ophiuchus"`)); err == nil {
		t.Error("UnmarshalJSON(Ophiuchus) error = nil, want error")
	}
}

func TestSignLord(t *testing.T) {
	tests := []struct {
		sign Sign
		want Planet
	}{
		{Aries, Mars},
		{Cancer, Moon},
		{Leo, Sun},
		{Virgo, Mercury},
		{Libra, Venus},
		{Sagittarius, Jupiter},
		{Aquarius, Saturn},
	}

	for _, tt := range tests {
		if got := SignLord(tt.sign); got != tt.want {
			t.Errorf("SignLord(%v) = %v, want %v", tt.sign, got, tt.want)
		}
	}
}
