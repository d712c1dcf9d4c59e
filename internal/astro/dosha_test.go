package astro

import (
	"testing"

	"github.com/grahalabs/jyotish/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildChart(t *testing.T, ascendant float64, planets map[string]RawPlanet) model.Chart {
	t.Helper()
	positions, err := PositionsFromRaw(RawPositions{Ascendant: ascendant, Planets: planets})
	require.NoError(t, err)
	chart, err := DeriveChart(ascendant, positions, model.WholeSign)
	require.NoError(t, err)
	return chart
}

func hemmedPlanets(marsLongitude float64) map[string]RawPlanet {
	return map[string]RawPlanet{
		"Sun":     {Longitude: 20, Speed: 1},
		"Moon":    {Longitude: 45, Speed: 13},
		"Mars":    {Longitude: marsLongitude, Speed: 0.5},
		"Mercury": {Longitude: 75, Speed: 1.2},
		"Jupiter": {Longitude: 120, Speed: 0.1},
		"Venus":   {Longitude: 130, Speed: 1.1},
		"Saturn":  {Longitude: 170, Speed: 0.05},
		"Rahu":    {Longitude: 10, Speed: -0.05},
	}
}

func TestDetectDoshas_Mangal(t *testing.T) {
	chart := deriveTestChart(t, model.WholeSign)

	findings := DetectDoshas(&chart)
	require.Len(t, findings, 1)

	f := findings[0]
	assert.Equal(t, model.MangalDosha, f.Kind)
	assert.Equal(t, model.SeverityMedium, f.Severity)
	require.Len(t, f.Evidence, 1)
	assert.Equal(t, "Mars", f.Evidence[0].Key)
	assert.Equal(t, 7, f.Evidence[0].House)
}

func TestDetectDoshas_MangalHouses(t *testing.T) {
	tests := []struct {
		name     string
		marsLong float64
		want     bool
	}{
		{name: "first house", marsLong: 5, want: true},
		{name: "second house", marsLong: 35, want: false},
		{name: "fourth house", marsLong: 100, want: true},
		{name: "seventh house", marsLong: 185, want: true},
		{name: "eighth house", marsLong: 215, want: true},
		{name: "ninth house", marsLong: 250, want: false},
		{name: "twelfth house", marsLong: 335, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Moon far from the nodes keeps the axis open so only
			// mangal can fire.
			chart := buildChart(t, 0, map[string]RawPlanet{
				"Sun":     {Longitude: 95, Speed: 1},
				"Moon":    {Longitude: 222, Speed: 13},
				"Mars":    {Longitude: tt.marsLong, Speed: 0.5},
				"Mercury": {Longitude: 78, Speed: 1.2},
				"Jupiter": {Longitude: 142, Speed: 0.1},
				"Venus":   {Longitude: 51, Speed: 1.1},
				"Saturn":  {Longitude: 299, Speed: 0.05},
				"Rahu":    {Longitude: 33, Speed: -0.05},
			})

			findings := DetectDoshas(&chart)
			var got bool
			for _, f := range findings {
				if f.Kind == model.MangalDosha {
					got = true
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectDoshas_KaalSarpAnant(t *testing.T) {
	// Every classical graha inside the Rahu-to-Ketu half.
	chart := buildChart(t, 0, hemmedPlanets(50))

	findings := DetectDoshas(&chart)
	require.Len(t, findings, 1)

	f := findings[0]
	assert.Equal(t, model.KaalSarpDosha, f.Kind)
	assert.Equal(t, "anant", f.Variant)
	assert.Equal(t, model.SeverityHigh, f.Severity)

	// Both nodes and all seven hemmed grahas appear as evidence.
	require.Len(t, f.Evidence, 9)
	assert.Equal(t, "Rahu", f.Evidence[0].Key)
	assert.Equal(t, "Ketu", f.Evidence[1].Key)
}

func TestDetectDoshas_KaalSarpKulat(t *testing.T) {
	chart := buildChart(t, 0, map[string]RawPlanet{
		"Sun":     {Longitude: 200, Speed: 1},
		"Moon":    {Longitude: 225, Speed: 13},
		"Mars":    {Longitude: 250, Speed: 0.5},
		"Mercury": {Longitude: 275, Speed: 1.2},
		"Jupiter": {Longitude: 300, Speed: 0.1},
		"Venus":   {Longitude: 330, Speed: 1.1},
		"Saturn":  {Longitude: 350, Speed: 0.05},
		"Rahu":    {Longitude: 10, Speed: -0.05},
	})

	findings := DetectDoshas(&chart)
	require.Len(t, findings, 1)
	assert.Equal(t, model.KaalSarpDosha, findings[0].Kind)
	assert.Equal(t, "kulat", findings[0].Variant)
}

func TestDetectDoshas_OrderFollowsKindEnumeration(t *testing.T) {
	// Mars in the fourth house inside the hemmed arc triggers both.
	chart := buildChart(t, 0, hemmedPlanets(100))

	findings := DetectDoshas(&chart)
	require.Len(t, findings, 2)
	assert.Equal(t, model.MangalDosha, findings[0].Kind)
	assert.Equal(t, model.KaalSarpDosha, findings[1].Kind)
}

func TestDetectDoshas_None(t *testing.T) {
	chart := buildChart(t, 0, map[string]RawPlanet{
		"Sun":     {Longitude: 95, Speed: 1},
		"Moon":    {Longitude: 222, Speed: 13},
		"Mars":    {Longitude: 75, Speed: 0.5},
		"Mercury": {Longitude: 78, Speed: 1.2},
		"Jupiter": {Longitude: 142, Speed: 0.1},
		"Venus":   {Longitude: 51, Speed: 1.1},
		"Saturn":  {Longitude: 299, Speed: 0.05},
		"Rahu":    {Longitude: 33, Speed: -0.05},
	})

	assert.Empty(t, DetectDoshas(&chart))
}
