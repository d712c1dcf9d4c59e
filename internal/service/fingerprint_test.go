package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grahalabs/jyotish/internal/astro"
	"github.com/grahalabs/jyotish/internal/model"
)

func fingerprintRequest() DeriveRequest {
	return DeriveRequest{
		Birth: model.BirthInput{
			Date:             "1990-05-15",
			Time:             "10:30",
			Latitude:         28.61,
			Longitude:        77.20,
			UTCOffsetMinutes: 330,
		},
		Positions: astro.RawPositions{
			Ascendant: 95.0,
			Planets: map[string]astro.RawPlanet{
				"Sun":  {Longitude: 30.5, Speed: 0.98},
				"Moon": {Longitude: 311.2, Speed: 13.1},
				"Rahu": {Longitude: 306.7, Speed: -0.05},
			},
		},
		HouseSystem: model.WholeSign,
		Divisors:    []int{10, 9},
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	a, err := fingerprintRequest().Fingerprint(3)
	require.NoError(t, err)
	b, err := fingerprintRequest().Fingerprint(3)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestFingerprint_DivisorOrderIrrelevant(t *testing.T) {
	req := fingerprintRequest()
	a, err := req.Fingerprint(1)
	require.NoError(t, err)

	req.Divisors = []int{9, 10}
	b, err := req.Fingerprint(1)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFingerprint_TimeCanonicalization(t *testing.T) {
	req := fingerprintRequest()
	a, err := req.Fingerprint(1)
	require.NoError(t, err)

	req.Birth.Time = "10:30:00"
	b, err := req.Fingerprint(1)
	require.NoError(t, err)
	assert.Equal(t, a, b, "HH:MM and HH:MM:00 must fingerprint identically")
}

func TestFingerprint_SensitiveInputs(t *testing.T) {
	base, err := fingerprintRequest().Fingerprint(1)
	require.NoError(t, err)

	cases := []struct {
		mutate func(*DeriveRequest)
		name   string
	}{
		{name: "rule set version", mutate: func(*DeriveRequest) {}},
		{name: "house system", mutate: func(r *DeriveRequest) { r.HouseSystem = model.Equal }},
		{name: "birth time", mutate: func(r *DeriveRequest) { r.Birth.Time = "10:31" }},
		{name: "latitude", mutate: func(r *DeriveRequest) { r.Birth.Latitude = 19.07 }},
		{name: "positions", mutate: func(r *DeriveRequest) {
			r.Positions.Planets["Sun"] = astro.RawPlanet{Longitude: 31.5, Speed: 0.98}
		}},
		{name: "divisors", mutate: func(r *DeriveRequest) { r.Divisors = []int{9} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := fingerprintRequest()
			tc.mutate(&req)
			version := int64(1)
			if tc.name == "rule set version" {
				version = 2
			}
			got, err := req.Fingerprint(version)
			require.NoError(t, err)
			assert.NotEqual(t, base, got)
		})
	}
}

func TestCacheEntry_Expired(t *testing.T) {
	now := time.Now()

	var entry CacheEntry
	assert.False(t, entry.Expired(now), "zero deadline never expires")

	entry.ExpiresAt = now.Add(time.Minute)
	assert.False(t, entry.Expired(now))
	assert.True(t, entry.Expired(now.Add(time.Minute)))
}
