package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grahalabs/jyotish/internal/config"
	"github.com/grahalabs/jyotish/internal/model"
)

const sampleRequest = `{
	"birth": {
		"date": "1990-06-15",
		"time": "10:30",
		"latitude": 28.6139,
		"longitude": 77.2090,
		"utc_offset_minutes": 330
	},
	"positions": {
		"ascendant": 95.0,
		"planets": {
			"Sun": {"longitude": 60.5, "speed": 0.98},
			"Moon": {"longitude": 51.2, "speed": 13.1}
		}
	}
}`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadRequestFile(t *testing.T) {
	path := writeTempFile(t, "request.json", sampleRequest)

	req, err := readRequestFile(path)
	require.NoError(t, err)

	assert.Equal(t, "1990-06-15", req.Birth.Date)
	assert.InDelta(t, 95.0, req.Positions.Ascendant, 1e-9)
	assert.Len(t, req.Positions.Planets, 2)
	assert.InDelta(t, 51.2, req.Positions.Planets["Moon"].Longitude, 1e-9)
}

func TestReadRequestFile_Missing(t *testing.T) {
	_, err := readRequestFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read input")
}

func TestReadRequestFile_Malformed(t *testing.T) {
	path := writeTempFile(t, "bad.json", `{"birth": `)

	_, err := readRequestFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse input")
}

func TestToDeriveRequest(t *testing.T) {
	path := writeTempFile(t, "request.json", sampleRequest)
	req, err := readRequestFile(path)
	require.NoError(t, err)

	settings := config.Settings{
		HouseSystem:      model.WholeSign,
		DivisionalCharts: []int{9, 10},
	}
	derive := req.toDeriveRequest(settings)

	assert.Equal(t, model.WholeSign, derive.HouseSystem)
	assert.Equal(t, []int{9, 10}, derive.Divisors)
	assert.Equal(t, req.Birth, derive.Birth)
	assert.InDelta(t, 95.0, derive.Positions.Ascendant, 1e-9)
}

func TestReadRequestLines(t *testing.T) {
	path := writeTempFile(t, "requests.jsonl",
		`{"birth":{"date":"1990-06-15","time":"10:30","latitude":28.6,"longitude":77.2,"utc_offset_minutes":330},"positions":{"ascendant":95,"planets":{}}}

{"birth":{"date":"1984-01-02","time":"04:15","latitude":19.0,"longitude":72.8,"utc_offset_minutes":330},"positions":{"ascendant":210,"planets":{}}}
`)

	requests, err := readRequestLines(path)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, "1990-06-15", requests[0].Birth.Date)
	assert.Equal(t, "1984-01-02", requests[1].Birth.Date)
}

func TestReadRequestLines_BadLineNamesLineNumber(t *testing.T) {
	path := writeTempFile(t, "requests.jsonl",
		`{"birth":{"date":"1990-06-15","time":"10:30","latitude":28.6,"longitude":77.2,"utc_offset_minutes":330},"positions":{"ascendant":95,"planets":{}}}
{not json}
`)

	_, err := readRequestLines(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}
