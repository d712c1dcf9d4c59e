package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grahalabs/jyotish/internal/common"
)

const validDocument = `{
	"name": "imported",
	"version": 2,
	"defs": {
		"saturn_seventh": {"entity": "planet", "name": "Saturn", "house": 7}
	},
	"rules": [
		{
			"key": "saturn-seventh",
			"category": "relationships",
			"impact": "neutral",
			"priority": 70,
			"confidence": 0.75,
			"template": "Saturn in the seventh",
			"active": true,
			"when": {"ref": "saturn_seventh"}
		}
	]
}`

func TestParseSet(t *testing.T) {
	set, err := ParseSet([]byte(validDocument))
	require.NoError(t, err)
	assert.Equal(t, "imported", set.Name)
	assert.Equal(t, int64(2), set.Version)
	require.Len(t, set.Rules, 1)
	assert.Equal(t, "saturn_seventh", set.Rules[0].When.Ref)
}

func TestParseSet_UnknownFieldRejected(t *testing.T) {
	_, err := ParseSet([]byte(`{"name": "x", "version": 1, "rules": [], "extra": true}`))
	require.Error(t, err)
	assert.True(t, common.IsRuleDefinition(err))
}

func TestParseSet_MalformedJSON(t *testing.T) {
	_, err := ParseSet([]byte(`{`))
	assert.True(t, common.IsRuleDefinition(err))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(validDocument), 0600))

	compiled, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(2), compiled.Version())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadFile_BadRuleFailsWholeLoad(t *testing.T) {
	document := `{
		"name": "bad",
		"version": 1,
		"rules": [
			{"key": "ok", "category": "career", "active": true,
			 "when": {"entity": "planet", "name": "Saturn", "house": 7}},
			{"key": "broken", "category": "career", "active": true,
			 "when": {"entity": "planet", "name": "Pluto", "house": 7}}
		]
	}`
	path := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(document), 0600))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.True(t, common.IsRuleDefinition(err))
	assert.Contains(t, err.Error(), "broken")
}
