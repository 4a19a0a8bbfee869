package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/powerrank/core"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunCompute(t *testing.T) {
	path := writeInput(t, `{
		"items": ["b", "a"],
		"votes": [{"alphaId": "a", "betaId": "b", "preference": 1}],
		"dampingFactor": 0.85
	}`)

	var out bytes.Buffer
	require.NoError(t, runCompute([]string{"-input", path}, &out))

	var got []core.RankedItem
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ItemID)
	assert.InDelta(t, 0.649123, got[0].Power, 1e-5)
	assert.InDelta(t, 0.350877, got[1].Power, 1e-5)
}

func TestRunCompute_DefaultDamping(t *testing.T) {
	path := writeInput(t, `{"items": ["a", "b"], "votes": []}`)

	var out bytes.Buffer
	require.NoError(t, runCompute([]string{"-input", path}, &out))
	assert.JSONEq(t, `[{"itemId":"a","power":0},{"itemId":"b","power":0}]`, out.String())
}

func TestRunCompute_Errors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, runCompute(nil, &out))
	assert.Error(t, runCompute([]string{"-input", writeInput(t, `{`)}, &out))

	err := runCompute([]string{"-input", writeInput(t, `{"items":["a","b"],"votes":[{"alphaId":"a","betaId":"b","preference":1}],"dampingFactor":2}`)}, &out)
	assert.True(t, core.IsInvalidParameter(err))

	err = runCompute([]string{"-input", writeInput(t, `{"items":["a"],"votes":[{"alphaId":"a","betaId":"b","preference":7}]}`)}, &out)
	assert.Error(t, err)
}

func TestScopeList(t *testing.T) {
	var s scopeList
	require.NoError(t, s.Set("a"))
	require.NoError(t, s.Set("b"))
	assert.Equal(t, scopeList{"a", "b"}, s)
	assert.Equal(t, "[a b]", s.String())
}
