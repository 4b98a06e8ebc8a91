package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/config"
)

func TestApplyHuntOverrides_OnlyChangedFlagsWin(t *testing.T) {
	cfg := config.Defaults()
	cfg.Query = "from-config"
	cfg.TopN = 10

	require.NoError(t, huntCommand.Flags().Set("query", "from-flag"))
	require.NoError(t, huntCommand.Flags().Set("exclude", "senior"))

	applyHuntOverrides(huntCommand, &cfg)

	assert.Equal(t, "from-flag", cfg.Query)
	assert.Equal(t, []string{"senior"}, cfg.ExcludeKeywords)
	// untouched flags keep config values
	assert.Equal(t, 10, cfg.TopN)
}

func TestWriteAndReadJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	in := map[string]int{"scored": 3}
	require.NoError(t, writeJSONFile(path, in))

	var out map[string]int
	require.NoError(t, readJSONFile(path, &out))
	assert.Equal(t, in, out)
}

func TestReadJSONFile_MissingAndMalformed(t *testing.T) {
	var v any
	assert.Error(t, readJSONFile(filepath.Join(t.TempDir(), "nope.json"), &v))

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	assert.Error(t, readJSONFile(path, &v))
}
