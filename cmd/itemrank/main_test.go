package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/itemrank/core"
	"github.com/rushteam/itemrank/store"
)

const sampleCSV = "item_id,score_quality,score_cost,score_reliability\nB,0.5,0.5,0.5\nA,0.8,0.2,0.9\n"

func setup(t *testing.T) (input, output string) {
	t.Helper()
	dir := t.TempDir()
	input = filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(input, []byte(sampleCSV), 0o644))
	return input, filepath.Join(dir, "out.csv")
}

func TestRun_Success(t *testing.T) {
	input, output := setup(t)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"--input", input, "--output", output, "--log-level", "error"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	out := stdout.String()
	assert.Contains(t, out, "Top ranked items:")
	assert.Contains(t, out, "0.633333")
	assert.Contains(t, out, "Saved full ranked results to: "+output)
	assert.Less(t, strings.Index(out, " A "), strings.Index(out, " B "))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "item_id,score_quality,score_cost,score_reliability,final_score\nA,"))
}

func TestRun_BadWeights(t *testing.T) {
	input, output := setup(t)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"--input", input, "--output", output, "--weights", "score_quality=abc"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.True(t, strings.HasPrefix(stderr.String(), "error: "), stderr.String())
	assert.NotContains(t, stdout.String(), "Saved full ranked results")

	_, err := os.Stat(output)
	assert.True(t, os.IsNotExist(err))
}

func TestRun_UnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run(context.Background(), []string{"--nope"}, &stdout, &stderr))
}

func TestParseConfig_Precedence(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(settings, []byte("top: 3\nweights: score_quality=1,score_cost=1,score_reliability=1\nnormalize: true\n"), 0o644))
	t.Setenv("ITEMRANK_TOP", "5")

	var stderr bytes.Buffer
	cfg, err := parseConfig([]string{"--config", settings, "--score-fields", "a, b", "--normalize=false"}, &stderr)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, "score_quality=1,score_cost=1,score_reliability=1", cfg.Weights)
	assert.False(t, cfg.Normalize)
	assert.Equal(t, []string{"a", "b"}, cfg.ScoreFields)
	assert.Equal(t, "item_id", cfg.IDField)

	cfg, err = parseConfig([]string{"--config", settings, "--top", "1"}, &stderr)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.TopN)
	assert.True(t, cfg.Normalize)
}

func TestBuildSinks_Order(t *testing.T) {
	cfg := core.DefaultRankConfig()
	cfg.RedisKey = "rank:items"
	var stdout bytes.Buffer

	names := func(kv core.KeyValueStore) []string {
		var out []string
		for _, s := range buildSinks(cfg, "out.csv", &stdout, kv) {
			out = append(out, s.Name())
		}
		return out
	}
	assert.Equal(t, []string{"redis", "console", "csv"}, names(store.NewMemoryStore()))
	assert.Equal(t, []string{"console", "csv"}, names(nil))
}
