package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/cohort/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const patientsCSV = `age,score,diagnosed
1,2,1
1,2,1
10,20,0
30,40,0
`

func writeDataset(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "patients.csv"), []byte(patientsCSV), 0o644))
	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestCommunitiesCommand(t *testing.T) {
	dir := writeDataset(t)

	out, _, err := execute(t, "communities", "patients.csv", "--root", dir, "--core-k", "1")
	require.NoError(t, err)

	var got struct {
		Nodes int `json:"nodes"`
		Edges int `json:"edges"`
		Cores []struct {
			Members []int `json:"members"`
		} `json:"cores"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 4, got.Nodes)
	assert.Equal(t, 1, got.Edges)
	require.Len(t, got.Cores, 1)
	assert.Equal(t, []int{0, 1}, got.Cores[0].Members)
}

func TestAnalyzeCommand(t *testing.T) {
	dir := writeDataset(t)
	textfile := filepath.Join(t.TempDir(), "cohort.prom")

	out, _, err := execute(t, "analyze", "patients.csv",
		"--root", dir,
		"--seed", "5",
		"--codec", "json",
		"--report", "reports/run.json",
		"--metrics-textfile", textfile,
	)
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.NotEmpty(t, report["run_id"])
	assert.Equal(t, []any{"age", "score"}, report["features"])

	seg, ok := report["segmentation"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 5.0, seg["seed"])

	stored, err := os.ReadFile(filepath.Join(dir, "reports", "run.json"))
	require.NoError(t, err)
	assert.Equal(t, out, string(stored))

	metrics, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `cohort_operations_total{op="load",status="success"} 1`)
}

func TestDescribeCommandTrace(t *testing.T) {
	dir := writeDataset(t)

	out, stderr, err := execute(t, "describe", "patients.csv", "--root", dir, "--trace")
	require.NoError(t, err)
	assert.Contains(t, out, `"groups"`)
	assert.Contains(t, stderr, "cohort.Describe")
}

func TestConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cohort.yaml")
	require.NoError(t, os.WriteFile(path, []byte("clustering:\n  k: 4\ngraph:\n  core_k: 3\n"), 0o644))

	out, _, err := execute(t, "config", "--config", path, "--k", "6")
	require.NoError(t, err)

	cfg, err := config.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Clustering.K)
	assert.Equal(t, 3, cfg.Graph.CoreK)
}

func TestCommandErrors(t *testing.T) {
	dir := writeDataset(t)

	tests := []struct {
		name string
		args []string
	}{
		{"invalid k", []string{"segment", "patients.csv", "--root", dir, "--k", "0"}},
		{"k exceeds dataset", []string{"segment", "patients.csv", "--root", dir, "--k", "9"}},
		{"missing dataset", []string{"describe", "missing.csv", "--root", dir}},
		{"missing bucket", []string{"describe", "patients.csv", "--source", "s3"}},
		{"no dataset argument", []string{"analyze"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestListCommand(t *testing.T) {
	dir := writeDataset(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.csv.zst"), []byte("x"), 0o644))

	out, _, err := execute(t, "list", "--root", dir)
	require.NoError(t, err)
	assert.Equal(t, "other.csv.zst\npatients.csv\n", out)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").String())
	assert.Equal(t, "WARN", parseLevel("warn").String())
	assert.Equal(t, "INFO", parseLevel("bogus").String())
}
