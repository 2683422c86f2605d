package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/YuminosukeSato/pla/pkg/errors"
	"github.com/YuminosukeSato/pla/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI with args and returns what it wrote to stdout and
// stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() {
		errors.SetZerologWarnFunc(nil)
		log.SetLogger(log.NewZerologLogger(os.Stderr, log.LevelInfo))
	})

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestTrainPredictPlot(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "train.csv")
	modelPath := filepath.Join(dir, "model.json")
	image := filepath.Join(dir, "boundary.png")

	_, _, err := run(t, "generate", "--n", "60", "--margin", "0.3", "--seed", "4", "--out", data)
	require.NoError(t, err)

	out, logs, err := run(t, "train", "--header", "--data", data, "--out", modelPath, "--lr", "0.1", "--seed", "9", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, out, "converged=true")
	assert.Contains(t, out, "accuracy=1.0000")
	assert.Contains(t, logs, "Training completed")
	assert.Contains(t, logs, `"ml.component":"cli"`)
	assert.FileExists(t, modelPath)

	out, _, err = run(t, "predict", "--header", "--model", modelPath, "--data", data)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 61)
	for _, l := range lines[:60] {
		assert.Contains(t, []string{"1", "-1"}, l)
	}
	assert.Equal(t, "accuracy=1.0000", lines[60])

	out, _, err = run(t, "plot", "--header", "--model", modelPath, "--data", data, "--out", image)
	require.NoError(t, err)
	assert.Equal(t, image+"\n", out)
	info, err := os.Stat(image)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestPredict_Unlabelled(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "xor.csv")
	modelPath := filepath.Join(dir, "model.json")
	unlabelled := filepath.Join(dir, "points.csv")

	_, _, err := run(t, "generate", "--kind", "xor", "--out", data)
	require.NoError(t, err)

	out, logs, err := run(t, "train", "--header", "--data", data, "--out", modelPath, "--max-iter", "5", "--seed", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "iterations=5 converged=false")
	assert.Contains(t, logs, "ConvergenceWarning")

	require.NoError(t, os.WriteFile(unlabelled, []byte("0,0\n1,1\n0.5,0.5\n"), 0o644))
	out, _, err = run(t, "predict", "--model", modelPath, "--data", unlabelled)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.NotContains(t, out, "accuracy")
}

func TestTrain_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "train.csv")
	cfgPath := filepath.Join(dir, "pla.yaml")
	modelPath := filepath.Join(dir, "model.json")

	require.NoError(t, os.WriteFile(data, []byte("y;a;b\n1;2;2\n1;4;4\n-1;-2;-2\n-1;-4;-1\n"), 0o644))
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
model:
  learning_rate: 0.05
  max_iterations: 300
  random_state: 3
data:
  has_header: true
  label_column: 0
  delimiter: ";"
`), 0o644))

	out, _, err := run(t, "train", "--config", cfgPath, "--data", data, "--out", modelPath)
	require.NoError(t, err)
	assert.Contains(t, out, "converged=true")

	raw, err := os.ReadFile(modelPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"learning_rate": 0.05`)
	assert.Contains(t, string(raw), `"max_iterations": 300`)
	assert.Contains(t, string(raw), `"random_state": 3`)
}

func TestCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "train.csv")
	require.NoError(t, os.WriteFile(data, []byte("1,2,1\n-1,-2,-1\n"), 0o644))

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing data flag", args: []string{"train"}},
		{name: "zero learning rate", args: []string{"train", "--data", data, "--lr", "0", "--out", filepath.Join(dir, "m.json")}},
		{name: "missing data file", args: []string{"train", "--data", filepath.Join(dir, "nope.csv")}},
		{name: "missing model", args: []string{"predict", "--data", data, "--model", filepath.Join(dir, "nope.json")}},
		{name: "bad log level", args: []string{"generate", "--log-level", "loud", "--out", filepath.Join(dir, "g.csv")}},
		{name: "unknown kind", args: []string{"generate", "--kind", "circles", "--out", filepath.Join(dir, "g.csv")}},
		{name: "three features to plot", args: []string{"plot", "--data", writeWide(t, dir), "--out", filepath.Join(dir, "p.png")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestPredict_WrongWidth(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "train.csv")
	modelPath := filepath.Join(dir, "model.json")
	require.NoError(t, os.WriteFile(data, []byte("1,2,1\n-1,-2,-1\n"), 0o644))

	_, _, err := run(t, "train", "--data", data, "--out", modelPath, "--seed", "2")
	require.NoError(t, err)

	_, _, err = run(t, "predict", "--model", modelPath, "--data", writeWide(t, dir))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput), "got %v", err)
}

func writeWide(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "wide.csv")
	require.NoError(t, os.WriteFile(path, []byte("1,2,3,4,1\n"), 0o644))
	return path
}

func TestTrain_Standardize(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "train.csv")
	modelPath := filepath.Join(dir, "model.json")
	image := filepath.Join(dir, "scaled.svg")

	// features on very different scales
	require.NoError(t, os.WriteFile(data, []byte("1000,0.2,1\n3000,0.4,1\n-1000,-0.2,-1\n-4000,-0.1,-1\n"), 0o644))

	out, _, err := run(t, "train", "--data", data, "--out", modelPath, "--standardize", "--lr", "0.1", "--seed", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "converged=true")

	raw, err := os.ReadFile(modelPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"scaler"`)

	out, _, err = run(t, "predict", "--model", modelPath, "--data", data)
	require.NoError(t, err)
	assert.Equal(t, "1\n1\n-1\n-1\naccuracy=1.0000\n", out)

	_, _, err = run(t, "plot", "--model", modelPath, "--data", data, "--out", image)
	require.NoError(t, err)
	assert.FileExists(t, image)
}

func TestPredict_UndefinedPrecisionWarnsOnce(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "test.csv")
	modelPath := filepath.Join(dir, "negative.json")

	// zero feature weights and a negative bias: every row is classified -1
	require.NoError(t, os.WriteFile(modelPath, []byte(`{
  "model_type": "Perceptron",
  "version": "1.0",
  "coefficients": [0, 0],
  "intercept": -1,
  "hyperparameters": {"learning_rate": 0.01, "max_iterations": 10},
  "is_fitted": true
}`), 0o644))
	require.NoError(t, os.WriteFile(data, []byte("1,2,1\n-1,-2,-1\n-3,-1,-1\n"), 0o644))

	out, logs, err := run(t, "predict", "--model", modelPath, "--data", data)
	require.NoError(t, err)
	assert.Equal(t, "-1\n-1\n-1\naccuracy=0.6667\n", out)
	assert.Equal(t, 1, strings.Count(logs, "UndefinedMetricWarning"), logs)
	assert.Contains(t, logs, `"metric":"precision"`)
}
