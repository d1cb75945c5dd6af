package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/hgpcircuit/internal/circuit"
	"github.com/specialistvlad/hgpcircuit/internal/testutil"
)

const rep3HCL = `
embedding "rep3" {
  shape      = [5, 5]
  row_checks = [[1, 0], [1, 2], [3, 2], [3, 4]]
  col_checks = [[1, 0], [1, 2], [3, 2], [3, 4]]
}

experiment "rep3_z" {
  embedding          = "rep3"
  basis              = "z_memory"
  rounds             = 3
  observable_columns = [0]
}
`

const rep3TOML = `
[[experiments]]
name = "rep3_x"
embedding = "rep3"
basis = "x_memory"
rounds = 1
observable_groups = [[[0, 0], [0, 2], [0, 4]]]
`

// setupApp builds an App around cfg with logs captured at debug level.
func setupApp(t *testing.T, cfg Config) (*App, *bytes.Buffer, *testutil.SafeBuffer) {
	t.Helper()

	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"
	validated, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logs := &testutil.SafeBuffer{}
	testutil.LogOnFailure(t, logs)
	return NewApp(out, logs, validated), out, logs
}

func TestApp_RunWritesOneFilePerExperiment(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	configDir := testutil.WriteFiles(t, map[string]string{
		"rep3.hcl":        rep3HCL,
		"extra/rep3.toml": rep3TOML,
	})
	outDir := t.TempDir()
	a, _, logs := setupApp(t, Config{ConfigPaths: []string{configDir}, OutputDir: outDir, Workers: 2})

	// --- Act ---
	summaries, err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "rep3_z", summaries[0].Name)
	assert.Equal(t, filepath.Join(outDir, "rep3_z.stim"), summaries[0].Path)
	assert.Equal(t, 25, summaries[0].Qubits)
	assert.Equal(t, 3*12+13, summaries[0].Measurements)
	assert.Equal(t, 6+2*6+6, summaries[0].Detectors)
	assert.Equal(t, "rep3_x", summaries[1].Name)

	data, err := os.ReadFile(summaries[0].Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "REPEAT 2 {\n")
	assert.Contains(t, string(data), "OBSERVABLE_INCLUDE(0) rec[-13] rec[-8] rec[-3]\n")

	assert.Contains(t, logs.String(), "Circuit built.")
	assert.Contains(t, logs.String(), "experiment=rep3_x")
}

func TestApp_RunStreamsWithoutOutputDir(t *testing.T) {
	t.Parallel()

	configDir := testutil.WriteFiles(t, map[string]string{"rep3.hcl": rep3HCL})
	a, out, _ := setupApp(t, Config{ConfigPaths: []string{configDir}})

	summaries, err := a.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Empty(t, summaries[0].Path)
	assert.Contains(t, out.String(), "# rep3_z\nQUBIT_COORDS(0, 0) 0\n")
}

func TestApp_RunShippedConfigs(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	outDir := t.TempDir()
	a, _, logs := setupApp(t, Config{
		ConfigPaths: []string{filepath.Join("..", "..", "configs")},
		OutputDir:   outDir,
		Format:      "msgpack",
		Experiments: []string{"a1_z_memory", "a0_z_memory", "rep3_x_memory"},
	})

	// --- Act ---
	summaries, err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	a1, a0 := summaries[0], summaries[1]
	assert.Equal(t, 50, a1.Qubits)
	assert.Equal(t, 3*23+27, a1.Measurements)
	assert.Equal(t, 104, a1.Crossings)
	assert.Equal(t, 288, a0.Crossings)
	assert.Equal(t, "rep3_x_memory", summaries[2].Name)
	assert.NotContains(t, logs.String(), "Some crossings match no interaction.")

	f, err := os.Open(a1.Path)
	require.NoError(t, err)
	defer f.Close()
	prog, err := circuit.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, a1.Measurements, prog.Measurements())
	assert.Equal(t, 4, prog.Count(circuit.KindObservable))
}

func TestApp_RunErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		files    map[string]string
		filter   []string
		expected error
	}{
		{
			name:     "unknown experiment in filter",
			files:    map[string]string{"rep3.hcl": rep3HCL},
			filter:   []string{"missing"},
			expected: ErrUnknownExperiment,
		},
		{
			name:     "experiment names a missing embedding",
			files:    map[string]string{"x.toml": rep3TOML},
			expected: ErrUnknownEmbedding,
		},
		{
			name:     "no experiments",
			files:    map[string]string{"empty.hcl": "# nothing here\n"},
			expected: ErrNoExperiments,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := testutil.WriteFiles(t, tc.files)
			a, _, _ := setupApp(t, Config{ConfigPaths: []string{dir}, Experiments: tc.filter})

			summaries, err := a.Run(context.Background())
			require.ErrorIs(t, err, tc.expected)
			assert.Nil(t, summaries)
		})
	}
}

func TestApp_RunReportsBuildErrors(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteFiles(t, map[string]string{
		"rep3.hcl": rep3HCL + `
experiment "bad" {
  embedding = "rep3"
  basis     = "z_memory"
  rounds    = 0
}
`,
	})
	a, _, _ := setupApp(t, Config{ConfigPaths: []string{dir}})

	_, err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `experiment "bad"`)
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(Config{ConfigPaths: []string{"x"}})
	require.NoError(t, err)
	assert.Equal(t, "stim", cfg.Format)

	_, err = NewConfig(Config{})
	require.Error(t, err)

	_, err = NewConfig(Config{ConfigPaths: []string{"x"}, Format: "json"})
	require.Error(t, err)

	_, err = NewConfig(Config{ConfigPaths: []string{"x"}, Workers: -1})
	require.Error(t, err)
}
