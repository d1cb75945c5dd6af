package output

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/hgpcircuit/internal/circuit"
)

func sample() *circuit.Program {
	p := circuit.New()
	e := circuit.NewEmitter(p)
	e.Reset([]circuit.Qubit{0, 1}, 0, circuit.BasisZ)
	e.Gate2(circuit.GateCX, 0, 1, 0, 1)
	e.Measure([]circuit.Qubit{1}, 0, circuit.BasisZ)
	e.Detector(-1)
	return p
}

func TestWriter_WritesTextFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := filepath.Join(t.TempDir(), "out")
	w := New(dir, FormatText, nil)

	// --- Act ---
	path, err := w.Write(context.Background(), "rep3_z", sample())

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "rep3_z.stim"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sample().String(), string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestWriter_WritesMsgpackFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path, err := New(dir, FormatMsgpack, nil).Write(context.Background(), "rep3_x", sample())
	require.NoError(t, err)
	assert.Equal(t, ".mp", filepath.Ext(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := circuit.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, sample().String(), decoded.String())
}

func TestWriter_StreamsWithoutDirectory(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	path, err := New("", FormatText, &buf).Write(context.Background(), "rep3_z", sample())
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, "# rep3_z\n"+sample().String(), buf.String())
}

func TestWriter_RejectsUnsafeNames(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "../escape", "a/b", ".hidden"} {
		_, err := New(t.TempDir(), FormatText, nil).Write(context.Background(), name, sample())
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, err := ParseFormat("MSGPACK")
	require.NoError(t, err)
	assert.Equal(t, FormatMsgpack, f)
	assert.Equal(t, ".stim", FormatText.Extension())

	_, err = ParseFormat("qasm")
	require.Error(t, err)
}
