package circuit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundProgram() *Program {
	p := New()
	e := NewEmitter(p)
	e.Gate2(GateCX, 0, 1, 0, 1)
	e.MeasureReset([]Qubit{1}, 0, 0, BasisZ)
	e.Detector(-1, -2)
	return p
}

func TestProgram_AppendRepeat(t *testing.T) {
	testCases := []struct {
		name         string
		count        int
		expectedOps  int
		expectedMeas int
	}{
		{name: "zero repetitions add nothing", count: 0, expectedOps: 0, expectedMeas: 0},
		{name: "one repetition is inlined", count: 1, expectedOps: 3, expectedMeas: 1},
		{name: "many repetitions become a block", count: 4, expectedOps: 1, expectedMeas: 4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := New()
			p.AppendRepeat(tc.count, roundProgram())

			assert.Equal(t, tc.expectedOps, p.Len())
			assert.Equal(t, tc.expectedMeas, p.Measurements())
			assert.Equal(t, tc.expectedMeas, p.Detectors())
		})
	}
}

func TestProgram_FlattenExpandsRepeat(t *testing.T) {
	p := New()
	p.AppendRepeat(3, roundProgram())

	flat := p.Flatten()
	require.Equal(t, 9, flat.Len())
	assert.Equal(t, 3, flat.Count(KindGate))
	assert.Equal(t, 0, flat.Count(KindRepeat))
	assert.Equal(t, 2, flat.NumQubits())
}

func TestProgram_String(t *testing.T) {
	p := New()
	p.Append(QubitCoords(0, 1, 2))
	e := NewEmitter(p)
	e.Reset([]Qubit{0, 1}, 0, BasisX)
	p.AppendRepeat(2, roundProgram())
	e.Measure([]Qubit{0}, 0.001, BasisX)
	e.Observable(3, -1)

	expected := `QUBIT_COORDS(1, 2) 0
RX 0 1
REPEAT 2 {
    CX 0 1
    MR 1
    DETECTOR rec[-1] rec[-2]
}
Z_ERROR(0.001) 0
MX 0
OBSERVABLE_INCLUDE(3) rec[-1]
`
	assert.Equal(t, expected, p.String())

	var buf bytes.Buffer
	n, err := p.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len(expected)), n)
	assert.Equal(t, expected, buf.String())
}

func TestProgram_CloneIsIndependent(t *testing.T) {
	p := roundProgram()
	c := p.Clone()
	c.Append(Reset(BasisZ, []Qubit{9}))

	assert.Equal(t, 3, p.Len())
	assert.Equal(t, 4, c.Len())
}

func TestConcat(t *testing.T) {
	a := roundProgram()
	b := roundProgram()
	assert.Equal(t, 6, Concat(a, nil, b).Len())
}
