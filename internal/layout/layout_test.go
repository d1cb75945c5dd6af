package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/hgpcircuit/internal/circuit"
)

var rep3 = []Check{{1, 0}, {1, 2}, {3, 2}, {3, 4}}

func TestBuild_Rep3Roles(t *testing.T) {
	l, err := Build(Shape{Rows: 5, Cols: 5}, rep3, rep3)
	require.NoError(t, err)

	expected := "QZQZQ\nXQXQX\nQZQZQ\nXQXQX\nQZQZQ\n"
	assert.Equal(t, expected, l.String())
	assert.Len(t, l.Data, 13)
	assert.Len(t, l.XChecks, 6)
	assert.Len(t, l.ZChecks, 6)
}

func TestBuild_IndexIsRowMajorBijection(t *testing.T) {
	shapes := []struct {
		name      string
		shape     Shape
		rowChecks []Check
		colChecks []Check
	}{
		{name: "rep3 square", shape: Shape{5, 5}, rowChecks: rep3, colChecks: rep3},
		{name: "no checks", shape: Shape{2, 3}},
		{name: "hamming by rep3", shape: Shape{5, 10}, colChecks: rep3, rowChecks: []Check{
			{2, 0}, {2, 1}, {2, 3}, {2, 4},
			{5, 1}, {5, 4}, {5, 6}, {5, 7},
			{8, 3}, {8, 4}, {8, 7}, {8, 9},
		}},
	}

	for _, tc := range shapes {
		t.Run(tc.name, func(t *testing.T) {
			l, err := Build(tc.shape, tc.rowChecks, tc.colChecks)
			require.NoError(t, err)

			seen := make(map[circuit.Qubit]bool)
			for i := 0; i < tc.shape.Rows; i++ {
				for j := 0; j < tc.shape.Cols; j++ {
					c := Coord{Row: i, Col: j}
					q, ok := l.Qubit(c)
					require.True(t, ok)
					assert.Equal(t, circuit.Qubit(i*tc.shape.Cols+j), q)
					assert.False(t, seen[q], "qubit %d assigned twice", q)
					seen[q] = true

					role, ok := l.Role(c)
					require.True(t, ok)
					assert.Contains(t, []Role{RoleData, RoleXCheck, RoleZCheck}, role)
				}
			}
			assert.Len(t, seen, l.NumQubits())
			assert.Equal(t, l.NumQubits(), len(l.Data)+len(l.XChecks)+len(l.ZChecks))
		})
	}
}

func TestBuild_HammingByRep3Has27DataQubits(t *testing.T) {
	hamming := []Check{
		{2, 0}, {2, 1}, {2, 3}, {2, 4},
		{5, 1}, {5, 4}, {5, 6}, {5, 7},
		{8, 3}, {8, 4}, {8, 7}, {8, 9},
	}
	l, err := Build(Shape{5, 10}, hamming, rep3)
	require.NoError(t, err)

	assert.Len(t, l.Data, 27)
	assert.Len(t, l.XChecks, 14)
	assert.Len(t, l.ZChecks, 9)
}

func TestBuild_PositionsFollowScanOrderPerRole(t *testing.T) {
	l, err := Build(Shape{5, 5}, rep3, rep3)
	require.NoError(t, err)

	for group, coords := range map[string][]Coord{"data": l.Data, "x": l.XChecks, "z": l.ZChecks} {
		for i, c := range coords {
			pos, ok := l.Position(c)
			require.True(t, ok, group)
			assert.Equal(t, i, pos, group)
		}
	}
	assert.Equal(t, []Coord{{0, 1}, {0, 3}, {2, 1}, {2, 3}, {4, 1}, {4, 3}}, l.ZChecks)
	assert.Equal(t, append(l.XCheckQubits(), l.ZCheckQubits()...), l.CheckQubits())
	assert.Len(t, l.Coords(), 25)
}

func TestBuild_Errors(t *testing.T) {
	testCases := []struct {
		name      string
		shape     Shape
		rowChecks []Check
		colChecks []Check
	}{
		{name: "zero rows", shape: Shape{0, 3}},
		{name: "row selector out of range", shape: Shape{3, 3}, rowChecks: []Check{{3, 0}}},
		{name: "column partner out of range", shape: Shape{3, 3}, colChecks: []Check{{1, 5}}},
		{name: "negative selector", shape: Shape{3, 3}, colChecks: []Check{{-1, 0}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Build(tc.shape, tc.rowChecks, tc.colChecks)
			require.ErrorIs(t, err, ErrLayout)
		})
	}
}

func TestRoleOf_RejectsNonBooleanBits(t *testing.T) {
	_, err := roleOf(2, 0)
	require.ErrorIs(t, err, ErrLayout)
}

func TestLayout_Lookups(t *testing.T) {
	l, err := Build(Shape{3, 3}, nil, nil)
	require.NoError(t, err)

	_, ok := l.Role(Coord{3, 0})
	assert.False(t, ok)
	_, ok = l.Qubit(Coord{0, -1})
	assert.False(t, ok)
	assert.Panics(t, func() { l.Qubits([]Coord{{5, 5}}) })
	assert.Equal(t, "(1, 2)", Coord{1, 2}.String())
}
