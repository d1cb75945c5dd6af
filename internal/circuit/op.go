package circuit

import (
	"fmt"
)

// Qubit is the index of a physical qubit within a program.
type Qubit uint32

// Basis selects the Pauli basis of a reset, a measurement or a flip error.
type Basis uint8

const (
	BasisZ Basis = iota
	BasisX
)

// Opposite returns the basis whose flip errors corrupt states prepared in b.
func (b Basis) Opposite() Basis {
	if b == BasisX {
		return BasisZ
	}
	return BasisX
}

func (b Basis) String() string {
	if b == BasisX {
		return "X"
	}
	return "Z"
}

// Gate is a unitary supported by the program format.
type Gate uint8

const (
	GateH Gate = iota + 1
	GateCX
)

// Arity is the number of qubits a single application of the gate acts on.
func (g Gate) Arity() int {
	switch g {
	case GateH:
		return 1
	case GateCX:
		return 2
	default:
		return 0
	}
}

func (g Gate) String() string {
	switch g {
	case GateH:
		return "H"
	case GateCX:
		return "CX"
	default:
		return fmt.Sprintf("Gate(%d)", uint8(g))
	}
}

// Kind enumerates the closed set of operations a Program may hold.
type Kind uint8

const (
	KindQubitCoords Kind = iota + 1
	KindReset
	KindMeasure
	KindMeasureReset
	KindGate
	KindDepolarize1
	KindDepolarize2
	KindPauliError
	KindDetector
	KindObservable
	KindRepeat
)

func (k Kind) String() string {
	switch k {
	case KindQubitCoords:
		return "qubit_coords"
	case KindReset:
		return "reset"
	case KindMeasure:
		return "measure"
	case KindMeasureReset:
		return "measure_reset"
	case KindGate:
		return "gate"
	case KindDepolarize1:
		return "depolarize1"
	case KindDepolarize2:
		return "depolarize2"
	case KindPauliError:
		return "pauli_error"
	case KindDetector:
		return "detector"
	case KindObservable:
		return "observable"
	case KindRepeat:
		return "repeat"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Op is one instruction of a Program. Which operand fields are meaningful
// depends on Kind; the constructors below are the only supported way to
// build an Op and they reject operands that do not fit the kind.
type Op struct {
	Kind    Kind     `msgpack:"k"`
	Gate    Gate     `msgpack:"g,omitempty"`
	Basis   Basis    `msgpack:"b,omitempty"`
	Targets []Qubit  `msgpack:"t,omitempty"`
	Prob    float64  `msgpack:"p,omitempty"`
	Coords  []int    `msgpack:"c,omitempty"`
	Records []int    `msgpack:"r,omitempty"`
	Index   int      `msgpack:"i,omitempty"`
	Count   int      `msgpack:"n,omitempty"`
	Body    *Program `msgpack:"body,omitempty"`
}

// Name returns the instruction name used by the text format.
func (o Op) Name() string {
	switch o.Kind {
	case KindQubitCoords:
		return "QUBIT_COORDS"
	case KindReset:
		return basisName("R", o.Basis)
	case KindMeasure:
		return basisName("M", o.Basis)
	case KindMeasureReset:
		return basisName("MR", o.Basis)
	case KindGate:
		return o.Gate.String()
	case KindDepolarize1:
		return "DEPOLARIZE1"
	case KindDepolarize2:
		return "DEPOLARIZE2"
	case KindPauliError:
		return o.Basis.String() + "_ERROR"
	case KindDetector:
		return "DETECTOR"
	case KindObservable:
		return "OBSERVABLE_INCLUDE"
	case KindRepeat:
		return "REPEAT"
	default:
		return o.Kind.String()
	}
}

// IsNoise reports whether the op is a noise channel.
func (o Op) IsNoise() bool {
	switch o.Kind {
	case KindDepolarize1, KindDepolarize2, KindPauliError:
		return true
	}
	return false
}

func basisName(prefix string, b Basis) string {
	if b == BasisX {
		return prefix + "X"
	}
	return prefix
}

// QubitCoords annotates qubit q with grid coordinates.
func QubitCoords(q Qubit, coords ...int) Op {
	return Op{Kind: KindQubitCoords, Targets: []Qubit{q}, Coords: append([]int(nil), coords...)}
}

// Reset prepares targets in basis b.
func Reset(b Basis, targets []Qubit) Op {
	return Op{Kind: KindReset, Basis: b, Targets: copyTargets(targets)}
}

// Measure measures targets in basis b, appending one record per target.
func Measure(b Basis, targets []Qubit) Op {
	return Op{Kind: KindMeasure, Basis: b, Targets: copyTargets(targets)}
}

// MeasureReset measures then resets targets in basis b.
func MeasureReset(b Basis, targets []Qubit) Op {
	return Op{Kind: KindMeasureReset, Basis: b, Targets: copyTargets(targets)}
}

// GateOp applies g to targets, which are consumed in groups of g.Arity().
func GateOp(g Gate, targets []Qubit) Op {
	arity := g.Arity()
	if arity == 0 {
		panic(fmt.Sprintf("circuit: unsupported gate %v", g))
	}
	if len(targets)%arity != 0 {
		panic(fmt.Sprintf("circuit: gate %v needs a multiple of %d targets, got %d", g, arity, len(targets)))
	}
	return Op{Kind: KindGate, Gate: g, Targets: copyTargets(targets)}
}

// Depolarize1 applies single-qubit depolarizing noise with raw parameter p.
func Depolarize1(p float64, targets []Qubit) Op {
	return Op{Kind: KindDepolarize1, Prob: p, Targets: copyTargets(targets)}
}

// Depolarize2 applies two-qubit depolarizing noise to consecutive target pairs.
func Depolarize2(p float64, targets []Qubit) Op {
	if len(targets)%2 != 0 {
		panic(fmt.Sprintf("circuit: DEPOLARIZE2 needs an even number of targets, got %d", len(targets)))
	}
	return Op{Kind: KindDepolarize2, Prob: p, Targets: copyTargets(targets)}
}

// PauliError flips targets with the given Pauli at probability p.
func PauliError(pauli Basis, p float64, targets []Qubit) Op {
	return Op{Kind: KindPauliError, Basis: pauli, Prob: p, Targets: copyTargets(targets)}
}

// Detector declares a parity over measurement records given as negative
// backward offsets (-1 is the most recent measurement).
func Detector(records ...int) Op {
	checkRecords(records)
	return Op{Kind: KindDetector, Records: append([]int(nil), records...)}
}

// Observable includes the given records into logical observable index.
func Observable(index int, records ...int) Op {
	if index < 0 {
		panic(fmt.Sprintf("circuit: negative observable index %d", index))
	}
	checkRecords(records)
	return Op{Kind: KindObservable, Index: index, Records: append([]int(nil), records...)}
}

// Repeat runs body count times. count must be at least 2; callers that may
// produce fewer repetitions go through Program.AppendRepeat.
func Repeat(count int, body *Program) Op {
	if count < 2 {
		panic(fmt.Sprintf("circuit: REPEAT count must be at least 2, got %d", count))
	}
	if body == nil {
		panic("circuit: REPEAT with nil body")
	}
	return Op{Kind: KindRepeat, Count: count, Body: body.Clone()}
}

func checkRecords(records []int) {
	for _, r := range records {
		if r >= 0 {
			panic(fmt.Sprintf("circuit: measurement record offset must be negative, got %d", r))
		}
	}
}

func copyTargets(targets []Qubit) []Qubit {
	return append([]Qubit(nil), targets...)
}
