package circuit

import "fmt"

// Emitter appends operations to a program together with the noise channels
// that model their physical imperfections. A zero probability never emits
// a noise channel, and an empty target list emits nothing at all.
type Emitter struct {
	prog *Program
}

// NewEmitter returns an emitter appending to p.
func NewEmitter(p *Program) *Emitter {
	if p == nil {
		p = New()
	}
	return &Emitter{prog: p}
}

// Program returns the program being written.
func (e *Emitter) Program() *Program {
	return e.prog
}

// Reset prepares targets in basis and then flips them in the opposite basis
// with probability flip.
func (e *Emitter) Reset(targets []Qubit, flip float64, basis Basis) {
	if len(targets) == 0 {
		return
	}
	e.prog.Append(Reset(basis, targets))
	e.antiBasisError(targets, flip, basis)
}

// Measure flips targets in the opposite basis with probability flip and
// then measures them.
func (e *Emitter) Measure(targets []Qubit, flip float64, basis Basis) {
	if len(targets) == 0 {
		return
	}
	e.antiBasisError(targets, flip, basis)
	e.prog.Append(Measure(basis, targets))
}

// MeasureReset is a measurement with a pre-measurement flip followed by a
// reset with a post-reset flip.
func (e *Emitter) MeasureReset(targets []Qubit, measureFlip, resetFlip float64, basis Basis) {
	if len(targets) == 0 {
		return
	}
	e.antiBasisError(targets, measureFlip, basis)
	e.prog.Append(MeasureReset(basis, targets))
	e.antiBasisError(targets, resetFlip, basis)
}

// Gate1 applies a one-qubit gate followed by single-qubit depolarization.
// The raw channel parameter is p*3/4 so that p=1 fully mixes the qubit.
func (e *Emitter) Gate1(g Gate, targets []Qubit, p float64) {
	if g.Arity() != 1 {
		panic(fmt.Sprintf("circuit: Gate1 called with %d-qubit gate %v", g.Arity(), g))
	}
	if len(targets) == 0 {
		return
	}
	e.prog.Append(GateOp(g, targets))
	if p > 0 {
		e.prog.Append(Depolarize1(p*3/4, targets))
	}
}

// Gate2 applies a two-qubit gate to (a, b) followed by multiplicity copies
// of two-qubit depolarization with raw parameter p*15/16.
func (e *Emitter) Gate2(g Gate, a, b Qubit, p float64, multiplicity int) {
	if g.Arity() != 2 {
		panic(fmt.Sprintf("circuit: Gate2 called with %d-qubit gate %v", g.Arity(), g))
	}
	pair := []Qubit{a, b}
	e.prog.Append(GateOp(g, pair))
	if p > 0 {
		for i := 0; i < multiplicity; i++ {
			e.prog.Append(Depolarize2(p*15/16, pair))
		}
	}
}

// Detector declares a detector over the given backward record offsets.
func (e *Emitter) Detector(records ...int) {
	e.prog.Append(Detector(records...))
}

// Observable includes records into the logical observable index.
func (e *Emitter) Observable(index int, records ...int) {
	e.prog.Append(Observable(index, records...))
}

func (e *Emitter) antiBasisError(targets []Qubit, p float64, basis Basis) {
	if p > 0 {
		e.prog.Append(PauliError(basis.Opposite(), p, targets))
	}
}
