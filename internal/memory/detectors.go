package memory

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/hgpcircuit/internal/circuit"
	"github.com/specialistvlad/hgpcircuit/internal/layout"
	"github.com/specialistvlad/hgpcircuit/internal/schedule"
)

var errSegmentOrder = errors.New("memory: segments must be built head, body, tail")

// stage is the position of the segment builder in its head -> body -> tail
// lifecycle. The body may be built any number of times before the tail.
type stage uint8

const (
	stageHead stage = iota
	stageBody
	stageDone
)

// segments writes the head, body and tail of a memory experiment while
// keeping one measurement cursor across all of them.
type segments struct {
	layout *layout.Layout
	plan   *schedule.Plan
	params Params

	stage stage
	cur   cursor
	last  roundRecord
}

func newSegments(l *layout.Layout, plan *schedule.Plan, p Params) *segments {
	return &segments{layout: l, plan: plan, params: p}
}

// roundSize is the number of measurements one syndrome round appends.
func (s *segments) roundSize() int {
	return len(s.layout.XChecks) + len(s.layout.ZChecks)
}

// activeChecks is the number of checks that carry detectors.
func (s *segments) activeChecks() int {
	if s.params.Experiment == XMemory {
		return len(s.layout.XChecks)
	}
	return len(s.layout.ZChecks)
}

// checkPos returns the record position of active check k in round r.
func (s *segments) checkPos(r roundRecord, k int) int {
	if s.params.Experiment == XMemory {
		return r.x(k)
	}
	return r.z(k)
}

// round emits one noisy syndrome-extraction round and records where its
// check measurements landed.
func (s *segments) round(e *circuit.Emitter) roundRecord {
	n := s.params.Noise
	xq := s.layout.XCheckQubits()

	e.Gate1(circuit.GateH, xq, n.CliffordDepolarization)
	s.plan.Emit(e)
	e.Gate1(circuit.GateH, xq, n.CliffordDepolarization)
	e.MeasureReset(s.layout.CheckQubits(), n.MeasureFlip, n.ResetFlip, circuit.BasisZ)

	return roundRecord{start: s.cur.measure(s.roundSize()), nx: len(s.layout.XChecks)}
}

// head prepares every qubit noiselessly, runs the first round and declares
// one detector per active check from its first measurement alone.
func (s *segments) head() (*circuit.Program, error) {
	if s.stage != stageHead {
		return nil, fmt.Errorf("%w: head requested after %d", errSegmentOrder, s.stage)
	}
	prog := circuit.New()
	e := circuit.NewEmitter(prog)

	for _, c := range s.layout.Coords() {
		q, _ := s.layout.Qubit(c)
		prog.Append(circuit.QubitCoords(q, c.Row, c.Col))
	}
	e.Reset(s.layout.DataQubits(), 0, s.params.Experiment.Basis())
	e.Reset(s.layout.CheckQubits(), 0, circuit.BasisZ)

	s.last = s.round(e)
	n := s.activeChecks()
	for i := 0; i < n; i++ {
		e.Detector(s.cur.rec(s.checkPos(s.last, n-1-i)))
	}

	s.stage = stageBody
	return prog, nil
}

// body runs one round and compares every active check with its measurement
// in the previous round. Offsets only reach one round back, so the segment
// stays valid when repeated.
func (s *segments) body() (*circuit.Program, error) {
	if s.stage != stageBody {
		return nil, fmt.Errorf("%w: body requested in stage %d", errSegmentOrder, s.stage)
	}
	prog := circuit.New()
	e := circuit.NewEmitter(prog)

	prev := s.last
	s.last = s.round(e)
	n := s.activeChecks()
	for i := 0; i < n; i++ {
		k := n - 1 - i
		e.Detector(s.cur.rec(s.checkPos(s.last, k)), s.cur.rec(s.checkPos(prev, k)))
	}
	return prog, nil
}

// repeatBody accounts for count further executions of the body segment.
func (s *segments) repeatBody(count int) {
	if count <= 0 {
		return
	}
	s.cur.skip(count * s.roundSize())
	s.last.start += count * s.roundSize()
}

// tail measures every data qubit noiselessly, closes each check group with
// a detector and declares the requested observables.
func (s *segments) tail() (*circuit.Program, error) {
	if s.stage != stageBody {
		return nil, fmt.Errorf("%w: tail requested in stage %d", errSegmentOrder, s.stage)
	}
	prog := circuit.New()
	e := circuit.NewEmitter(prog)
	l := s.layout

	e.Measure(l.DataQubits(), 0, s.params.Experiment.Basis())
	start := s.cur.measure(len(l.Data))
	dataRec := func(c layout.Coord) int {
		pos, _ := l.Position(c)
		return s.cur.rec(start + pos)
	}

	for _, g := range s.plan.Pairings.Of(s.params.Experiment.checkType()) {
		records := make([]int, 0, len(g.Data)+1)
		for _, d := range g.Data {
			records = append(records, dataRec(d))
		}
		k, _ := l.Position(g.Check)
		records = append(records, s.cur.rec(s.checkPos(s.last, k)))
		e.Detector(records...)
	}

	switch s.params.Experiment {
	case ZMemory:
		for _, col := range s.params.Observable.Columns {
			var records []int
			for _, c := range dataInColumn(l, col) {
				records = append(records, dataRec(c))
			}
			e.Observable(col, records...)
		}
	case XMemory:
		for i, group := range s.params.Observable.Groups {
			records := make([]int, 0, len(group))
			for _, c := range group {
				records = append(records, dataRec(c))
			}
			e.Observable(i, records...)
		}
	}

	s.stage = stageDone
	return prog, nil
}
