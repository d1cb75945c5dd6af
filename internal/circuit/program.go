package circuit

// Program is an ordered list of operations. The measurement record it
// produces is implied by the order of its measurement operations.
type Program struct {
	Ops []Op `msgpack:"ops"`
}

// New returns an empty program.
func New() *Program {
	return &Program{}
}

// Append adds ops to the end of the program.
func (p *Program) Append(ops ...Op) {
	p.Ops = append(p.Ops, ops...)
}

// Extend appends every op of other.
func (p *Program) Extend(other *Program) {
	if other == nil {
		return
	}
	p.Ops = append(p.Ops, other.Ops...)
}

// AppendRepeat appends body count times: nothing for zero, inline for one,
// and a REPEAT block otherwise.
func (p *Program) AppendRepeat(count int, body *Program) {
	switch {
	case count <= 0 || body == nil || len(body.Ops) == 0:
	case count == 1:
		p.Extend(body)
	default:
		p.Append(Repeat(count, body))
	}
}

// Clone returns a copy whose op list can be extended independently.
func (p *Program) Clone() *Program {
	if p == nil {
		return nil
	}
	return &Program{Ops: append([]Op(nil), p.Ops...)}
}

// Len is the number of top-level operations.
func (p *Program) Len() int {
	return len(p.Ops)
}

// Concat returns a new program holding the ops of all parts in order.
func Concat(parts ...*Program) *Program {
	out := New()
	for _, part := range parts {
		out.Extend(part)
	}
	return out
}

// Flatten expands every REPEAT block into its repetitions.
func (p *Program) Flatten() *Program {
	out := New()
	p.walk(func(op Op) { out.Ops = append(out.Ops, op) })
	return out
}

// walk visits every non-repeat op in execution order.
func (p *Program) walk(fn func(Op)) {
	for _, op := range p.Ops {
		if op.Kind == KindRepeat {
			for i := 0; i < op.Count; i++ {
				op.Body.walk(fn)
			}
			continue
		}
		fn(op)
	}
}

// Count returns how many ops of kind k are executed.
func (p *Program) Count(k Kind) int {
	n := 0
	p.walk(func(op Op) {
		if op.Kind == k {
			n++
		}
	})
	return n
}

// CountNoise returns how many noise channels are executed.
func (p *Program) CountNoise() int {
	n := 0
	p.walk(func(op Op) {
		if op.IsNoise() {
			n++
		}
	})
	return n
}

// Measurements is the length of the measurement record produced by p.
func (p *Program) Measurements() int {
	n := 0
	p.walk(func(op Op) {
		if op.Kind == KindMeasure || op.Kind == KindMeasureReset {
			n += len(op.Targets)
		}
	})
	return n
}

// Detectors is the number of executed DETECTOR declarations.
func (p *Program) Detectors() int {
	return p.Count(KindDetector)
}

// NumQubits is one more than the largest qubit index referenced.
func (p *Program) NumQubits() int {
	n := 0
	p.walk(func(op Op) {
		for _, q := range op.Targets {
			if int(q) >= n {
				n = int(q) + 1
			}
		}
	})
	return n
}
