package memory

import "fmt"

// cursor tracks the length of the measurement record while segments are
// written, so that detectors can address earlier measurements by their
// backward offset at the moment they are declared.
type cursor struct {
	total int
}

// measure accounts for n new measurements and returns the position of the first.
func (c *cursor) measure(n int) int {
	start := c.total
	c.total += n
	return start
}

// skip accounts for measurements emitted outside the builder, such as the
// further repetitions of a body segment.
func (c *cursor) skip(n int) {
	c.total += n
}

// rec converts an absolute record position into a backward offset.
func (c *cursor) rec(pos int) int {
	if pos < 0 || pos >= c.total {
		panic(fmt.Sprintf("memory: record position %d outside record of length %d", pos, c.total))
	}
	return pos - c.total
}

// roundRecord locates the check measurements of one round: X checks first,
// then Z checks, each in scan order.
type roundRecord struct {
	start int
	nx    int
}

func (r roundRecord) x(k int) int { return r.start + k }

func (r roundRecord) z(k int) int { return r.start + r.nx + k }
