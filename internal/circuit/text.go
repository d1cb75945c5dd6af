package circuit

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

const repeatIndent = "    "

// String renders the program in the stabilizer-circuit text format.
func (p *Program) String() string {
	var sb strings.Builder
	writeOps(&sb, p.Ops, "")
	return sb.String()
}

// WriteTo writes the text rendering of p to w.
func (p *Program) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	cw := &countingWriter{w: bw}
	writeOps(cw, p.Ops, "")
	if err := bw.Flush(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

type countingWriter struct {
	w *bufio.Writer
	n int64
}

func (c *countingWriter) WriteString(s string) (int, error) {
	n, err := c.w.WriteString(s)
	c.n += int64(n)
	return n, err
}

// Errors surface from bufio.Writer.Flush, so individual writes are not checked.
func writeOps(w io.StringWriter, ops []Op, indent string) {
	for _, op := range ops {
		w.WriteString(indent)
		if op.Kind == KindRepeat {
			w.WriteString("REPEAT " + strconv.Itoa(op.Count) + " {\n")
			writeOps(w, op.Body.Ops, indent+repeatIndent)
			w.WriteString(indent + "}\n")
			continue
		}
		w.WriteString(formatOp(op))
		w.WriteString("\n")
	}
}

// formatOp renders a single non-repeat op on one line.
func formatOp(op Op) string {
	var sb strings.Builder
	sb.WriteString(op.Name())

	switch op.Kind {
	case KindQubitCoords:
		sb.WriteString("(")
		for i, c := range op.Coords {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Itoa(c))
		}
		sb.WriteString(")")
	case KindDepolarize1, KindDepolarize2, KindPauliError:
		sb.WriteString("(" + formatProb(op.Prob) + ")")
	case KindObservable:
		sb.WriteString("(" + strconv.Itoa(op.Index) + ")")
	}

	for _, q := range op.Targets {
		sb.WriteString(" ")
		sb.WriteString(strconv.FormatUint(uint64(q), 10))
	}
	for _, r := range op.Records {
		sb.WriteString(" rec[")
		sb.WriteString(strconv.Itoa(r))
		sb.WriteString("]")
	}
	return sb.String()
}

func formatProb(p float64) string {
	return strconv.FormatFloat(p, 'g', -1, 64)
}
