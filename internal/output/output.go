// Package output writes built circuits to files or a stream.
package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/hgpcircuit/internal/circuit"
	"github.com/specialistvlad/hgpcircuit/internal/ctxlog"
)

// ErrInvalidName reports an experiment name that cannot become a file name.
var ErrInvalidName = errors.New("invalid output name")

// Format selects how a program is serialized.
type Format string

const (
	// FormatText is the stabilizer-circuit text format.
	FormatText Format = "stim"
	// FormatMsgpack is the binary encoding of circuit.Encode.
	FormatMsgpack Format = "msgpack"
)

// ParseFormat accepts "stim" and "msgpack".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatMsgpack:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q, expected %q or %q", s, FormatText, FormatMsgpack)
	}
}

// Extension is the file extension written for f.
func (f Format) Extension() string {
	if f == FormatMsgpack {
		return ".mp"
	}
	return ".stim"
}

func (f Format) encode(w io.Writer, p *circuit.Program) error {
	if f == FormatMsgpack {
		return circuit.Encode(w, p)
	}
	_, err := p.WriteTo(w)
	return err
}

// Writer stores programs under Dir, one file per name, or streams them to
// Stream when Dir is empty.
type Writer struct {
	Dir    string
	Format Format
	Stream io.Writer
}

// New returns a writer for dir. An empty dir streams to stream.
func New(dir string, format Format, stream io.Writer) *Writer {
	return &Writer{Dir: dir, Format: format, Stream: stream}
}

// Write stores p under name and returns the file path, or "" when streaming.
// Files are replaced atomically so readers never see a partial program.
func (w *Writer) Write(ctx context.Context, name string, p *circuit.Program) (string, error) {
	logger := ctxlog.FromContext(ctx)
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	if w.Dir == "" {
		if w.Format == FormatText {
			if _, err := fmt.Fprintf(w.Stream, "# %s\n", name); err != nil {
				return "", err
			}
		}
		if err := w.Format.encode(w.Stream, p); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", name, err)
		}
		logger.Debug("Program streamed.", "name", name, "format", w.Format)
		return "", nil
	}

	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	dest := filepath.Join(w.Dir, name+w.Format.Extension())
	if err := writeAtomic(dest, func(f io.Writer) error { return w.Format.encode(f, p) }); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", dest, err)
	}
	logger.Debug("Program written.", "path", dest, "format", w.Format)
	return dest, nil
}

func writeAtomic(dest string, fill func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if err := fill(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
