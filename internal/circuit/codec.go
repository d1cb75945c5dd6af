package circuit

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when the encoded Program layout changes.
const codecSchemaVersion uint16 = 1

// ErrSchemaMismatch is returned by Decode for payloads written with a
// different schema version.
var ErrSchemaMismatch = errors.New("circuit: encoded program schema mismatch")

// envelope is the msgpack payload written by Encode.
type envelope struct {
	Schema  uint16   `msgpack:"schema"`
	Program *Program `msgpack:"program"`
}

// Encode writes p to w as a msgpack payload.
func Encode(w io.Writer, p *Program) error {
	if p == nil {
		return fmt.Errorf("circuit: cannot encode nil program")
	}
	return msgpack.NewEncoder(w).Encode(&envelope{Schema: codecSchemaVersion, Program: p})
}

// Decode reads a program written by Encode.
func Decode(r io.Reader) (*Program, error) {
	var env envelope
	if err := msgpack.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("circuit: decode program: %w", err)
	}
	if env.Schema != codecSchemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchemaMismatch, env.Schema, codecSchemaVersion)
	}
	if env.Program == nil {
		return New(), nil
	}
	return env.Program, nil
}
