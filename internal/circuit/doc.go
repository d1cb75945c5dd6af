// Package circuit defines the stabilizer-circuit program produced by the
// builder: a closed set of typed operations (Op), an append-only Program,
// and an Emitter that pairs each physical operation with its noise model.
//
// Programs render to the line-oriented stabilizer-circuit text format via
// String/WriteTo and round-trip through msgpack via Encode/Decode.
package circuit
