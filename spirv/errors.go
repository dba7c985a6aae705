package spirv

import "errors"

// Decoding errors. Callers compare with errors.Is; the returned errors wrap
// these with the offending position.
var (
	ErrMalformedHeader      = errors.New("malformed SPIR-V header")
	ErrTruncatedInstruction = errors.New("truncated instruction")
	ErrUnknownOpcode        = errors.New("unknown opcode")
)
