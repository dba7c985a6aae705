package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/spvfront/spirv"
)

// Decoding errors, re-exported so callers need only this package.
var (
	ErrMalformedHeader      = spirv.ErrMalformedHeader
	ErrTruncatedInstruction = spirv.ErrTruncatedInstruction
	ErrUnknownOpcode        = spirv.ErrUnknownOpcode
)

// Resolution errors. Every one aborts the stage being translated.
var (
	ErrUnimplementedOpcode            = errors.New("unimplemented opcode")
	ErrUnimplementedFeature           = errors.New("unimplemented feature")
	ErrDuplicateDefinition            = errors.New("duplicate definition")
	ErrUndefinedID                    = errors.New("undefined id")
	ErrWrongEntityKind                = errors.New("wrong entity kind")
	ErrIDOutOfRange                   = errors.New("id out of range")
	ErrCapabilityNotImplemented       = errors.New("capability not implemented")
	ErrUnimplementedExtension         = errors.New("unimplemented extension")
	ErrUnknownExtensionInstructionSet = errors.New("unknown extension instruction set")
	ErrUnknownExtensionInstruction    = errors.New("unknown extension instruction")
	ErrEntryPointNotFound             = errors.New("entry point not found")
	ErrNoStages                       = errors.New("no stages to translate")
)

// Error is a diagnostic attached to a range of instructions.
// Start == End for faults raised by a single instruction.
type Error struct {
	Err      error
	Start    spirv.InstructionIndex
	End      spirv.InstructionIndex
	Message  string
	Location Location
}

// Error implements the error interface.
func (e *Error) Error() string {
	loc := e.Location.String()
	if loc == "" {
		return e.Message
	}
	return loc + ": " + e.Message
}

// Unwrap returns the underlying error so errors.Is matches the sentinels.
func (e *Error) Unwrap() error {
	return e.Err
}

// newError lifts err into a single-instruction diagnostic. An err that is
// already an *Error is returned as is.
func newError(err error, index spirv.InstructionIndex, loc Location) *Error {
	var existing *Error
	if errors.As(err, &existing) {
		return existing
	}
	return &Error{
		Err:      err,
		Start:    index,
		End:      index,
		Message:  err.Error(),
		Location: loc,
	}
}

// HeaderError wraps a header decoding failure for module name.
func HeaderError(name string, err error) *Error {
	return &Error{Err: err, Message: err.Error(), Location: Location{Module: name}}
}

// Errors is a list of diagnostics, one per failed stage.
type Errors []*Error

// Error implements the error interface.
func (el Errors) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", el[0].Error(), len(el)-1)
}

// Unwrap exposes every diagnostic to errors.Is and errors.As.
func (el Errors) Unwrap() []error {
	errs := make([]error, len(el))
	for i, e := range el {
		errs[i] = e
	}
	return errs
}

// FormatAll returns one diagnostic per line.
func (el Errors) FormatAll() string {
	var sb strings.Builder
	for i, e := range el {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}
