package resolve

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gogpu/spvfront/spirv"
)

func TestNewError(t *testing.T) {
	loc := Location{Module: "m.spv", Index: 9}
	err := newError(fmt.Errorf("%w: %%3", ErrUndefinedID), 9, loc)

	if err.Start != 9 || err.End != 9 {
		t.Errorf("range: got [%d, %d]", err.Start, err.End)
	}
	if !errors.Is(err, ErrUndefinedID) {
		t.Error("sentinel lost")
	}
	if want := "m.spv: word 9: undefined id: %3"; err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}

	// An existing diagnostic keeps its own position.
	wrapped := fmt.Errorf("outer: %w", err)
	if again := newError(wrapped, 20, Location{}); again != err {
		t.Errorf("got %+v, want the original diagnostic", again)
	}
}

func TestHeaderError(t *testing.T) {
	_, perr := spirv.Parse("bad.spv", []byte{1, 2, 3, 4})
	err := HeaderError("bad.spv", perr)
	if !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("got %v, want ErrMalformedHeader", err)
	}
	if err.Start != 0 || err.Location.Module != "bad.spv" {
		t.Errorf("got %+v", err)
	}
}

func TestErrors(t *testing.T) {
	e1 := &Error{Err: ErrCapabilityNotImplemented, Message: "capability not implemented: Geometry"}
	e2 := &Error{Err: ErrUnknownOpcode, Message: "unknown opcode: 4999", Location: Location{Module: "x.spv"}}

	tests := []struct {
		name string
		errs Errors
		want string
	}{
		{"empty", nil, "no errors"},
		{"one", Errors{e1}, "capability not implemented: Geometry"},
		{"two", Errors{e1, e2}, "capability not implemented: Geometry (and 1 more errors)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.errs.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	all := Errors{e1, e2}
	if want := "capability not implemented: Geometry\nx.spv: unknown opcode: 4999"; all.FormatAll() != want {
		t.Errorf("FormatAll: got %q", all.FormatAll())
	}
	if !errors.Is(all, ErrUnknownOpcode) || !errors.Is(all, ErrCapabilityNotImplemented) {
		t.Error("errors.Is does not see every diagnostic")
	}
	var diag *Error
	if !errors.As(error(all), &diag) || diag != e1 {
		t.Error("errors.As should find the first diagnostic")
	}
}
