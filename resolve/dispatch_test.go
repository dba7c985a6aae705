package resolve

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/gogpu/spvfront/spirv"
)

type stubGroup struct {
	name string
	ops  []spirv.OpCode
}

func (g stubGroup) Name() string { return g.name }

func (g stubGroup) Handlers() map[spirv.OpCode]Handler {
	m := make(map[spirv.OpCode]Handler, len(g.ops))
	for _, op := range g.ops {
		m[op] = func(*Stage, spirv.Instruction, spirv.InstructionIndex) error { return nil }
	}
	return m
}

func TestNewDispatcher_Collision(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for overlapping groups")
		}
		msg := fmt.Sprint(r)
		for _, want := range []string{"OpNop", "first", "second"} {
			if !strings.Contains(msg, want) {
				t.Errorf("panic message %q does not mention %q", msg, want)
			}
		}
	}()
	NewDispatcher(
		stubGroup{"first", []spirv.OpCode{spirv.OpUndef, spirv.OpNop}},
		stubGroup{"second", []spirv.OpCode{spirv.OpNop}},
	)
}

func TestDefaultGroups_Disjoint(t *testing.T) {
	// NewDispatcher panics on overlap, so building it is the test.
	d := NewDispatcher(Groups()...)
	want := []string{
		"header", "capabilities", "extensions", "debug", "annotations",
		"types", "constants", "functions", "values",
	}
	if got := d.GroupNames(); !slices.Equal(got, want) {
		t.Errorf("GroupNames: got %v, want %v", got, want)
	}
	if DefaultDispatcher() != DefaultDispatcher() {
		t.Error("DefaultDispatcher is not shared")
	}
}

func TestDispatcher_Owner(t *testing.T) {
	d := DefaultDispatcher()
	tests := []struct {
		op    spirv.OpCode
		owner string
	}{
		{spirv.OpCapability, "capabilities"},
		{spirv.OpExtInst, "extensions"},
		{spirv.OpLine, "debug"},
		{spirv.OpGroupDecorate, "annotations"},
		{spirv.OpTypeVector, "types"},
		{spirv.OpConstantComposite, "constants"},
		{spirv.OpLabel, "functions"},
		{spirv.OpFMul, "values"},
		{spirv.OpStore, "values"},
	}
	for _, tt := range tests {
		got, ok := d.Owner(tt.op)
		if !ok || got != tt.owner {
			t.Errorf("Owner(%s) = %q, %v; want %q", tt.op, got, ok, tt.owner)
		}
	}
	if _, ok := d.Owner(spirv.OpTypeOpaque); ok {
		t.Error("OpTypeOpaque should have no owner")
	}
}

func TestDispatch_UnknownAndUnimplemented(t *testing.T) {
	header := spirv.Header{Magic: spirv.MagicNumber, Version: spirv.Version1_0, Bound: 16}
	d := DefaultDispatcher()

	tests := []struct {
		name string
		op   spirv.OpCode
		want error
	}{
		{"outside grammar", spirv.OpCode(4999), ErrUnknownOpcode},
		{"kernel type", spirv.OpTypeOpaque, ErrUnimplementedOpcode},
		{"specialization constant", spirv.OpSpecConstantTrue, ErrUnimplementedOpcode},
		{"forward pointer", spirv.OpTypeForwardPointer, ErrUnimplementedOpcode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStage("dispatch", header, spirv.ExecutionModelFragment)
			err := d.Dispatch(s, spirv.Instruction{Opcode: tt.op, Words: []uint32{1, 2}}, spirv.HeaderWords)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDispatch_FrozenStagePanics(t *testing.T) {
	s := mustTranslate(t, newShaderBuilder(), spirv.ExecutionModelFragment)

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic dispatching to a frozen stage")
		}
	}()
	_ = DefaultDispatcher().Dispatch(s, spirv.Instruction{Opcode: spirv.OpNop}, spirv.HeaderWords)
}

func TestSetID_FrozenStagePanics(t *testing.T) {
	s := mustTranslate(t, newShaderBuilder(), spirv.ExecutionModelFragment)

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic defining an id on a frozen stage")
		}
	}()
	_ = s.SetID(1, &Label{})
}

func TestEntryPointModels(t *testing.T) {
	b := newShaderBuilder()
	fn := addVoidFunction(b)
	b.AddEntryPoint(spirv.ExecutionModelFragment, fn, "main")
	b.AddEntryPoint(spirv.ExecutionModelVertex, fn, "vs")
	b.AddEntryPoint(spirv.ExecutionModelFragment, fn, "alt")

	got, err := EntryPointModels(parse(t, b, "models.spv"))
	if err != nil {
		t.Fatalf("EntryPointModels: %v", err)
	}
	want := []spirv.ExecutionModel{spirv.ExecutionModelFragment, spirv.ExecutionModelVertex}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
