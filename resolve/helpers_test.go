package resolve

import (
	"errors"
	"testing"

	"github.com/gogpu/spvfront/spirv"
)

// newShaderBuilder returns a builder with the Shader capability and the
// logical GLSL450 memory model already declared.
func newShaderBuilder() *spirv.ModuleBuilder {
	b := spirv.NewModuleBuilder(spirv.Version1_3)
	b.AddCapability(spirv.CapabilityShader)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
	return b
}

// addVoidFunction adds "void main()" with one empty block and returns the
// function id. The caller adds the entry point.
func addVoidFunction(b *spirv.ModuleBuilder) spirv.ID {
	voidType := b.AddTypeVoid()
	funcType := b.AddTypeFunction(voidType)
	fn := b.AddFunction(funcType, voidType, spirv.FunctionControlNone)
	b.AddLabel()
	b.AddReturn()
	b.AddFunctionEnd()
	return fn
}

func parse(t *testing.T, b *spirv.ModuleBuilder, name string) *spirv.Module {
	t.Helper()
	m, err := spirv.ParseWords(name, b.Words())
	if err != nil {
		t.Fatalf("ParseWords: %v", err)
	}
	return m
}

func translate(t *testing.T, b *spirv.ModuleBuilder, model spirv.ExecutionModel) (*Stage, error) {
	t.Helper()
	return Translate(parse(t, b, "test.spv"), model)
}

func mustTranslate(t *testing.T, b *spirv.ModuleBuilder, model spirv.ExecutionModel) *Stage {
	t.Helper()
	s, err := translate(t, b, model)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if !s.Frozen() {
		t.Fatal("returned stage is not frozen")
	}
	return s
}

// translateErr translates a module that must fail with target and
// returns the diagnostic.
func translateErr(t *testing.T, b *spirv.ModuleBuilder, target error) *Error {
	t.Helper()
	s, err := translate(t, b, spirv.ExecutionModelFragment)
	if err == nil {
		t.Fatalf("Translate succeeded, want %v", target)
	}
	if s != nil {
		t.Error("failed translation returned a stage")
	}
	if !errors.Is(err, target) {
		t.Fatalf("got %v, want %v", err, target)
	}
	var diag *Error
	if !errors.As(err, &diag) {
		t.Fatalf("error %T is not an *Error", err)
	}
	return diag
}

// walk dispatches the module instruction by instruction, calling after
// once each instruction has been handled.
func walk(t *testing.T, b *spirv.ModuleBuilder, after func(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex)) *Stage {
	t.Helper()
	m := parse(t, b, "walk.spv")
	s := NewStage(m.Name, m.Header, spirv.ExecutionModelFragment)
	d := DefaultDispatcher()
	dec := spirv.NewDecoder(m)
	for dec.More() {
		inst, index, err := dec.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if err := d.Dispatch(s, inst, index); err != nil {
			t.Fatalf("%s at %s: %v", inst.Opcode, index, err)
		}
		after(s, inst, index)
	}
	return s
}
