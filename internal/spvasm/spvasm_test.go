package spvasm

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/spvfront/spirv"
)

func disassemble(t *testing.T, b *spirv.ModuleBuilder, named bool) string {
	t.Helper()
	m, err := spirv.ParseWords("test.spv", b.Words())
	if err != nil {
		t.Fatalf("ParseWords: %v", err)
	}
	var buf bytes.Buffer
	d := New(&buf)
	if named {
		d.UseNames(m)
	}
	if err := d.Module(m); err != nil {
		t.Fatalf("Module: %v", err)
	}
	return buf.String()
}

func TestDisassemble(t *testing.T) {
	b := spirv.NewModuleBuilder(spirv.Version1_3)
	b.AddCapability(spirv.CapabilityShader)
	glsl := b.AddExtInstImport(spirv.ExtInstSetGLSLStd450)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
	v := b.AddTypeVoid()
	f := b.AddTypeFloat(32)
	vec4 := b.AddTypeVector(f, 4)
	ptr := b.AddTypePointer(spirv.StorageClassOutput, vec4)
	out := b.AddVariable(ptr, spirv.StorageClassOutput)
	b.AddDecorate(out, spirv.DecorationLocation, 0)
	b.AddDecorate(out, spirv.DecorationBuiltIn, 0) // Position
	one := b.AddConstantFloat32(f, 1)
	fn := b.AddFunction(b.AddTypeFunction(v), v, spirv.FunctionControlNone)
	b.AddLabel()
	b.AddExtInst(f, glsl, 31, one)
	b.AddReturn()
	b.AddFunctionEnd()
	b.AddEntryPoint(spirv.ExecutionModelFragment, fn, "main", out)
	b.AddExecutionMode(fn, spirv.ExecutionModeOriginUpperLeft)

	got := disassemble(t, b, false)

	for _, want := range []string{
		"; SPIR-V\n; Version: 1.3\n",
		"                 OpCapability Shader\n",
		"            %1 = OpExtInstImport \"GLSL.std.450\"\n",
		"                 OpMemoryModel Logical GLSL450\n",
		"                 OpEntryPoint Fragment %9 \"main\" %6\n",
		"                 OpExecutionMode %9 OriginUpperLeft\n",
		"                 OpDecorate %6 Location 0\n",
		"                 OpDecorate %6 BuiltIn Position\n",
		"            %5 = OpTypePointer Output %4\n",
		"            %6 = OpVariable %5 Output\n",
		"            %7 = OpConstant %3 1065353216\n",
		"           %11 = OpExtInst %3 %1 Sqrt %7\n",
		"                 OpReturn\n",
		"                 OpFunctionEnd\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output is missing %q:\n%s", want, got)
		}
	}
}

func TestDisassemble_Names(t *testing.T) {
	b := spirv.NewModuleBuilder(spirv.Version1_0)
	f := b.AddTypeFloat(32)
	st := b.AddTypeStruct(f)
	b.AddName(f, "float")
	b.AddName(st, "my block")
	other := b.AddTypeStruct(f, f)
	b.AddName(other, "my_block")

	got := disassemble(t, b, true)

	for _, want := range []string{
		"OpName %float \"float\"",
		"%my_block = OpTypeStruct %float\n",
		"%my_block_3 = OpTypeStruct %float %float\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output is missing %q:\n%s", want, got)
		}
	}
}

func TestDisassemble_UnknownOpcode(t *testing.T) {
	b := spirv.NewModuleBuilder(spirv.Version1_0)
	b.AddRawGlobal(spirv.OpCode(4999), 7, 8)

	got := disassemble(t, b, false)
	if !strings.Contains(got, "                 Op4999 7 8\n") {
		t.Errorf("got:\n%s", got)
	}
}

func TestDisassemble_Truncated(t *testing.T) {
	b := spirv.NewModuleBuilder(spirv.Version1_0)
	b.AddCapability(spirv.CapabilityShader)
	words := append(b.Words(), 0x0004_0015) // OpTypeInt claiming 4 words
	m, err := spirv.ParseWords("test.spv", words)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	err = New(&buf).Module(m)
	if !errors.Is(err, spirv.ErrTruncatedInstruction) {
		t.Fatalf("got %v, want ErrTruncatedInstruction", err)
	}
	if !strings.HasPrefix(err.Error(), "word 7: ") {
		t.Errorf("error does not name the position: %v", err)
	}
	if !strings.Contains(buf.String(), "OpCapability Shader") {
		t.Error("instructions before the fault were not printed")
	}
}

func TestDisassemble_NamesBeforeFault(t *testing.T) {
	b := spirv.NewModuleBuilder(spirv.Version1_0)
	f := b.AddTypeFloat(32)
	b.AddName(f, "scalar")
	words := append(b.Words(), 0x0004_0015) // OpTypeInt claiming 4 words
	m, err := spirv.ParseWords("test.spv", words)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	d := New(&buf)
	d.UseNames(m)
	err = d.Module(m)
	if !errors.Is(err, spirv.ErrTruncatedInstruction) {
		t.Fatalf("got %v, want ErrTruncatedInstruction", err)
	}
	if !strings.Contains(buf.String(), "%scalar = OpTypeFloat 32") {
		t.Errorf("names before the fault were dropped:\n%s", buf.String())
	}
}

func TestDisassemble_Indices(t *testing.T) {
	b := spirv.NewModuleBuilder(spirv.Version1_0)
	b.AddCapability(spirv.CapabilityShader)
	b.AddTypeVoid()

	m, err := spirv.ParseWords("test.spv", b.Words())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	d := New(&buf)
	d.Indices = true
	if err := d.Module(m); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"     5:                  OpCapability Shader\n",
		"     7:             %1 = OpTypeVoid\n",
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output is missing %q:\n%s", want, buf.String())
		}
	}
}
