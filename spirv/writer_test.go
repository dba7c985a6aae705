package spirv

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestModuleBuilder_MinimalModule(t *testing.T) {
	builder := NewModuleBuilder(Version1_3)
	builder.AddCapability(CapabilityShader)
	builder.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)

	data := builder.Build()

	// Header (5 words) + OpCapability (2) + OpMemoryModel (3)
	if len(data) != 40 {
		t.Fatalf("Module size: got %d bytes, want 40", len(data))
	}

	magic := binary.LittleEndian.Uint32(data[0:4])
	if magic != MagicNumber {
		t.Errorf("Invalid magic: got 0x%08X, want 0x%08X", magic, MagicNumber)
	}

	version := binary.LittleEndian.Uint32(data[4:8])
	if version != 0x00010300 {
		t.Errorf("Invalid version: got 0x%08X, want 0x00010300", version)
	}

	bound := binary.LittleEndian.Uint32(data[12:16])
	if bound != 1 {
		t.Errorf("Invalid bound: got %d, want 1", bound)
	}

	schema := binary.LittleEndian.Uint32(data[16:20])
	if schema != 0 {
		t.Errorf("Invalid schema: got %d, want 0", schema)
	}

	capWord := binary.LittleEndian.Uint32(data[20:24])
	if capWord != 2<<16|uint32(OpCapability) {
		t.Errorf("Capability word: got 0x%08X", capWord)
	}
	if got := binary.LittleEndian.Uint32(data[24:28]); got != uint32(CapabilityShader) {
		t.Errorf("Capability operand: got %d, want %d", got, CapabilityShader)
	}
}

func TestModuleBuilder_WithTypes(t *testing.T) {
	builder := NewModuleBuilder(Version1_3)

	voidType := builder.AddTypeVoid()
	floatType := builder.AddTypeFloat(32)
	vec4Type := builder.AddTypeVector(floatType, 4)
	intType := builder.AddTypeInt(32, true)

	if voidType != 1 || floatType != 2 || vec4Type != 3 || intType != 4 {
		t.Errorf("IDs: got void=%d float=%d vec4=%d int=%d, want 1..4", voidType, floatType, vec4Type, intType)
	}

	words := builder.Words()
	if words[3] != 5 {
		t.Errorf("Bound: got %d, want 5", words[3])
	}
	// Header + void (2) + float (3) + vector (4) + int (4)
	if len(words) != 18 {
		t.Errorf("Word count: got %d, want 18", len(words))
	}
}

func TestModuleBuilder_SectionOrder(t *testing.T) {
	builder := NewModuleBuilder(Version1_3)

	// Added out of layout order on purpose.
	voidType := builder.AddTypeVoid()
	funcType := builder.AddTypeFunction(voidType)
	funcID := builder.AddFunction(funcType, voidType, FunctionControlNone)
	builder.AddLabel()
	builder.AddReturn()
	builder.AddFunctionEnd()
	builder.AddEntryPoint(ExecutionModelFragment, funcID, "main")
	builder.AddExecutionMode(funcID, ExecutionModeOriginUpperLeft)
	builder.AddName(funcID, "main")
	builder.AddDecorate(voidType, DecorationRelaxedPrecision)
	builder.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)
	builder.AddCapability(CapabilityShader)

	m, err := ParseWords("order", builder.Words())
	if err != nil {
		t.Fatalf("ParseWords failed: %v", err)
	}

	want := []OpCode{
		OpCapability, OpMemoryModel, OpEntryPoint, OpExecutionMode,
		OpName, OpDecorate,
		OpTypeVoid, OpTypeFunction,
		OpFunction, OpLabel, OpReturn, OpFunctionEnd,
	}
	var got []OpCode
	dec := NewDecoder(m)
	for dec.More() {
		inst, _, err := dec.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		got = append(got, inst.Opcode)

		if inst.Opcode == OpEntryPoint {
			ops := inst.Operands()
			model := ExecutionModel(ops.Word())
			fn := ops.ID()
			name := ops.LiteralString()
			if model != ExecutionModelFragment || fn != funcID || name != "main" {
				t.Errorf("OpEntryPoint: got %s %%%d %q", model, fn, name)
			}
		}
	}
	if len(got) != len(want) {
		t.Fatalf("Instructions: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Instruction %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestModuleBuilder_SetBound(t *testing.T) {
	builder := NewModuleBuilder(Version1_0)
	builder.AddTypeVoid()
	builder.SetBound(100)
	builder.SetSchema(3)

	words := builder.Words()
	if words[3] != 100 {
		t.Errorf("Bound: got %d, want 100", words[3])
	}
	if words[4] != 3 {
		t.Errorf("Schema: got %d, want 3", words[4])
	}
}

func TestInstructionBuilder_String(t *testing.T) {
	builder := NewInstructionBuilder()
	builder.AddString("hello")

	inst := builder.Build(OpName)
	encoded := inst.Encode()

	// First word is opcode
	opcodeWord := encoded[0]
	wordCount := opcodeWord >> 16
	opcode := OpCode(opcodeWord & 0xFFFF)

	if opcode != OpName {
		t.Errorf("Wrong opcode: got %d, want %d", opcode, OpName)
	}

	// "hello" plus terminator is 6 bytes, padded to 2 words
	if wordCount != 3 {
		t.Errorf("Word count: got %d, want 3", wordCount)
	}
	if encoded[1] != 0x6C6C6568 || encoded[2] != 0x0000006F {
		t.Errorf("Payload: got 0x%08X 0x%08X", encoded[1], encoded[2])
	}
}

func TestModuleBuilder_Float32(t *testing.T) {
	builder := NewModuleBuilder(Version1_3)

	floatType := builder.AddTypeFloat(32)
	constID := builder.AddConstantFloat32(floatType, 3.14159)

	words := builder.Words()
	// Header + OpTypeFloat (3) + OpConstant (4)
	if len(words) != 12 {
		t.Fatalf("Word count: got %d, want 12", len(words))
	}
	if ID(words[10]) != constID {
		t.Errorf("Result ID: got %d, want %d", words[10], constID)
	}
	if got := math.Float32frombits(words[11]); got != 3.14159 {
		t.Errorf("Value: got %v, want 3.14159", got)
	}
}

func TestModuleBuilder_IDAllocation(t *testing.T) {
	builder := NewModuleBuilder(Version1_3)

	id1 := builder.AllocID()
	id2 := builder.AllocID()
	id3 := builder.AllocID()

	if id1 >= id2 || id2 >= id3 {
		t.Error("IDs should be strictly increasing")
	}

	if id1 == 0 || id2 == 0 || id3 == 0 {
		t.Error("IDs should never be 0")
	}
}
