package spirv

import (
	"encoding/binary"
	"errors"
	"testing"
)

func minimalModule() *ModuleBuilder {
	builder := NewModuleBuilder(Version1_3)
	builder.AddCapability(CapabilityShader)
	builder.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)
	return builder
}

func TestParse_Header(t *testing.T) {
	builder := minimalModule()
	builder.AddTypeVoid()

	m, err := Parse("min.spv", builder.Build())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if m.Name != "min.spv" {
		t.Errorf("Name: got %q, want %q", m.Name, "min.spv")
	}
	if m.Header.Magic != MagicNumber {
		t.Errorf("Magic: got 0x%08X, want 0x%08X", m.Header.Magic, MagicNumber)
	}
	if m.Header.Version != Version1_3 {
		t.Errorf("Version: got %v, want %v", m.Header.Version, Version1_3)
	}
	if m.Header.Bound != 2 {
		t.Errorf("Bound: got %d, want 2", m.Header.Bound)
	}
	if m.Header.Schema != 0 {
		t.Errorf("Schema: got %d, want 0", m.Header.Schema)
	}
}

func TestParse_MalformedHeader(t *testing.T) {
	valid := minimalModule().Build()

	badMagic := append([]byte(nil), valid...)
	binary.LittleEndian.PutUint32(badMagic[0:], 0xDEADBEEF)

	badSchema := append([]byte(nil), valid...)
	binary.LittleEndian.PutUint32(badSchema[16:], 1)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short header", valid[:16]},
		{"unaligned", valid[:22]},
		{"bad magic", badMagic},
		{"non-zero schema", badSchema},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.spv", tt.data)
			if !errors.Is(err, ErrMalformedHeader) {
				t.Errorf("got %v, want ErrMalformedHeader", err)
			}
		})
	}
}

func TestParse_BigEndian(t *testing.T) {
	little := minimalModule().Build()
	big := make([]byte, len(little))
	for i := 0; i < len(little); i += 4 {
		binary.BigEndian.PutUint32(big[i:], binary.LittleEndian.Uint32(little[i:]))
	}

	want, err := Parse("le", little)
	if err != nil {
		t.Fatalf("Parse little-endian: %v", err)
	}
	got, err := Parse("be", big)
	if err != nil {
		t.Fatalf("Parse big-endian: %v", err)
	}
	if len(got.Words) != len(want.Words) {
		t.Fatalf("word count: got %d, want %d", len(got.Words), len(want.Words))
	}
	for i := range want.Words {
		if got.Words[i] != want.Words[i] {
			t.Errorf("word %d: got 0x%08X, want 0x%08X", i, got.Words[i], want.Words[i])
		}
	}
}

func TestDecoder_Indices(t *testing.T) {
	builder := minimalModule()
	voidType := builder.AddTypeVoid()
	builder.AddTypeFunction(voidType)

	m, err := ParseWords("idx", builder.Words())
	if err != nil {
		t.Fatalf("ParseWords failed: %v", err)
	}

	want := []struct {
		op    OpCode
		index InstructionIndex
	}{
		{OpCapability, 5},
		{OpMemoryModel, 7},
		{OpTypeVoid, 10},
		{OpTypeFunction, 12},
	}

	dec := NewDecoder(m)
	for i, w := range want {
		if !dec.More() {
			t.Fatalf("decoder ended after %d instructions", i)
		}
		inst, index, err := dec.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if inst.Opcode != w.op || index != w.index {
			t.Errorf("instruction %d: got %s at %d, want %s at %d", i, inst.Opcode, index, w.op, w.index)
		}
	}
	if dec.More() {
		t.Error("decoder has trailing instructions")
	}
}

func TestDecoder_Truncated(t *testing.T) {
	header := []uint32{MagicNumber, versionToWord(Version1_0), 0, 8, 0}

	tests := []struct {
		name  string
		words []uint32
	}{
		{"zero word count", []uint32{uint32(OpNop)}},
		{"count past end", []uint32{4<<16 | uint32(OpTypeInt), 1, 32}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseWords(tt.name, append(append([]uint32(nil), header...), tt.words...))
			if err != nil {
				t.Fatalf("ParseWords failed: %v", err)
			}
			_, index, err := NewDecoder(m).Next()
			if !errors.Is(err, ErrTruncatedInstruction) {
				t.Errorf("got %v, want ErrTruncatedInstruction", err)
			}
			if index != HeaderWords {
				t.Errorf("index: got %d, want %d", index, HeaderWords)
			}
		})
	}
}

func TestOperands_StickyError(t *testing.T) {
	inst := Instruction{Opcode: OpTypeInt, Words: []uint32{7}}
	ops := inst.Operands()

	if id := ops.ID(); id != 7 {
		t.Errorf("ID: got %d, want 7", id)
	}
	if w := ops.Word(); w != 0 {
		t.Errorf("Word past end: got %d, want 0", w)
	}
	first := ops.Err()
	ops.Word()
	if !errors.Is(first, ErrTruncatedInstruction) {
		t.Fatalf("got %v, want ErrTruncatedInstruction", first)
	}
	if ops.Err() != first {
		t.Error("later reads replaced the first error")
	}
}

func TestOperands_LiteralString(t *testing.T) {
	tests := []string{"", "a", "abc", "abcd", "main", "GLSL.std.450"}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			words := append(EncodeString(s), 42)
			if got, want := len(words)-1, len(s)/4+1; got != want {
				t.Errorf("encoded words: got %d, want %d", got, want)
			}
			ops := Instruction{Opcode: OpName, Words: words}.Operands()
			if got := ops.LiteralString(); got != s {
				t.Errorf("got %q, want %q", got, s)
			}
			if next := ops.Word(); next != 42 {
				t.Errorf("word after string: got %d, want 42", next)
			}
			if err := ops.Err(); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestOperands_UnterminatedString(t *testing.T) {
	ops := Instruction{Opcode: OpString, Words: []uint32{1, 0x64636261}}.Operands()
	ops.ID()
	if s := ops.LiteralString(); s != "" {
		t.Errorf("got %q, want empty", s)
	}
	if !errors.Is(ops.Err(), ErrTruncatedInstruction) {
		t.Errorf("got %v, want ErrTruncatedInstruction", ops.Err())
	}
}
