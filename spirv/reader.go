package spirv

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"strings"
)

// Header is the fixed five-word prefix of every module.
type Header struct {
	Magic     uint32
	Version   Version
	Generator uint32
	Bound     uint32
	Schema    uint32
}

// Module is a decoded-header view over a module's words. Words includes
// the header, so instruction indices are offsets into Words.
type Module struct {
	// Name identifies the module in diagnostics (usually a file path).
	Name   string
	Header Header
	Words  []uint32
}

// Parse converts a byte stream into a Module. Big-endian streams are
// detected from the magic number and byte-swapped.
func Parse(name string, data []byte) (*Module, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of 4", ErrMalformedHeader, len(data))
	}
	if len(data) < HeaderWords*4 {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrMalformedHeader, len(data), HeaderWords*4)
	}

	var order binary.ByteOrder = binary.LittleEndian
	if binary.LittleEndian.Uint32(data) == bits.ReverseBytes32(MagicNumber) {
		order = binary.BigEndian
	}

	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = order.Uint32(data[i*4:])
	}
	return ParseWords(name, words)
}

// ParseWords validates the header of an already word-aligned module.
// The slice is retained, not copied.
func ParseWords(name string, words []uint32) (*Module, error) {
	header, err := ParseHeader(words)
	if err != nil {
		return nil, err
	}
	return &Module{Name: name, Header: header, Words: words}, nil
}

// ParseHeader decodes and validates the module header.
func ParseHeader(words []uint32) (Header, error) {
	if len(words) < HeaderWords {
		return Header{}, fmt.Errorf("%w: %d words, header needs %d", ErrMalformedHeader, len(words), HeaderWords)
	}
	h := Header{
		Magic:     words[0],
		Version:   versionFromWord(words[1]),
		Generator: words[2],
		Bound:     words[3],
		Schema:    words[4],
	}
	if h.Magic != MagicNumber {
		return Header{}, fmt.Errorf("%w: invalid magic 0x%08X", ErrMalformedHeader, h.Magic)
	}
	if h.Schema != 0 {
		return Header{}, fmt.Errorf("%w: instruction schema must be 0, got %d", ErrMalformedHeader, h.Schema)
	}
	return h, nil
}

// Decoder walks the instructions of a module in order.
type Decoder struct {
	words []uint32
	pos   int
}

// NewDecoder creates a decoder positioned at the first instruction.
func NewDecoder(m *Module) *Decoder {
	return &Decoder{words: m.Words, pos: HeaderWords}
}

// More reports whether any words remain.
func (d *Decoder) More() bool {
	return d.pos < len(d.words)
}

// Next decodes the instruction at the cursor and advances past it. The
// returned operand slice aliases the module words.
func (d *Decoder) Next() (Instruction, InstructionIndex, error) {
	index := InstructionIndex(d.pos)
	inst, err := DecodeAt(d.words, index)
	if err != nil {
		return Instruction{}, index, err
	}
	d.pos += len(inst.Words) + 1
	return inst, index, nil
}

// DecodeAt decodes the single instruction starting at index.
func DecodeAt(words []uint32, index InstructionIndex) (Instruction, error) {
	pos := int(index)
	if pos >= len(words) {
		return Instruction{}, fmt.Errorf("%w: no instruction at word %d", ErrTruncatedInstruction, pos)
	}
	first := words[pos]
	opcode := OpCode(first & 0xFFFF)
	wordCount := int(first >> 16)
	if wordCount == 0 {
		return Instruction{}, fmt.Errorf("%w: %s at word %d has word count 0", ErrTruncatedInstruction, opcode, pos)
	}
	if remaining := len(words) - pos; wordCount > remaining {
		return Instruction{}, fmt.Errorf("%w: %s at word %d needs %d words, %d remain",
			ErrTruncatedInstruction, opcode, pos, wordCount, remaining)
	}
	return Instruction{Opcode: opcode, Words: words[pos+1 : pos+wordCount]}, nil
}

// Operands returns a reader over the instruction's operand words.
func (i Instruction) Operands() *Operands {
	return &Operands{op: i.Opcode, words: i.Words}
}

// Operands reads typed operands in order. The first read past the end
// records ErrTruncatedInstruction; later reads return zero values, so
// callers check Err once after reading everything.
type Operands struct {
	op    OpCode
	words []uint32
	pos   int
	err   error
}

func (o *Operands) fail(what string) {
	if o.err == nil {
		o.err = fmt.Errorf("%w: %s is missing its %s operand", ErrTruncatedInstruction, o.op, what)
	}
}

// Word reads one literal word.
func (o *Operands) Word() uint32 {
	if o.pos >= len(o.words) {
		o.fail("literal")
		return 0
	}
	w := o.words[o.pos]
	o.pos++
	return w
}

// ID reads one identifier operand.
func (o *Operands) ID() ID {
	if o.pos >= len(o.words) {
		o.fail("id")
		return 0
	}
	id := ID(o.words[o.pos])
	o.pos++
	return id
}

// LiteralString reads a null-terminated UTF-8 string literal.
func (o *Operands) LiteralString() string {
	if o.pos >= len(o.words) {
		o.fail("string")
		return ""
	}
	s, n, ok := decodeString(o.words[o.pos:])
	if !ok {
		o.pos = len(o.words)
		o.fail("string terminator")
		return ""
	}
	o.pos += n
	return s
}

// More reports whether unread operand words remain.
func (o *Operands) More() bool {
	return o.pos < len(o.words)
}

// Rest returns all unread words.
func (o *Operands) Rest() []uint32 {
	rest := o.words[o.pos:]
	o.pos = len(o.words)
	return rest
}

// RestIDs returns all unread words as identifiers.
func (o *Operands) RestIDs() []ID {
	rest := o.Rest()
	ids := make([]ID, len(rest))
	for i, w := range rest {
		ids[i] = ID(w)
	}
	return ids
}

// Err returns the first read error, if any.
func (o *Operands) Err() error {
	return o.err
}

// decodeString unpacks a string literal from words, returning the string,
// the number of words it occupies and whether a terminator was found.
func decodeString(words []uint32) (string, int, bool) {
	var sb strings.Builder
	for i, w := range words {
		for shift := 0; shift < 32; shift += 8 {
			b := byte(w >> shift)
			if b == 0 {
				return sb.String(), i + 1, true
			}
			sb.WriteByte(b)
		}
	}
	return "", len(words), false
}
