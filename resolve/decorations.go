package resolve

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/spvfront/spirv"
)

// OperandForm says how a decoration's operand words are to be read.
type OperandForm uint8

const (
	OperandsLiteral OperandForm = iota // OpDecorate, OpMemberDecorate
	OperandsID                         // OpDecorateId
	OperandsString                     // OpDecorateString, OpMemberDecorateString
)

// Decoration is one (kind, operands) annotation.
type Decoration struct {
	Kind     spirv.Decoration
	Form     OperandForm
	Operands []uint32
}

// Text decodes the operands of a string-form decoration.
func (d Decoration) Text() string {
	if d.Form != OperandsString {
		return ""
	}
	return d.Strings()[0]
}

// Strings decodes every string operand of a string-form decoration.
func (d Decoration) Strings() []string {
	ops := spirv.Instruction{Words: d.Operands}.Operands()
	var out []string
	for ops.More() {
		out = append(out, ops.LiteralString())
	}
	if len(out) == 0 {
		out = append(out, "")
	}
	return out
}

func (d Decoration) String() string {
	if len(d.Operands) == 0 {
		return d.Kind.String()
	}
	var sb strings.Builder
	sb.WriteString(d.Kind.String())
	switch d.Form {
	case OperandsString:
		for _, s := range d.Strings() {
			fmt.Fprintf(&sb, " %q", s)
		}
	case OperandsID:
		for _, w := range d.Operands {
			fmt.Fprintf(&sb, " %%%d", w)
		}
	default:
		for _, w := range d.Operands {
			fmt.Fprintf(&sb, " %d", w)
		}
	}
	return sb.String()
}

// IndexedDecoration pairs a decoration with the instruction that applied it.
type IndexedDecoration struct {
	Index      spirv.InstructionIndex
	Decoration Decoration
}

// DecorationSet is the ordered list of decorations on one target.
// Duplicates are kept.
type DecorationSet []IndexedDecoration

// Has reports whether any element has the given kind.
func (ds DecorationSet) Has(kind spirv.Decoration) bool {
	_, ok := ds.Find(kind)
	return ok
}

// Find returns the first decoration of the given kind.
func (ds DecorationSet) Find(kind spirv.Decoration) (Decoration, bool) {
	for _, d := range ds {
		if d.Decoration.Kind == kind {
			return d.Decoration, true
		}
	}
	return Decoration{}, false
}

type memberKey struct {
	id     ID
	member uint32
}

// decorations holds every decoration set of a stage.
type decorations struct {
	byID     map[ID]DecorationSet
	byMember map[memberKey]DecorationSet
}

func newDecorations() decorations {
	return decorations{
		byID:     make(map[ID]DecorationSet),
		byMember: make(map[memberKey]DecorationSet),
	}
}

func (d *decorations) add(id ID, entries ...IndexedDecoration) {
	d.byID[id] = append(d.byID[id], entries...)
}

func (d *decorations) addMember(id ID, member uint32, entries ...IndexedDecoration) {
	k := memberKey{id, member}
	d.byMember[k] = append(d.byMember[k], entries...)
}

// snapshot copies the current set of id so later additions do not leak in.
func (d *decorations) snapshot(id ID) DecorationSet {
	return slices.Clone(d.byID[id])
}

// Decorations returns the decoration set of id in module order. The
// result must not be modified.
func (s *Stage) Decorations(id ID) DecorationSet {
	return s.decorations.byID[id]
}

// MemberDecorations returns the decoration set of one struct member.
func (s *Stage) MemberDecorations(id ID, member uint32) DecorationSet {
	return s.decorations.byMember[memberKey{id, member}]
}

// ForEachDecoration calls visit for every decoration on id in order,
// stopping early when visit returns false.
func (s *Stage) ForEachDecoration(id ID, visit func(IndexedDecoration) bool) {
	for _, d := range s.decorations.byID[id] {
		if !visit(d) {
			return
		}
	}
}

// HasDecoration reports whether id carries a decoration of kind.
func (s *Stage) HasDecoration(id ID, kind spirv.Decoration) bool {
	return s.Decorations(id).Has(kind)
}

// DecorationOperand returns the first operand of the first decoration of
// kind on id, e.g. the number of a Location or Binding decoration.
func (s *Stage) DecorationOperand(id ID, kind spirv.Decoration) (uint32, bool) {
	d, ok := s.Decorations(id).Find(kind)
	if !ok || len(d.Operands) == 0 {
		return 0, false
	}
	return d.Operands[0], true
}
