package resolve

import (
	"github.com/gogpu/spvfront/spirv"
)

// annotationGroup handles decorations and decoration groups.
type annotationGroup struct{}

func (annotationGroup) Name() string { return "annotations" }

func (annotationGroup) Handlers() map[spirv.OpCode]Handler {
	return map[spirv.OpCode]Handler{
		spirv.OpDecorate:             decorateHandler(OperandsLiteral),
		spirv.OpDecorateID:           decorateHandler(OperandsID),
		spirv.OpDecorateString:       decorateHandler(OperandsString),
		spirv.OpMemberDecorate:       memberDecorateHandler(OperandsLiteral),
		spirv.OpMemberDecorateString: memberDecorateHandler(OperandsString),
		spirv.OpDecorationGroup:      handleDecorationGroup,
		spirv.OpGroupDecorate:        handleGroupDecorate,
		spirv.OpGroupMemberDecorate:  handleGroupMemberDecorate,
	}
}

func decorateHandler(form OperandForm) Handler {
	return func(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
		ops := inst.Operands()
		target := ops.ID()
		d := Decoration{Kind: spirv.Decoration(ops.Word()), Form: form}
		d.Operands = ops.Rest()
		if err := ops.Err(); err != nil {
			return err
		}
		if err := s.ids.check(target); err != nil {
			return err
		}
		s.decorations.add(target, IndexedDecoration{Index: index, Decoration: d})
		return nil
	}
}

func memberDecorateHandler(form OperandForm) Handler {
	return func(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
		ops := inst.Operands()
		target := ops.ID()
		member := ops.Word()
		d := Decoration{Kind: spirv.Decoration(ops.Word()), Form: form}
		d.Operands = ops.Rest()
		if err := ops.Err(); err != nil {
			return err
		}
		if err := s.ids.check(target); err != nil {
			return err
		}
		s.decorations.addMember(target, member, IndexedDecoration{Index: index, Decoration: d})
		return nil
	}
}

// handleDecorationGroup captures the decorations recorded so far for the
// group id. Decorations applied to the group id afterwards are not part
// of the group.
func handleDecorationGroup(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	ops := inst.Operands()
	result := ops.ID()
	if err := ops.Err(); err != nil {
		return err
	}
	if s.ids.IsDefinedAt(result, index) {
		return nil
	}
	return s.SetID(result, &DecorationGroup{
		Defined:     Defined{index},
		Decorations: s.decorations.snapshot(result),
	})
}

func handleGroupDecorate(s *Stage, inst spirv.Instruction, _ spirv.InstructionIndex) error {
	ops := inst.Operands()
	groupID := ops.ID()
	targets := ops.RestIDs()
	if err := ops.Err(); err != nil {
		return err
	}
	group, err := Get[*DecorationGroup](s.ids, groupID)
	if err != nil {
		return err
	}
	for _, target := range targets {
		if err := s.ids.check(target); err != nil {
			return err
		}
	}
	for _, target := range targets {
		s.decorations.add(target, group.Decorations...)
	}
	return nil
}

func handleGroupMemberDecorate(s *Stage, inst spirv.Instruction, _ spirv.InstructionIndex) error {
	ops := inst.Operands()
	groupID := ops.ID()
	var targets []memberKey
	for ops.More() {
		targets = append(targets, memberKey{id: ops.ID(), member: ops.Word()})
	}
	if err := ops.Err(); err != nil {
		return err
	}
	group, err := Get[*DecorationGroup](s.ids, groupID)
	if err != nil {
		return err
	}
	for _, t := range targets {
		if err := s.ids.check(t.id); err != nil {
			return err
		}
	}
	for _, t := range targets {
		s.decorations.addMember(t.id, t.member, group.Decorations...)
	}
	return nil
}
