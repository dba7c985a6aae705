package resolve

import (
	"fmt"

	"github.com/gogpu/spvfront/spirv"
)

// headerGroup handles the module-level mode-setting instructions.
type headerGroup struct{}

func (headerGroup) Name() string { return "header" }

func (headerGroup) Handlers() map[spirv.OpCode]Handler {
	return map[spirv.OpCode]Handler{
		spirv.OpMemoryModel:     handleMemoryModel,
		spirv.OpEntryPoint:      handleEntryPoint,
		spirv.OpExecutionMode:   handleExecutionMode,
		spirv.OpExecutionModeID: handleExecutionMode,
	}
}

func handleMemoryModel(s *Stage, inst spirv.Instruction, _ spirv.InstructionIndex) error {
	ops := inst.Operands()
	addressing := spirv.AddressingModel(ops.Word())
	memory := spirv.MemoryModel(ops.Word())
	if err := ops.Err(); err != nil {
		return err
	}
	if addressing != spirv.AddressingModelLogical {
		return fmt.Errorf("%w: addressing model %s", ErrUnimplementedFeature, addressing)
	}
	if memory != spirv.MemoryModelGLSL450 && memory != spirv.MemoryModelSimple {
		return fmt.Errorf("%w: memory model %s", ErrUnimplementedFeature, memory)
	}
	s.addressing, s.memory, s.hasMemModel = addressing, memory, true
	return nil
}

func handleEntryPoint(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	ops := inst.Operands()
	ep := EntryPoint{
		Index:    index,
		Model:    spirv.ExecutionModel(ops.Word()),
		Function: ops.ID(),
		Name:     ops.LiteralString(),
	}
	ep.Interface = ops.RestIDs()
	if err := ops.Err(); err != nil {
		return err
	}
	if err := s.ids.check(ep.Function); err != nil {
		return err
	}
	for _, id := range ep.Interface {
		if err := s.ids.check(id); err != nil {
			return err
		}
	}
	s.entryPoints = append(s.entryPoints, ep)
	return nil
}

func handleExecutionMode(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	ops := inst.Operands()
	fn := ops.ID()
	mode := ExecutionMode{Index: index, Mode: spirv.ExecutionMode(ops.Word())}
	mode.Operands = ops.Rest()
	if err := ops.Err(); err != nil {
		return err
	}
	found := false
	for i := range s.entryPoints {
		if s.entryPoints[i].Function == fn {
			s.entryPoints[i].Modes = append(s.entryPoints[i].Modes, mode)
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%w: %s names %%%d", ErrEntryPointNotFound, inst.Opcode, fn)
	}
	return nil
}

// capabilityGroup handles OpCapability.
type capabilityGroup struct{}

func (capabilityGroup) Name() string { return "capabilities" }

func (capabilityGroup) Handlers() map[spirv.OpCode]Handler {
	return map[spirv.OpCode]Handler{
		spirv.OpCapability: handleCapability,
	}
}

func handleCapability(s *Stage, inst spirv.Instruction, _ spirv.InstructionIndex) error {
	ops := inst.Operands()
	c := spirv.Capability(ops.Word())
	if err := ops.Err(); err != nil {
		return err
	}
	return s.capabilities.Enable(c)
}

// extensionGroup handles extensions and extended instruction sets.
type extensionGroup struct{}

func (extensionGroup) Name() string { return "extensions" }

func (extensionGroup) Handlers() map[spirv.OpCode]Handler {
	return map[spirv.OpCode]Handler{
		spirv.OpExtension:     handleExtension,
		spirv.OpExtInstImport: handleExtInstImport,
		spirv.OpExtInst:       handleExtInst,
	}
}

func handleExtension(_ *Stage, inst spirv.Instruction, _ spirv.InstructionIndex) error {
	ops := inst.Operands()
	name := ops.LiteralString()
	if err := ops.Err(); err != nil {
		return err
	}
	return fmt.Errorf("%w: %s", ErrUnimplementedExtension, name)
}

func handleExtInstImport(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	ops := inst.Operands()
	result := ops.ID()
	name := ops.LiteralString()
	if err := ops.Err(); err != nil {
		return err
	}
	if s.ids.IsDefinedAt(result, index) {
		return nil
	}
	kind, ok := lookupExtInstSet(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownExtensionInstructionSet, name)
	}
	return s.SetID(result, &ExtInstSet{Defined: Defined{index}, Set: kind, Name: name})
}

func handleExtInst(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	ops := inst.Operands()
	resultType := ops.ID()
	result := ops.ID()
	setID := ops.ID()
	number := ops.Word()
	if err := ops.Err(); err != nil {
		return err
	}
	set, err := Get[*ExtInstSet](s.ids, setID)
	if err != nil {
		return err
	}
	if set.Set != ExtInstSetGLSLStd450 || !spirv.GLSLInstruction(number).Valid() {
		return fmt.Errorf("%w: %s 0x%X", ErrUnknownExtensionInstruction, set.Name, number)
	}
	if _, err := s.requireType(resultType); err != nil {
		return err
	}
	return s.SetID(result, &Value{
		Defined:        Defined{index},
		Type:           resultType,
		Op:             inst.Opcode,
		Function:       s.function,
		ExtSet:         setID,
		ExtInstruction: number,
	})
}
