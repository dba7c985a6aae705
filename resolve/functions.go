package resolve

import (
	"fmt"

	"github.com/gogpu/spvfront/spirv"
)

// functionGroup handles function structure: definitions, parameters,
// variables, labels, merges and block terminators.
type functionGroup struct{}

func (functionGroup) Name() string { return "functions" }

func (functionGroup) Handlers() map[spirv.OpCode]Handler {
	return map[spirv.OpCode]Handler{
		spirv.OpFunction:          handleFunction,
		spirv.OpFunctionParameter: handleFunctionParameter,
		spirv.OpFunctionEnd:       handleFunctionEnd,
		spirv.OpVariable:          handleVariable,
		spirv.OpLabel:             handleLabel,
		spirv.OpSelectionMerge:    handleMerge,
		spirv.OpLoopMerge:         handleMerge,
		spirv.OpBranch:            handleTerminator,
		spirv.OpBranchConditional: handleTerminator,
		spirv.OpSwitch:            handleTerminator,
		spirv.OpReturn:            handleTerminator,
		spirv.OpReturnValue:       handleTerminator,
		spirv.OpKill:              handleTerminator,
		spirv.OpUnreachable:       handleTerminator,
	}
}

func handleFunction(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	ops := inst.Operands()
	f := &Function{Defined: Defined{index}, Return: ops.ID()}
	result := ops.ID()
	f.Control = spirv.FunctionControl(ops.Word())
	f.Type = ops.ID()
	if err := ops.Err(); err != nil {
		return err
	}
	if s.ids.IsDefinedAt(result, index) {
		s.function = result
		return nil
	}
	if s.function != 0 {
		return fmt.Errorf("%w: %%%d opened inside function %%%d", ErrUnimplementedFeature, result, s.function)
	}
	if err := s.requireTypes(f.Return); err != nil {
		return err
	}
	ft, err := Get[*Type](s.ids, f.Type)
	if err != nil {
		return err
	}
	if _, ok := ft.Inner.(FunctionType); !ok {
		return fmt.Errorf("%w: %%%d is not a function type", ErrWrongEntityKind, f.Type)
	}
	if err := s.SetID(result, f); err != nil {
		return err
	}
	s.function = result
	return nil
}

// currentFunction returns the function being defined.
func (s *Stage) currentFunction(op spirv.OpCode) (*Function, error) {
	if s.function == 0 {
		return nil, fmt.Errorf("%w: %s outside a function", ErrUnimplementedFeature, op)
	}
	return Get[*Function](s.ids, s.function)
}

func handleFunctionParameter(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	ops := inst.Operands()
	p := &FunctionParameter{Defined: Defined{index}, Type: ops.ID(), Function: s.function}
	result := ops.ID()
	if err := ops.Err(); err != nil {
		return err
	}
	f, err := s.currentFunction(inst.Opcode)
	if err != nil {
		return err
	}
	if err := s.requireTypes(p.Type); err != nil {
		return err
	}
	if s.ids.IsDefinedAt(result, index) {
		return nil
	}
	if err := s.SetID(result, p); err != nil {
		return err
	}
	f.Params = append(f.Params, result)
	return nil
}

func handleFunctionEnd(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	f, err := s.currentFunction(inst.Opcode)
	if err != nil {
		return err
	}
	f.End = index
	s.function = 0
	s.loc.reset()
	return nil
}

func handleVariable(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	ops := inst.Operands()
	v := &Variable{Defined: Defined{index}, Type: ops.ID(), Function: s.function}
	result := ops.ID()
	v.Storage = spirv.StorageClass(ops.Word())
	if ops.More() {
		v.Initializer = ops.ID()
	}
	if err := ops.Err(); err != nil {
		return err
	}
	inner, err := s.requireType(v.Type)
	if err != nil {
		return err
	}
	if _, ok := inner.(PointerType); !ok {
		return fmt.Errorf("%w: variable type %%%d is not a pointer type", ErrWrongEntityKind, v.Type)
	}
	if (v.Storage == spirv.StorageClassFunction) != (s.function != 0) {
		return fmt.Errorf("%w: %s variable %%%d declared %s", ErrUnimplementedFeature,
			v.Storage, result, scopeName(s.function))
	}
	if v.Initializer != 0 {
		if err := s.ids.check(v.Initializer); err != nil {
			return err
		}
	}
	return s.SetID(result, v)
}

func scopeName(function ID) string {
	if function == 0 {
		return "at module scope"
	}
	return "inside a function"
}

func handleLabel(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	ops := inst.Operands()
	result := ops.ID()
	if err := ops.Err(); err != nil {
		return err
	}
	if _, err := s.currentFunction(inst.Opcode); err != nil {
		return err
	}
	return s.SetID(result, &Label{Defined: Defined{index}, Function: s.function})
}

// handleMerge accepts structured control flow declarations; their label
// operands are forward references and are not resolved here.
func handleMerge(s *Stage, inst spirv.Instruction, _ spirv.InstructionIndex) error {
	ops := inst.Operands()
	ops.ID()
	if inst.Opcode == spirv.OpLoopMerge {
		ops.ID()
	}
	ops.Word()
	if err := ops.Err(); err != nil {
		return err
	}
	_, err := s.currentFunction(inst.Opcode)
	return err
}

// handleTerminator ends a basic block, which also ends any OpLine range.
func handleTerminator(s *Stage, inst spirv.Instruction, _ spirv.InstructionIndex) error {
	if _, err := s.currentFunction(inst.Opcode); err != nil {
		return err
	}
	if want := terminatorOperands[inst.Opcode]; len(inst.Words) < want {
		return fmt.Errorf("%w: %s needs %d operands, has %d", ErrTruncatedInstruction, inst.Opcode, want, len(inst.Words))
	}
	s.loc.reset()
	return nil
}

var terminatorOperands = map[spirv.OpCode]int{
	spirv.OpBranch:            1,
	spirv.OpBranchConditional: 3,
	spirv.OpSwitch:            2,
	spirv.OpReturnValue:       1,
}
