package resolve

import (
	"fmt"

	"github.com/gogpu/spvfront/spirv"
)

// typeGroup handles the OpType* instructions this front end supports.
// Kernel-only types and forward pointers stay unimplemented.
type typeGroup struct{}

func (typeGroup) Name() string { return "types" }

func (typeGroup) Handlers() map[spirv.OpCode]Handler {
	return map[spirv.OpCode]Handler{
		spirv.OpTypeVoid:         handleTypeVoid,
		spirv.OpTypeBool:         handleTypeBool,
		spirv.OpTypeInt:          handleTypeInt,
		spirv.OpTypeFloat:        handleTypeFloat,
		spirv.OpTypeVector:       handleTypeVector,
		spirv.OpTypeMatrix:       handleTypeMatrix,
		spirv.OpTypeImage:        handleTypeImage,
		spirv.OpTypeSampler:      handleTypeSampler,
		spirv.OpTypeSampledImage: handleTypeSampledImage,
		spirv.OpTypeArray:        handleTypeArray,
		spirv.OpTypeRuntimeArray: handleTypeRuntimeArray,
		spirv.OpTypeStruct:       handleTypeStruct,
		spirv.OpTypePointer:      handleTypePointer,
		spirv.OpTypeFunction:     handleTypeFunction,
	}
}

func defineType(s *Stage, id ID, index spirv.InstructionIndex, inner TypeInner) error {
	return s.SetID(id, &Type{Defined: Defined{index}, Inner: inner})
}

// requireTypes checks that every id names a type.
func (s *Stage) requireTypes(ids ...ID) error {
	for _, id := range ids {
		if _, err := s.requireType(id); err != nil {
			return err
		}
	}
	return nil
}

func handleTypeVoid(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	ops := inst.Operands()
	result := ops.ID()
	if err := ops.Err(); err != nil {
		return err
	}
	return defineType(s, result, index, VoidType{})
}

func handleTypeBool(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	ops := inst.Operands()
	result := ops.ID()
	if err := ops.Err(); err != nil {
		return err
	}
	return defineType(s, result, index, BoolType{})
}

func handleTypeInt(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	ops := inst.Operands()
	result := ops.ID()
	t := IntType{Width: ops.Word(), Signed: ops.Word() != 0}
	if err := ops.Err(); err != nil {
		return err
	}
	switch t.Width {
	case 8, 16, 32, 64:
	default:
		return fmt.Errorf("%w: %d-bit integer", ErrUnimplementedFeature, t.Width)
	}
	return defineType(s, result, index, t)
}

func handleTypeFloat(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	ops := inst.Operands()
	result := ops.ID()
	t := FloatType{Width: ops.Word()}
	if err := ops.Err(); err != nil {
		return err
	}
	switch t.Width {
	case 16, 32, 64:
	default:
		return fmt.Errorf("%w: %d-bit float", ErrUnimplementedFeature, t.Width)
	}
	return defineType(s, result, index, t)
}

func handleTypeVector(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	ops := inst.Operands()
	result := ops.ID()
	t := VectorType{Component: ops.ID(), Count: ops.Word()}
	if err := ops.Err(); err != nil {
		return err
	}
	inner, err := s.requireType(t.Component)
	if err != nil {
		return err
	}
	switch inner.(type) {
	case BoolType, IntType, FloatType:
	default:
		return fmt.Errorf("%w: vector component %%%d is not a scalar type", ErrWrongEntityKind, t.Component)
	}
	if t.Count < 2 || t.Count > 4 {
		return fmt.Errorf("%w: %d-component vector", ErrUnimplementedFeature, t.Count)
	}
	return defineType(s, result, index, t)
}

func handleTypeMatrix(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	ops := inst.Operands()
	result := ops.ID()
	t := MatrixType{Column: ops.ID(), Columns: ops.Word()}
	if err := ops.Err(); err != nil {
		return err
	}
	inner, err := s.requireType(t.Column)
	if err != nil {
		return err
	}
	if _, ok := inner.(VectorType); !ok {
		return fmt.Errorf("%w: matrix column %%%d is not a vector type", ErrWrongEntityKind, t.Column)
	}
	return defineType(s, result, index, t)
}

func handleTypeImage(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	ops := inst.Operands()
	result := ops.ID()
	t := ImageType{
		SampledType: ops.ID(),
		Dim:         spirv.Dim(ops.Word()),
		Depth:       ops.Word(),
		Arrayed:     ops.Word() != 0,
		MS:          ops.Word() != 0,
		Sampled:     ops.Word(),
		Format:      ops.Word(),
	}
	if ops.More() {
		return fmt.Errorf("%w: access qualified images", ErrUnimplementedFeature)
	}
	if err := ops.Err(); err != nil {
		return err
	}
	if err := s.requireTypes(t.SampledType); err != nil {
		return err
	}
	return defineType(s, result, index, t)
}

func handleTypeSampler(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	ops := inst.Operands()
	result := ops.ID()
	if err := ops.Err(); err != nil {
		return err
	}
	return defineType(s, result, index, SamplerType{})
}

func handleTypeSampledImage(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	ops := inst.Operands()
	result := ops.ID()
	t := SampledImageType{Image: ops.ID()}
	if err := ops.Err(); err != nil {
		return err
	}
	inner, err := s.requireType(t.Image)
	if err != nil {
		return err
	}
	if _, ok := inner.(ImageType); !ok {
		return fmt.Errorf("%w: sampled image operand %%%d is not an image type", ErrWrongEntityKind, t.Image)
	}
	return defineType(s, result, index, t)
}

func handleTypeArray(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	ops := inst.Operands()
	result := ops.ID()
	t := ArrayType{Element: ops.ID(), Length: ops.ID()}
	if err := ops.Err(); err != nil {
		return err
	}
	if err := s.requireTypes(t.Element); err != nil {
		return err
	}
	if _, err := Get[*Constant](s.ids, t.Length); err != nil {
		return err
	}
	return defineType(s, result, index, t)
}

func handleTypeRuntimeArray(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	ops := inst.Operands()
	result := ops.ID()
	t := RuntimeArrayType{Element: ops.ID()}
	if err := ops.Err(); err != nil {
		return err
	}
	if err := s.requireTypes(t.Element); err != nil {
		return err
	}
	return defineType(s, result, index, t)
}

func handleTypeStruct(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	ops := inst.Operands()
	result := ops.ID()
	t := StructType{Members: ops.RestIDs()}
	if err := ops.Err(); err != nil {
		return err
	}
	if err := s.requireTypes(t.Members...); err != nil {
		return err
	}
	return defineType(s, result, index, t)
}

func handleTypePointer(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	ops := inst.Operands()
	result := ops.ID()
	t := PointerType{Storage: spirv.StorageClass(ops.Word()), Pointee: ops.ID()}
	if err := ops.Err(); err != nil {
		return err
	}
	if err := s.requireTypes(t.Pointee); err != nil {
		return err
	}
	return defineType(s, result, index, t)
}

func handleTypeFunction(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	ops := inst.Operands()
	result := ops.ID()
	t := FunctionType{Return: ops.ID(), Params: ops.RestIDs()}
	if err := ops.Err(); err != nil {
		return err
	}
	if err := s.requireTypes(t.Return); err != nil {
		return err
	}
	if err := s.requireTypes(t.Params...); err != nil {
		return err
	}
	return defineType(s, result, index, t)
}

// constantGroup handles non-specialization constants and OpUndef.
type constantGroup struct{}

func (constantGroup) Name() string { return "constants" }

func (constantGroup) Handlers() map[spirv.OpCode]Handler {
	return map[spirv.OpCode]Handler{
		spirv.OpConstantTrue:      handleConstant,
		spirv.OpConstantFalse:     handleConstant,
		spirv.OpConstant:          handleConstant,
		spirv.OpConstantNull:      handleConstant,
		spirv.OpConstantComposite: handleConstant,
		spirv.OpUndef:             handleUndef,
	}
}

func handleConstant(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	ops := inst.Operands()
	c := &Constant{Defined: Defined{index}, Type: ops.ID(), Op: inst.Opcode}
	result := ops.ID()
	switch inst.Opcode {
	case spirv.OpConstant:
		c.Literal = ops.Rest()
	case spirv.OpConstantComposite:
		c.Constituents = ops.RestIDs()
	}
	if err := ops.Err(); err != nil {
		return err
	}
	if inst.Opcode == spirv.OpConstant && len(c.Literal) == 0 {
		return fmt.Errorf("%w: %s is missing its value", ErrTruncatedInstruction, inst.Opcode)
	}
	inner, err := s.requireType(c.Type)
	if err != nil {
		return err
	}
	switch inst.Opcode {
	case spirv.OpConstantTrue, spirv.OpConstantFalse:
		if _, ok := inner.(BoolType); !ok {
			return fmt.Errorf("%w: %s result type %%%d is not bool", ErrWrongEntityKind, inst.Opcode, c.Type)
		}
	case spirv.OpConstantComposite:
		for _, id := range c.Constituents {
			if err := s.requireConstituent(id); err != nil {
				return err
			}
		}
	}
	return s.SetID(result, c)
}

func handleUndef(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	ops := inst.Operands()
	u := &Undef{Defined: Defined{index}, Type: ops.ID()}
	result := ops.ID()
	if err := ops.Err(); err != nil {
		return err
	}
	if err := s.requireTypes(u.Type); err != nil {
		return err
	}
	return s.SetID(result, u)
}

// requireConstituent checks a composite constant operand, which may be
// another constant or an undef.
func (s *Stage) requireConstituent(id ID) error {
	e, err := s.ids.Entity(id)
	if err != nil {
		return err
	}
	switch e.(type) {
	case *Constant, *Undef:
		return nil
	case nil:
		return fmt.Errorf("%w: %%%d", ErrUndefinedID, id)
	}
	return fmt.Errorf("%w: %%%d is a %s, want constant", ErrWrongEntityKind, id, e.Kind())
}
