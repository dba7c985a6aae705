package resolve

import (
	"github.com/gogpu/spvfront/spirv"
)

// valueOpcodes are body instructions of the form
// "result type, result, operands..." handled by defining a Value. Their
// operands may be forward references (OpPhi) and are not resolved.
var valueOpcodes = []spirv.OpCode{
	spirv.OpFunctionCall,
	spirv.OpLoad,
	spirv.OpAccessChain, spirv.OpInBoundsAccessChain, spirv.OpArrayLength,
	spirv.OpImageTexelPointer,
	spirv.OpVectorExtractDynamic, spirv.OpVectorInsertDynamic, spirv.OpVectorShuffle,
	spirv.OpCompositeConstruct, spirv.OpCompositeExtract, spirv.OpCompositeInsert,
	spirv.OpCopyObject, spirv.OpTranspose,
	spirv.OpSampledImage,
	spirv.OpImageSampleImplicitLod, spirv.OpImageSampleExplicitLod,
	spirv.OpImageSampleDrefImplicit, spirv.OpImageSampleDrefExplicit,
	spirv.OpImageSampleProjImplicit, spirv.OpImageSampleProjExplicit,
	spirv.OpImageSampleProjDrefImpl, spirv.OpImageSampleProjDrefExpl,
	spirv.OpImageFetch, spirv.OpImageGather, spirv.OpImageDrefGather, spirv.OpImageRead,
	spirv.OpImage, spirv.OpImageQuerySizeLod, spirv.OpImageQuerySize, spirv.OpImageQueryLod,
	spirv.OpImageQueryLevels, spirv.OpImageQuerySamples,
	spirv.OpConvertFToU, spirv.OpConvertFToS, spirv.OpConvertSToF, spirv.OpConvertUToF,
	spirv.OpUConvert, spirv.OpSConvert, spirv.OpFConvert, spirv.OpQuantizeToF16, spirv.OpBitcast,
	spirv.OpSNegate, spirv.OpFNegate,
	spirv.OpIAdd, spirv.OpFAdd, spirv.OpISub, spirv.OpFSub, spirv.OpIMul, spirv.OpFMul,
	spirv.OpUDiv, spirv.OpSDiv, spirv.OpFDiv, spirv.OpUMod, spirv.OpSRem, spirv.OpSMod,
	spirv.OpFRem, spirv.OpFMod,
	spirv.OpVectorTimesScalar, spirv.OpMatrixTimesScalar, spirv.OpVectorTimesMatrix,
	spirv.OpMatrixTimesVector, spirv.OpMatrixTimesMatrix, spirv.OpOuterProduct, spirv.OpDot,
	spirv.OpIAddCarry, spirv.OpISubBorrow, spirv.OpUMulExtended, spirv.OpSMulExtended,
	spirv.OpAny, spirv.OpAll, spirv.OpIsNan, spirv.OpIsInf,
	spirv.OpLogicalEqual, spirv.OpLogicalNotEqual, spirv.OpLogicalOr, spirv.OpLogicalAnd,
	spirv.OpLogicalNot, spirv.OpSelect,
	spirv.OpIEqual, spirv.OpINotEqual,
	spirv.OpUGreaterThan, spirv.OpSGreaterThan, spirv.OpUGreaterThanEqual, spirv.OpSGreaterThanEqual,
	spirv.OpULessThan, spirv.OpSLessThan, spirv.OpULessThanEqual, spirv.OpSLessThanEqual,
	spirv.OpFOrdEqual, spirv.OpFUnordEqual, spirv.OpFOrdNotEqual, spirv.OpFUnordNotEqual,
	spirv.OpFOrdLessThan, spirv.OpFUnordLessThan, spirv.OpFOrdGreaterThan, spirv.OpFUnordGreaterThan,
	spirv.OpFOrdLessThanEqual, spirv.OpFUnordLessThanEqual,
	spirv.OpFOrdGreaterThanEqual, spirv.OpFUnordGreaterThanEqual,
	spirv.OpShiftRightLogical, spirv.OpShiftRightArithmetic, spirv.OpShiftLeftLogical,
	spirv.OpBitwiseOr, spirv.OpBitwiseXor, spirv.OpBitwiseAnd, spirv.OpNot,
	spirv.OpBitFieldInsert, spirv.OpBitFieldSExtract, spirv.OpBitFieldUExtract,
	spirv.OpBitReverse, spirv.OpBitCount,
	spirv.OpDPdx, spirv.OpDPdy, spirv.OpFwidth,
	spirv.OpDPdxFine, spirv.OpDPdyFine, spirv.OpFwidthFine,
	spirv.OpDPdxCoarse, spirv.OpDPdyCoarse, spirv.OpFwidthCoarse,
	spirv.OpAtomicLoad, spirv.OpAtomicExchange, spirv.OpAtomicCompareExchange,
	spirv.OpAtomicIIncrement, spirv.OpAtomicIDecrement, spirv.OpAtomicIAdd, spirv.OpAtomicISub,
	spirv.OpAtomicSMin, spirv.OpAtomicUMin, spirv.OpAtomicSMax, spirv.OpAtomicUMax,
	spirv.OpAtomicAnd, spirv.OpAtomicOr, spirv.OpAtomicXor,
	spirv.OpPhi,
}

// effectOpcodes produce no result and need nothing recorded.
var effectOpcodes = []spirv.OpCode{
	spirv.OpNop,
	spirv.OpStore,
	spirv.OpCopyMemory,
	spirv.OpImageWrite,
	spirv.OpControlBarrier,
	spirv.OpMemoryBarrier,
	spirv.OpAtomicStore,
}

// valueGroup resolves result-producing body instructions generically.
type valueGroup struct{}

func (valueGroup) Name() string { return "values" }

func (valueGroup) Handlers() map[spirv.OpCode]Handler {
	m := make(map[spirv.OpCode]Handler, len(valueOpcodes)+len(effectOpcodes))
	for _, op := range valueOpcodes {
		m[op] = handleValue
	}
	for _, op := range effectOpcodes {
		m[op] = handleEffect
	}
	return m
}

func handleValue(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	ops := inst.Operands()
	v := &Value{Defined: Defined{index}, Type: ops.ID(), Op: inst.Opcode, Function: s.function}
	result := ops.ID()
	if err := ops.Err(); err != nil {
		return err
	}
	if _, err := s.currentFunction(inst.Opcode); err != nil {
		return err
	}
	if err := s.requireTypes(v.Type); err != nil {
		return err
	}
	return s.SetID(result, v)
}

func handleEffect(s *Stage, inst spirv.Instruction, _ spirv.InstructionIndex) error {
	if inst.Opcode == spirv.OpNop {
		return nil
	}
	_, err := s.currentFunction(inst.Opcode)
	return err
}
