package spirv

import (
	"encoding/binary"
	"math"
)

// Instruction is one decoded or to-be-encoded instruction. Words holds
// the operands only; the opcode/word-count word is implied.
type Instruction struct {
	Opcode OpCode
	Words  []uint32 // result type ID, result ID, operands
}

// WordCount is the encoded length including the leading opcode word.
func (i Instruction) WordCount() int {
	return len(i.Words) + 1
}

// InstructionBuilder builds SPIR-V instructions.
type InstructionBuilder struct {
	words []uint32
}

// NewInstructionBuilder creates a new instruction builder.
func NewInstructionBuilder() *InstructionBuilder {
	return &InstructionBuilder{
		words: make([]uint32, 0, 8),
	}
}

// AddWord adds a word to the instruction.
func (b *InstructionBuilder) AddWord(word uint32) {
	b.words = append(b.words, word)
}

// AddID adds an identifier operand.
func (b *InstructionBuilder) AddID(id ID) {
	b.words = append(b.words, uint32(id))
}

// AddString adds a null-terminated UTF-8 string.
func (b *InstructionBuilder) AddString(s string) {
	b.words = append(b.words, EncodeString(s)...)
}

// Build builds the instruction with the given opcode.
func (b *InstructionBuilder) Build(opcode OpCode) Instruction {
	return Instruction{
		Opcode: opcode,
		Words:  b.words,
	}
}

// Encode encodes the instruction to binary.
func (i Instruction) Encode() []uint32 {
	wordCount := uint32(i.WordCount())
	result := make([]uint32, 0, wordCount)
	result = append(result, (wordCount<<16)|uint32(i.Opcode))
	result = append(result, i.Words...)
	return result
}

// EncodeString packs s as a string literal: UTF-8 bytes, null
// terminated, zero padded to a word boundary, first byte lowest.
func EncodeString(s string) []uint32 {
	n := len(s)/4 + 1
	words := make([]uint32, n)
	for i := 0; i < len(s); i++ {
		words[i/4] |= uint32(s[i]) << (8 * (i % 4))
	}
	return words
}

// ModuleBuilder builds complete SPIR-V modules. Instructions keep the
// order they were added within each logical section.
type ModuleBuilder struct {
	version   Version
	generator uint32
	bound     uint32 // zero means nextID
	schema    uint32

	capabilities    []Instruction
	extensions      []Instruction
	extInstImports  []Instruction
	memoryModel     *Instruction
	entryPoints     []Instruction
	executionModes  []Instruction
	debugSources    []Instruction // OpString, OpSource*
	debugNames      []Instruction // OpName, OpMemberName
	moduleProcessed []Instruction
	annotations     []Instruction // OpDecorate*, OpDecorationGroup, OpGroup*Decorate
	types           []Instruction // OpType*, OpConstant*, OpUndef
	globalVars      []Instruction
	functions       []Instruction

	nextID ID
}

// NewModuleBuilder creates a new SPIR-V module builder.
func NewModuleBuilder(version Version) *ModuleBuilder {
	return &ModuleBuilder{
		version:   version,
		generator: GeneratorID,
		nextID:    1,
	}
}

// AllocID allocates a new SPIR-V ID.
func (b *ModuleBuilder) AllocID() ID {
	id := b.nextID
	b.nextID++
	return id
}

// SetBound overrides the header bound. Used to produce modules whose
// identifiers fall outside the declared range.
func (b *ModuleBuilder) SetBound(bound uint32) {
	b.bound = bound
}

// SetSchema overrides the reserved schema word.
func (b *ModuleBuilder) SetSchema(schema uint32) {
	b.schema = schema
}

func emit(section *[]Instruction, opcode OpCode, words ...uint32) {
	*section = append(*section, Instruction{Opcode: opcode, Words: words})
}

func idWords(ids []ID) []uint32 {
	words := make([]uint32, len(ids))
	for i, id := range ids {
		words[i] = uint32(id)
	}
	return words
}

// AddCapability adds a capability.
func (b *ModuleBuilder) AddCapability(capability Capability) {
	emit(&b.capabilities, OpCapability, uint32(capability))
}

// AddExtension adds an extension.
func (b *ModuleBuilder) AddExtension(name string) {
	emit(&b.extensions, OpExtension, EncodeString(name)...)
}

// AddExtInstImport imports an extended instruction set.
func (b *ModuleBuilder) AddExtInstImport(name string) ID {
	id := b.AllocID()
	emit(&b.extInstImports, OpExtInstImport, append([]uint32{uint32(id)}, EncodeString(name)...)...)
	return id
}

// SetMemoryModel sets the memory model.
func (b *ModuleBuilder) SetMemoryModel(addressing AddressingModel, memory MemoryModel) {
	inst := Instruction{Opcode: OpMemoryModel, Words: []uint32{uint32(addressing), uint32(memory)}}
	b.memoryModel = &inst
}

// AddEntryPoint adds an entry point.
func (b *ModuleBuilder) AddEntryPoint(execModel ExecutionModel, funcID ID, name string, interfaces ...ID) {
	builder := NewInstructionBuilder()
	builder.AddWord(uint32(execModel))
	builder.AddID(funcID)
	builder.AddString(name)
	for _, iface := range interfaces {
		builder.AddID(iface)
	}
	b.entryPoints = append(b.entryPoints, builder.Build(OpEntryPoint))
}

// AddExecutionMode adds an execution mode.
func (b *ModuleBuilder) AddExecutionMode(entryPoint ID, mode ExecutionMode, params ...uint32) {
	emit(&b.executionModes, OpExecutionMode, append([]uint32{uint32(entryPoint), uint32(mode)}, params...)...)
}

// AddString adds a debug string.
func (b *ModuleBuilder) AddString(text string) ID {
	id := b.AllocID()
	emit(&b.debugSources, OpString, append([]uint32{uint32(id)}, EncodeString(text)...)...)
	return id
}

// AddSource adds OpSource. file may be zero.
func (b *ModuleBuilder) AddSource(lang SourceLanguage, version uint32, file ID, text string) {
	builder := NewInstructionBuilder()
	builder.AddWord(uint32(lang))
	builder.AddWord(version)
	if file != 0 || text != "" {
		builder.AddID(file)
	}
	if text != "" {
		builder.AddString(text)
	}
	b.debugSources = append(b.debugSources, builder.Build(OpSource))
}

// AddSourceContinued adds OpSourceContinued.
func (b *ModuleBuilder) AddSourceContinued(text string) {
	emit(&b.debugSources, OpSourceContinued, EncodeString(text)...)
}

// AddSourceExtension adds OpSourceExtension.
func (b *ModuleBuilder) AddSourceExtension(name string) {
	emit(&b.debugSources, OpSourceExtension, EncodeString(name)...)
}

// AddName adds a debug name.
func (b *ModuleBuilder) AddName(id ID, name string) {
	emit(&b.debugNames, OpName, append([]uint32{uint32(id)}, EncodeString(name)...)...)
}

// AddMemberName adds a debug member name.
func (b *ModuleBuilder) AddMemberName(structID ID, member uint32, name string) {
	emit(&b.debugNames, OpMemberName, append([]uint32{uint32(structID), member}, EncodeString(name)...)...)
}

// AddModuleProcessed adds OpModuleProcessed.
func (b *ModuleBuilder) AddModuleProcessed(process string) {
	emit(&b.moduleProcessed, OpModuleProcessed, EncodeString(process)...)
}

// AddDecorate adds a decoration.
func (b *ModuleBuilder) AddDecorate(id ID, decoration Decoration, params ...uint32) {
	emit(&b.annotations, OpDecorate, append([]uint32{uint32(id), uint32(decoration)}, params...)...)
}

// AddDecorateString adds OpDecorateString with a single string operand.
func (b *ModuleBuilder) AddDecorateString(id ID, decoration Decoration, value string) {
	emit(&b.annotations, OpDecorateString, append([]uint32{uint32(id), uint32(decoration)}, EncodeString(value)...)...)
}

// AddMemberDecorate adds a member decoration.
func (b *ModuleBuilder) AddMemberDecorate(structID ID, member uint32, decoration Decoration, params ...uint32) {
	emit(&b.annotations, OpMemberDecorate, append([]uint32{uint32(structID), member, uint32(decoration)}, params...)...)
}

// AddDecorationGroup adds OpDecorationGroup for a previously allocated id.
// Decorations on group must be added before this call to be captured.
func (b *ModuleBuilder) AddDecorationGroup(group ID) {
	emit(&b.annotations, OpDecorationGroup, uint32(group))
}

// AddGroupDecorate applies group to targets.
func (b *ModuleBuilder) AddGroupDecorate(group ID, targets ...ID) {
	emit(&b.annotations, OpGroupDecorate, append([]uint32{uint32(group)}, idWords(targets)...)...)
}

// GroupMember names one struct member for AddGroupMemberDecorate.
type GroupMember struct {
	Struct ID
	Member uint32
}

// AddGroupMemberDecorate applies group to struct members.
func (b *ModuleBuilder) AddGroupMemberDecorate(group ID, targets ...GroupMember) {
	words := []uint32{uint32(group)}
	for _, t := range targets {
		words = append(words, uint32(t.Struct), t.Member)
	}
	emit(&b.annotations, OpGroupMemberDecorate, words...)
}

// AddTypeVoid adds OpTypeVoid.
func (b *ModuleBuilder) AddTypeVoid() ID {
	id := b.AllocID()
	emit(&b.types, OpTypeVoid, uint32(id))
	return id
}

// AddTypeBool adds OpTypeBool.
func (b *ModuleBuilder) AddTypeBool() ID {
	id := b.AllocID()
	emit(&b.types, OpTypeBool, uint32(id))
	return id
}

// AddTypeFloat adds OpTypeFloat.
func (b *ModuleBuilder) AddTypeFloat(width uint32) ID {
	id := b.AllocID()
	emit(&b.types, OpTypeFloat, uint32(id), width)
	return id
}

// AddTypeInt adds OpTypeInt.
func (b *ModuleBuilder) AddTypeInt(width uint32, signed bool) ID {
	id := b.AllocID()
	var signedness uint32
	if signed {
		signedness = 1
	}
	emit(&b.types, OpTypeInt, uint32(id), width, signedness)
	return id
}

// AddTypeVector adds OpTypeVector.
func (b *ModuleBuilder) AddTypeVector(componentType ID, count uint32) ID {
	id := b.AllocID()
	emit(&b.types, OpTypeVector, uint32(id), uint32(componentType), count)
	return id
}

// AddTypeMatrix adds OpTypeMatrix.
func (b *ModuleBuilder) AddTypeMatrix(columnType ID, columnCount uint32) ID {
	id := b.AllocID()
	emit(&b.types, OpTypeMatrix, uint32(id), uint32(columnType), columnCount)
	return id
}

// AddTypeArray adds OpTypeArray. length is a constant id.
func (b *ModuleBuilder) AddTypeArray(elementType, length ID) ID {
	id := b.AllocID()
	emit(&b.types, OpTypeArray, uint32(id), uint32(elementType), uint32(length))
	return id
}

// AddTypeRuntimeArray adds OpTypeRuntimeArray.
func (b *ModuleBuilder) AddTypeRuntimeArray(elementType ID) ID {
	id := b.AllocID()
	emit(&b.types, OpTypeRuntimeArray, uint32(id), uint32(elementType))
	return id
}

// AddTypePointer adds OpTypePointer.
func (b *ModuleBuilder) AddTypePointer(storageClass StorageClass, baseType ID) ID {
	id := b.AllocID()
	emit(&b.types, OpTypePointer, uint32(id), uint32(storageClass), uint32(baseType))
	return id
}

// AddTypeFunction adds OpTypeFunction.
func (b *ModuleBuilder) AddTypeFunction(returnType ID, paramTypes ...ID) ID {
	id := b.AllocID()
	emit(&b.types, OpTypeFunction, append([]uint32{uint32(id), uint32(returnType)}, idWords(paramTypes)...)...)
	return id
}

// AddTypeStruct adds OpTypeStruct.
func (b *ModuleBuilder) AddTypeStruct(memberTypes ...ID) ID {
	id := b.AllocID()
	emit(&b.types, OpTypeStruct, append([]uint32{uint32(id)}, idWords(memberTypes)...)...)
	return id
}

// ImageType describes the operands of OpTypeImage.
type ImageType struct {
	SampledType ID
	Dim         Dim
	Depth       uint32
	Arrayed     bool
	MS          bool
	Sampled     uint32
	Format      uint32
}

// AddTypeImage adds OpTypeImage.
func (b *ModuleBuilder) AddTypeImage(img ImageType) ID {
	id := b.AllocID()
	emit(&b.types, OpTypeImage, uint32(id), uint32(img.SampledType), uint32(img.Dim),
		img.Depth, boolWord(img.Arrayed), boolWord(img.MS), img.Sampled, img.Format)
	return id
}

// AddTypeSampler adds OpTypeSampler.
func (b *ModuleBuilder) AddTypeSampler() ID {
	id := b.AllocID()
	emit(&b.types, OpTypeSampler, uint32(id))
	return id
}

// AddTypeSampledImage adds OpTypeSampledImage.
func (b *ModuleBuilder) AddTypeSampledImage(imageType ID) ID {
	id := b.AllocID()
	emit(&b.types, OpTypeSampledImage, uint32(id), uint32(imageType))
	return id
}

func boolWord(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}

// AddConstant adds OpConstant.
func (b *ModuleBuilder) AddConstant(typeID ID, values ...uint32) ID {
	id := b.AllocID()
	emit(&b.types, OpConstant, append([]uint32{uint32(typeID), uint32(id)}, values...)...)
	return id
}

// AddConstantFloat32 adds a 32-bit float constant.
func (b *ModuleBuilder) AddConstantFloat32(typeID ID, value float32) ID {
	return b.AddConstant(typeID, math.Float32bits(value))
}

// AddConstantFloat64 adds a 64-bit float constant.
func (b *ModuleBuilder) AddConstantFloat64(typeID ID, value float64) ID {
	bits := math.Float64bits(value)
	return b.AddConstant(typeID, uint32(bits), uint32(bits>>32))
}

// AddConstantBool adds OpConstantTrue or OpConstantFalse.
func (b *ModuleBuilder) AddConstantBool(typeID ID, value bool) ID {
	id := b.AllocID()
	op := OpConstantFalse
	if value {
		op = OpConstantTrue
	}
	emit(&b.types, op, uint32(typeID), uint32(id))
	return id
}

// AddConstantNull adds OpConstantNull.
func (b *ModuleBuilder) AddConstantNull(typeID ID) ID {
	id := b.AllocID()
	emit(&b.types, OpConstantNull, uint32(typeID), uint32(id))
	return id
}

// AddConstantComposite adds OpConstantComposite.
func (b *ModuleBuilder) AddConstantComposite(typeID ID, constituents ...ID) ID {
	id := b.AllocID()
	emit(&b.types, OpConstantComposite, append([]uint32{uint32(typeID), uint32(id)}, idWords(constituents)...)...)
	return id
}

// AddUndef adds a module-level OpUndef.
func (b *ModuleBuilder) AddUndef(typeID ID) ID {
	id := b.AllocID()
	emit(&b.types, OpUndef, uint32(typeID), uint32(id))
	return id
}

// AddVariable adds a global OpVariable.
func (b *ModuleBuilder) AddVariable(pointerType ID, storageClass StorageClass) ID {
	id := b.AllocID()
	emit(&b.globalVars, OpVariable, uint32(pointerType), uint32(id), uint32(storageClass))
	return id
}

// AddVariableWithInit adds a global OpVariable with initializer.
func (b *ModuleBuilder) AddVariableWithInit(pointerType ID, storageClass StorageClass, initID ID) ID {
	id := b.AllocID()
	emit(&b.globalVars, OpVariable, uint32(pointerType), uint32(id), uint32(storageClass), uint32(initID))
	return id
}

// AddLocalVariable adds a function-scope OpVariable.
func (b *ModuleBuilder) AddLocalVariable(pointerType ID) ID {
	id := b.AllocID()
	emit(&b.functions, OpVariable, uint32(pointerType), uint32(id), uint32(StorageClassFunction))
	return id
}

// AddFunction adds a function definition.
func (b *ModuleBuilder) AddFunction(funcType, returnType ID, control FunctionControl) ID {
	id := b.AllocID()
	emit(&b.functions, OpFunction, uint32(returnType), uint32(id), uint32(control), uint32(funcType))
	return id
}

// AddFunctionParameter adds a function parameter.
func (b *ModuleBuilder) AddFunctionParameter(typeID ID) ID {
	id := b.AllocID()
	emit(&b.functions, OpFunctionParameter, uint32(typeID), uint32(id))
	return id
}

// AddLabel adds a label.
func (b *ModuleBuilder) AddLabel() ID {
	id := b.AllocID()
	emit(&b.functions, OpLabel, uint32(id))
	return id
}

// AddLine adds OpLine inside the function section.
func (b *ModuleBuilder) AddLine(file ID, line, column uint32) {
	emit(&b.functions, OpLine, uint32(file), line, column)
}

// AddNoLine adds OpNoLine inside the function section.
func (b *ModuleBuilder) AddNoLine() {
	emit(&b.functions, OpNoLine)
}

// AddReturn adds OpReturn.
func (b *ModuleBuilder) AddReturn() {
	emit(&b.functions, OpReturn)
}

// AddReturnValue adds OpReturnValue.
func (b *ModuleBuilder) AddReturnValue(valueID ID) {
	emit(&b.functions, OpReturnValue, uint32(valueID))
}

// AddFunctionEnd adds OpFunctionEnd.
func (b *ModuleBuilder) AddFunctionEnd() {
	emit(&b.functions, OpFunctionEnd)
}

// AddBinaryOp adds a binary operation instruction.
func (b *ModuleBuilder) AddBinaryOp(opcode OpCode, resultType, left, right ID) ID {
	resultID := b.AllocID()
	emit(&b.functions, opcode, uint32(resultType), uint32(resultID), uint32(left), uint32(right))
	return resultID
}

// AddUnaryOp adds a unary operation instruction.
func (b *ModuleBuilder) AddUnaryOp(opcode OpCode, resultType, operand ID) ID {
	resultID := b.AllocID()
	emit(&b.functions, opcode, uint32(resultType), uint32(resultID), uint32(operand))
	return resultID
}

// AddLoad adds OpLoad.
func (b *ModuleBuilder) AddLoad(resultType, pointer ID) ID {
	return b.AddUnaryOp(OpLoad, resultType, pointer)
}

// AddStore adds OpStore.
func (b *ModuleBuilder) AddStore(pointer, value ID) {
	emit(&b.functions, OpStore, uint32(pointer), uint32(value))
}

// AddAccessChain adds OpAccessChain.
func (b *ModuleBuilder) AddAccessChain(resultType, base ID, indices ...ID) ID {
	resultID := b.AllocID()
	emit(&b.functions, OpAccessChain, append([]uint32{uint32(resultType), uint32(resultID), uint32(base)}, idWords(indices)...)...)
	return resultID
}

// AddCompositeConstruct adds OpCompositeConstruct.
func (b *ModuleBuilder) AddCompositeConstruct(resultType ID, constituents ...ID) ID {
	resultID := b.AllocID()
	emit(&b.functions, OpCompositeConstruct, append([]uint32{uint32(resultType), uint32(resultID)}, idWords(constituents)...)...)
	return resultID
}

// AddSelectionMerge adds OpSelectionMerge.
func (b *ModuleBuilder) AddSelectionMerge(mergeLabel ID, control SelectionControl) {
	emit(&b.functions, OpSelectionMerge, uint32(mergeLabel), uint32(control))
}

// AddLoopMerge adds OpLoopMerge.
func (b *ModuleBuilder) AddLoopMerge(mergeLabel, continueLabel ID, control LoopControl) {
	emit(&b.functions, OpLoopMerge, uint32(mergeLabel), uint32(continueLabel), uint32(control))
}

// AddBranch adds OpBranch.
func (b *ModuleBuilder) AddBranch(target ID) {
	emit(&b.functions, OpBranch, uint32(target))
}

// AddBranchConditional adds OpBranchConditional.
func (b *ModuleBuilder) AddBranchConditional(condition, trueLabel, falseLabel ID) {
	emit(&b.functions, OpBranchConditional, uint32(condition), uint32(trueLabel), uint32(falseLabel))
}

// AddKill adds OpKill (fragment shader discard).
func (b *ModuleBuilder) AddKill() {
	emit(&b.functions, OpKill)
}

// AddUnreachable adds OpUnreachable.
func (b *ModuleBuilder) AddUnreachable() {
	emit(&b.functions, OpUnreachable)
}

// AddExtInst adds OpExtInst (extended instruction).
func (b *ModuleBuilder) AddExtInst(resultType, extSet ID, instruction uint32, operands ...ID) ID {
	resultID := b.AllocID()
	emit(&b.functions, OpExtInst, append([]uint32{uint32(resultType), uint32(resultID), uint32(extSet), instruction}, idWords(operands)...)...)
	return resultID
}

// AddRaw appends an arbitrary instruction to the function section.
func (b *ModuleBuilder) AddRaw(opcode OpCode, words ...uint32) {
	emit(&b.functions, opcode, words...)
}

// AddRawGlobal appends an arbitrary instruction to the type section.
func (b *ModuleBuilder) AddRawGlobal(opcode OpCode, words ...uint32) {
	emit(&b.types, opcode, words...)
}

func (b *ModuleBuilder) sections() [][]Instruction {
	var memoryModel []Instruction
	if b.memoryModel != nil {
		memoryModel = []Instruction{*b.memoryModel}
	}
	return [][]Instruction{
		b.capabilities,
		b.extensions,
		b.extInstImports,
		memoryModel,
		b.entryPoints,
		b.executionModes,
		b.debugSources,
		b.debugNames,
		b.moduleProcessed,
		b.annotations,
		b.types,
		b.globalVars,
		b.functions,
	}
}

// Words generates the module as words, header included.
func (b *ModuleBuilder) Words() []uint32 {
	bound := b.bound
	if bound == 0 {
		bound = uint32(b.nextID)
	}

	total := HeaderWords
	for _, section := range b.sections() {
		total += countWords(section)
	}

	words := make([]uint32, 0, total)
	words = append(words, MagicNumber, versionToWord(b.version), b.generator, bound, b.schema)
	for _, section := range b.sections() {
		for _, inst := range section {
			words = append(words, inst.Encode()...)
		}
	}
	return words
}

// Build generates the final little-endian SPIR-V binary.
func (b *ModuleBuilder) Build() []byte {
	words := b.Words()
	buffer := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(buffer[i*4:], w)
	}
	return buffer
}

// countWords counts total words in instructions.
func countWords(instructions []Instruction) int {
	count := 0
	for _, inst := range instructions {
		count += inst.WordCount()
	}
	return count
}
