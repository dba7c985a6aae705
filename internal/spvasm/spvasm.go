// Package spvasm prints SPIR-V modules in the .spvasm text format.
package spvasm

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gogpu/spvfront/spirv"
)

// operand is the kind of one operand slot in an instruction layout.
type operand uint8

const (
	resultType operand = iota
	result
	id
	ids // every remaining word as an id
	literal
	literals // every remaining word as a literal
	str
	strs // every remaining word as strings
	capability
	executionModel
	executionMode
	addressingModel
	memoryModel
	storageClass
	dim
	sourceLanguage
	decoration     // decoration followed by its literal operands
	decorationIDs  // decoration followed by id operands
	decorationStrs // decoration followed by string operands
	extInst        // instruction number within the preceding set
	memberPairs    // (id, literal) pairs
	switchTargets  // (literal, id) pairs
)

// layouts describes the operands of every opcode that is not a plain
// "result type, result, ids..." body instruction.
var layouts = map[spirv.OpCode][]operand{
	spirv.OpNop:                   {},
	spirv.OpUndef:                 {resultType, result},
	spirv.OpSourceContinued:       {str},
	spirv.OpSource:                {sourceLanguage, literal, id, str},
	spirv.OpSourceExtension:       {str},
	spirv.OpName:                  {id, str},
	spirv.OpMemberName:            {id, literal, str},
	spirv.OpString:                {result, str},
	spirv.OpLine:                  {id, literal, literal},
	spirv.OpNoLine:                {},
	spirv.OpModuleProcessed:       {str},
	spirv.OpExtension:             {str},
	spirv.OpExtInstImport:         {result, str},
	spirv.OpExtInst:               {resultType, result, id, extInst, ids},
	spirv.OpMemoryModel:           {addressingModel, memoryModel},
	spirv.OpEntryPoint:            {executionModel, id, str, ids},
	spirv.OpExecutionMode:         {id, executionMode, literals},
	spirv.OpExecutionModeID:       {id, executionMode, ids},
	spirv.OpCapability:            {capability},
	spirv.OpTypeVoid:              {result},
	spirv.OpTypeBool:              {result},
	spirv.OpTypeInt:               {result, literal, literal},
	spirv.OpTypeFloat:             {result, literal},
	spirv.OpTypeVector:            {result, id, literal},
	spirv.OpTypeMatrix:            {result, id, literal},
	spirv.OpTypeImage:             {result, id, dim, literal, literal, literal, literal, literals},
	spirv.OpTypeSampler:           {result},
	spirv.OpTypeSampledImage:      {result, id},
	spirv.OpTypeArray:             {result, id, id},
	spirv.OpTypeRuntimeArray:      {result, id},
	spirv.OpTypeStruct:            {result, ids},
	spirv.OpTypeOpaque:            {result, str},
	spirv.OpTypePointer:           {result, storageClass, id},
	spirv.OpTypeFunction:          {result, id, ids},
	spirv.OpTypeForwardPointer:    {id, storageClass},
	spirv.OpConstantTrue:          {resultType, result},
	spirv.OpConstantFalse:         {resultType, result},
	spirv.OpConstant:              {resultType, result, literals},
	spirv.OpConstantComposite:     {resultType, result, ids},
	spirv.OpConstantSampler:       {resultType, result, literals},
	spirv.OpConstantNull:          {resultType, result},
	spirv.OpSpecConstantTrue:      {resultType, result},
	spirv.OpSpecConstantFalse:     {resultType, result},
	spirv.OpSpecConstant:          {resultType, result, literals},
	spirv.OpSpecConstantComposite: {resultType, result, ids},
	spirv.OpSpecConstantOp:        {resultType, result, literal, ids},
	spirv.OpFunction:              {resultType, result, literal, id},
	spirv.OpFunctionParameter:     {resultType, result},
	spirv.OpFunctionEnd:           {},
	spirv.OpVariable:              {resultType, result, storageClass, ids},
	spirv.OpStore:                 {id, id, literals},
	spirv.OpCopyMemory:            {id, id, literals},
	spirv.OpCopyMemorySized:       {id, id, id, literals},
	spirv.OpDecorate:              {id, decoration},
	spirv.OpMemberDecorate:        {id, literal, decoration},
	spirv.OpDecorateID:            {id, decorationIDs},
	spirv.OpDecorateString:        {id, decorationStrs},
	spirv.OpMemberDecorateString:  {id, literal, decorationStrs},
	spirv.OpDecorationGroup:       {result},
	spirv.OpGroupDecorate:         {id, ids},
	spirv.OpGroupMemberDecorate:   {id, memberPairs},
	spirv.OpVectorShuffle:         {resultType, result, id, id, literals},
	spirv.OpCompositeExtract:      {resultType, result, id, literals},
	spirv.OpCompositeInsert:       {resultType, result, id, id, literals},
	spirv.OpImageWrite:            {id, id, id, literals},
	spirv.OpEmitVertex:            {},
	spirv.OpEndPrimitive:          {},
	spirv.OpEmitStreamVertex:      {id},
	spirv.OpEndStreamPrimitive:    {id},
	spirv.OpControlBarrier:        {id, id, id},
	spirv.OpMemoryBarrier:         {id, id},
	spirv.OpAtomicStore:           {id, id, id, id},
	spirv.OpLoopMerge:             {id, id, literals},
	spirv.OpSelectionMerge:        {id, literals},
	spirv.OpLabel:                 {result},
	spirv.OpBranch:                {id},
	spirv.OpBranchConditional:     {id, id, id, literals},
	spirv.OpSwitch:                {id, id, switchTargets},
	spirv.OpKill:                  {},
	spirv.OpReturn:                {},
	spirv.OpReturnValue:           {id},
	spirv.OpUnreachable:           {},
	spirv.OpLifetimeStart:         {id, literal},
	spirv.OpLifetimeStop:          {id, literal},
}

// valueLayout is used for known opcodes without an entry in layouts.
var valueLayout = []operand{resultType, result, ids}

// Disassembler writes the text form of a module.
type Disassembler struct {
	// Indices prefixes every instruction with its word index.
	Indices bool

	w       io.Writer
	names   map[spirv.ID]string // id -> printed name, after UseNames
	extSets map[spirv.ID]string
}

// New creates a Disassembler writing to w.
func New(w io.Writer) *Disassembler {
	return &Disassembler{w: w, extSets: make(map[spirv.ID]string)}
}

// UseNames assigns each OpName'd id a readable name. Names that would
// collide keep their number as a suffix. Scanning stops at the first
// undecodable instruction; Module reports that fault.
func (d *Disassembler) UseNames(m *spirv.Module) {
	d.names = make(map[spirv.ID]string)
	taken := make(map[string]bool)
	dec := spirv.NewDecoder(m)
	for dec.More() {
		inst, _, err := dec.Next()
		if err != nil {
			return
		}
		if inst.Opcode != spirv.OpName {
			continue
		}
		ops := inst.Operands()
		target, name := ops.ID(), sanitize(ops.LiteralString())
		if ops.Err() != nil || name == "" {
			continue
		}
		if _, ok := d.names[target]; ok {
			continue
		}
		if taken[name] {
			name += "_" + strconv.FormatUint(uint64(target), 10)
		}
		taken[name] = true
		d.names[target] = name
	}
}

func sanitize(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

func (d *Disassembler) header(m *spirv.Module) {
	h := m.Header
	fmt.Fprintf(d.w, "; SPIR-V\n")
	fmt.Fprintf(d.w, "; Version: %s\n", h.Version)
	fmt.Fprintf(d.w, "; Generator: 0x%08X\n", h.Generator)
	fmt.Fprintf(d.w, "; Bound: %d\n", h.Bound)
	fmt.Fprintf(d.w, "; Schema: %d\n", h.Schema)
	fmt.Fprintln(d.w)
}

// Module prints the header and every instruction. It stops at the first decode error.
func (d *Disassembler) Module(m *spirv.Module) error {
	d.header(m)
	dec := spirv.NewDecoder(m)
	for dec.More() {
		inst, index, err := dec.Next()
		if err != nil {
			return fmt.Errorf("%s: %w", index, err)
		}
		if err := d.instruction(inst, index); err != nil {
			return fmt.Errorf("%s: %w", index, err)
		}
	}
	return nil
}

func (d *Disassembler) id(v spirv.ID) string {
	if name, ok := d.names[v]; ok {
		return "%" + name
	}
	return "%" + strconv.FormatUint(uint64(v), 10)
}

func (d *Disassembler) instruction(inst spirv.Instruction, index spirv.InstructionIndex) error {
	layout, ok := layouts[inst.Opcode]
	switch {
	case ok:
	case inst.Opcode.Known():
		layout = valueLayout
	default:
		layout = []operand{literals}
	}

	ops := inst.Operands()
	var (
		res  string
		args []string
		last spirv.ID
	)
	for _, kind := range layout {
		if !ops.More() {
			// Results are required; other trailing operands are optional.
			if kind == result || kind == resultType {
				ops.ID()
			}
			break
		}
		switch kind {
		case resultType:
			args = append(args, d.id(ops.ID()))
		case result:
			res = d.id(ops.ID())
		case id:
			last = ops.ID()
			args = append(args, d.id(last))
		case ids:
			for _, v := range ops.RestIDs() {
				args = append(args, d.id(v))
			}
		case literal:
			args = append(args, strconv.FormatUint(uint64(ops.Word()), 10))
		case literals:
			for _, w := range ops.Rest() {
				args = append(args, strconv.FormatUint(uint64(w), 10))
			}
		case str:
			args = append(args, strconv.Quote(ops.LiteralString()))
		case strs:
			for ops.More() {
				args = append(args, strconv.Quote(ops.LiteralString()))
			}
		case capability:
			args = append(args, spirv.Capability(ops.Word()).String())
		case executionModel:
			args = append(args, spirv.ExecutionModel(ops.Word()).String())
		case executionMode:
			args = append(args, spirv.ExecutionMode(ops.Word()).String())
		case addressingModel:
			args = append(args, spirv.AddressingModel(ops.Word()).String())
		case memoryModel:
			args = append(args, spirv.MemoryModel(ops.Word()).String())
		case storageClass:
			args = append(args, spirv.StorageClass(ops.Word()).String())
		case dim:
			args = append(args, spirv.Dim(ops.Word()).String())
		case sourceLanguage:
			args = append(args, spirv.SourceLanguage(ops.Word()).String())
		case decoration, decorationIDs, decorationStrs:
			args = append(args, d.decoration(kind, ops)...)
		case extInst:
			n := ops.Word()
			if d.extSets[last] == spirv.ExtInstSetGLSLStd450 && spirv.GLSLInstruction(n).Valid() {
				args = append(args, spirv.GLSLInstruction(n).String())
			} else {
				args = append(args, strconv.FormatUint(uint64(n), 10))
			}
		case memberPairs:
			for ops.More() {
				args = append(args, d.id(ops.ID()), strconv.FormatUint(uint64(ops.Word()), 10))
			}
		case switchTargets:
			for ops.More() {
				args = append(args, strconv.FormatUint(uint64(ops.Word()), 10), d.id(ops.ID()))
			}
		}
	}
	if err := ops.Err(); err != nil {
		return err
	}

	if inst.Opcode == spirv.OpExtInstImport && len(args) == 1 {
		if set, err := strconv.Unquote(args[0]); err == nil {
			d.extSets[spirv.ID(inst.Words[0])] = set
		}
	}

	line := inst.Opcode.String()
	if len(args) > 0 {
		line += " " + strings.Join(args, " ")
	}
	if d.Indices {
		fmt.Fprintf(d.w, "%6d: ", uint32(index))
	}
	if res != "" {
		fmt.Fprintf(d.w, "%14s = %s\n", res, line)
	} else {
		fmt.Fprintf(d.w, "%17s%s\n", "", line)
	}
	return nil
}

func (d *Disassembler) decoration(kind operand, ops *spirv.Operands) []string {
	dec := spirv.Decoration(ops.Word())
	args := []string{dec.String()}
	switch {
	case kind == decorationIDs:
		for _, v := range ops.RestIDs() {
			args = append(args, d.id(v))
		}
	case kind == decorationStrs:
		for ops.More() {
			args = append(args, strconv.Quote(ops.LiteralString()))
		}
	case dec == spirv.DecorationBuiltIn && ops.More():
		args = append(args, spirv.BuiltIn(ops.Word()).String())
	default:
		for _, w := range ops.Rest() {
			args = append(args, strconv.FormatUint(uint64(w), 10))
		}
	}
	return args
}

// String disassembles m with default settings.
func String(m *spirv.Module) (string, error) {
	var sb strings.Builder
	err := New(&sb).Module(m)
	return sb.String(), err
}
