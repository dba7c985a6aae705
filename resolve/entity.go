package resolve

import "github.com/gogpu/spvfront/spirv"

// ID is a result identifier.
type ID = spirv.ID

// EntityKind tags the variants of Entity.
type EntityKind uint8

const (
	KindExtInstSet EntityKind = iota
	KindDecorationGroup
	KindString
	KindType
	KindConstant
	KindUndef
	KindVariable
	KindFunction
	KindFunctionParameter
	KindLabel
	KindValue
)

var entityKindNames = [...]string{
	KindExtInstSet:        "extended instruction set",
	KindDecorationGroup:   "decoration group",
	KindString:            "string",
	KindType:              "type",
	KindConstant:          "constant",
	KindUndef:             "undef",
	KindVariable:          "variable",
	KindFunction:          "function",
	KindFunctionParameter: "function parameter",
	KindLabel:             "label",
	KindValue:             "value",
}

func (k EntityKind) String() string {
	if int(k) < len(entityKindNames) {
		return entityKindNames[k]
	}
	return "unknown"
}

// Entity is the closed set of things an identifier can name. The
// concrete types are the pointer types declared in this file.
type Entity interface {
	// Index is the defining instruction.
	Index() spirv.InstructionIndex
	Kind() EntityKind
	entity()
}

// Defined records where an entity was defined. Every entity embeds it.
type Defined struct {
	At spirv.InstructionIndex
}

// Index returns the defining instruction.
func (d Defined) Index() spirv.InstructionIndex { return d.At }

func (Defined) entity() {}

// ExtInstSetKind identifies a known extended instruction set.
type ExtInstSetKind uint8

const (
	// ExtInstSetUnknown is the sentinel skipped when matching names.
	ExtInstSetUnknown ExtInstSetKind = iota
	ExtInstSetGLSLStd450
	ExtInstSetOpenCLStd
)

// ExtInstSet is the result of OpExtInstImport.
type ExtInstSet struct {
	Defined
	Set  ExtInstSetKind
	Name string
}

// DecorationGroup is the result of OpDecorationGroup. Decorations is the
// group id's decoration set as it was when the group was created.
type DecorationGroup struct {
	Defined
	Decorations DecorationSet
}

// String is the result of OpString.
type String struct {
	Defined
	Value string
}

// Type is the result of an OpType* instruction.
type Type struct {
	Defined
	Inner TypeInner
}

// TypeInner represents the inner type kind.
type TypeInner interface {
	typeInner()
}

// VoidType is OpTypeVoid.
type VoidType struct{}

func (VoidType) typeInner() {}

// BoolType is OpTypeBool.
type BoolType struct{}

func (BoolType) typeInner() {}

// IntType is OpTypeInt.
type IntType struct {
	Width  uint32
	Signed bool
}

func (IntType) typeInner() {}

// FloatType is OpTypeFloat.
type FloatType struct {
	Width uint32
}

func (FloatType) typeInner() {}

// VectorType is OpTypeVector.
type VectorType struct {
	Component ID
	Count     uint32
}

func (VectorType) typeInner() {}

// MatrixType is OpTypeMatrix.
type MatrixType struct {
	Column  ID
	Columns uint32
}

func (MatrixType) typeInner() {}

// ArrayType is OpTypeArray. Length is a constant id.
type ArrayType struct {
	Element ID
	Length  ID
}

func (ArrayType) typeInner() {}

// RuntimeArrayType is OpTypeRuntimeArray.
type RuntimeArrayType struct {
	Element ID
}

func (RuntimeArrayType) typeInner() {}

// StructType is OpTypeStruct.
type StructType struct {
	Members []ID
}

func (StructType) typeInner() {}

// PointerType is OpTypePointer.
type PointerType struct {
	Storage spirv.StorageClass
	Pointee ID
}

func (PointerType) typeInner() {}

// FunctionType is OpTypeFunction.
type FunctionType struct {
	Return ID
	Params []ID
}

func (FunctionType) typeInner() {}

// ImageType is OpTypeImage.
type ImageType struct {
	SampledType ID
	Dim         spirv.Dim
	Depth       uint32
	Arrayed     bool
	MS          bool
	Sampled     uint32
	Format      uint32
}

func (ImageType) typeInner() {}

// SamplerType is OpTypeSampler.
type SamplerType struct{}

func (SamplerType) typeInner() {}

// SampledImageType is OpTypeSampledImage.
type SampledImageType struct {
	Image ID
}

func (SampledImageType) typeInner() {}

// Constant is the result of OpConstant, OpConstantTrue, OpConstantFalse,
// OpConstantNull or OpConstantComposite. Op tells which.
type Constant struct {
	Defined
	Type         ID
	Op           spirv.OpCode
	Literal      []uint32
	Constituents []ID
}

// Bool reports the value of an OpConstantTrue/OpConstantFalse constant.
func (c *Constant) Bool() (value, ok bool) {
	switch c.Op {
	case spirv.OpConstantTrue:
		return true, true
	case spirv.OpConstantFalse:
		return false, true
	}
	return false, false
}

// Undef is the result of OpUndef.
type Undef struct {
	Defined
	Type ID
}

// Variable is the result of OpVariable. Function is zero for globals.
type Variable struct {
	Defined
	Type        ID
	Storage     spirv.StorageClass
	Initializer ID
	Function    ID
}

// Function is the result of OpFunction.
type Function struct {
	Defined
	Return  ID
	Control spirv.FunctionControl
	Type    ID
	Params  []ID
	End     spirv.InstructionIndex
}

// FunctionParameter is the result of OpFunctionParameter.
type FunctionParameter struct {
	Defined
	Type     ID
	Function ID
}

// Label is the result of OpLabel.
type Label struct {
	Defined
	Function ID
}

// Value is the result of a body instruction that computes something.
// For OpExtInst, ExtSet and ExtInstruction identify the instruction.
type Value struct {
	Defined
	Type           ID
	Op             spirv.OpCode
	Function       ID
	ExtSet         ID
	ExtInstruction uint32
}

func (*ExtInstSet) Kind() EntityKind        { return KindExtInstSet }
func (*DecorationGroup) Kind() EntityKind   { return KindDecorationGroup }
func (*String) Kind() EntityKind            { return KindString }
func (*Type) Kind() EntityKind              { return KindType }
func (*Constant) Kind() EntityKind          { return KindConstant }
func (*Undef) Kind() EntityKind             { return KindUndef }
func (*Variable) Kind() EntityKind          { return KindVariable }
func (*Function) Kind() EntityKind          { return KindFunction }
func (*FunctionParameter) Kind() EntityKind { return KindFunctionParameter }
func (*Label) Kind() EntityKind             { return KindLabel }
func (*Value) Kind() EntityKind             { return KindValue }
