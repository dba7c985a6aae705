package spirv

import "strconv"

// enumName returns the grammar name of v, or its decimal value when the
// table has no entry.
func enumName[T ~uint32](names map[T]string, v T) string {
	if s, ok := names[v]; ok {
		return s
	}
	return strconv.FormatUint(uint64(v), 10)
}

// Capability represents a SPIR-V capability.
type Capability uint32

const (
	CapabilityMatrix                             Capability = 0
	CapabilityShader                             Capability = 1
	CapabilityGeometry                           Capability = 2
	CapabilityTessellation                       Capability = 3
	CapabilityAddresses                          Capability = 4
	CapabilityLinkage                            Capability = 5
	CapabilityKernel                             Capability = 6
	CapabilityVector16                           Capability = 7
	CapabilityFloat16Buffer                      Capability = 8
	CapabilityFloat16                            Capability = 9
	CapabilityFloat64                            Capability = 10
	CapabilityInt64                              Capability = 11
	CapabilityInt64Atomics                       Capability = 12
	CapabilityImageBasic                         Capability = 13
	CapabilityImageReadWrite                     Capability = 14
	CapabilityImageMipmap                        Capability = 15
	CapabilityPipes                              Capability = 17
	CapabilityGroups                             Capability = 18
	CapabilityDeviceEnqueue                      Capability = 19
	CapabilityLiteralSampler                     Capability = 20
	CapabilityAtomicStorage                      Capability = 21
	CapabilityInt16                              Capability = 22
	CapabilityTessellationPointSize              Capability = 23
	CapabilityGeometryPointSize                  Capability = 24
	CapabilityImageGatherExtended                Capability = 25
	CapabilityStorageImageMultisample            Capability = 27
	CapabilityUniformBufferArrayDynamicIndexing  Capability = 28
	CapabilitySampledImageArrayDynamicIndexing   Capability = 29
	CapabilityStorageBufferArrayDynamicIndexing  Capability = 30
	CapabilityStorageImageArrayDynamicIndexing   Capability = 31
	CapabilityClipDistance                       Capability = 32
	CapabilityCullDistance                       Capability = 33
	CapabilityImageCubeArray                     Capability = 34
	CapabilitySampleRateShading                  Capability = 35
	CapabilityImageRect                          Capability = 36
	CapabilitySampledRect                        Capability = 37
	CapabilityGenericPointer                     Capability = 38
	CapabilityInt8                               Capability = 39
	CapabilityInputAttachment                    Capability = 40
	CapabilitySparseResidency                    Capability = 41
	CapabilityMinLod                             Capability = 42
	CapabilitySampled1D                          Capability = 43
	CapabilityImage1D                            Capability = 44
	CapabilitySampledCubeArray                   Capability = 45
	CapabilitySampledBuffer                      Capability = 46
	CapabilityImageBuffer                        Capability = 47
	CapabilityImageMSArray                       Capability = 48
	CapabilityStorageImageExtendedFormats        Capability = 49
	CapabilityImageQuery                         Capability = 50
	CapabilityDerivativeControl                  Capability = 51
	CapabilityInterpolationFunction              Capability = 52
	CapabilityTransformFeedback                  Capability = 53
	CapabilityGeometryStreams                    Capability = 54
	CapabilityStorageImageReadWithoutFormat      Capability = 55
	CapabilityStorageImageWriteWithoutFormat     Capability = 56
	CapabilityMultiViewport                      Capability = 57
	CapabilitySubgroupDispatch                   Capability = 58
	CapabilityNamedBarrier                       Capability = 59
	CapabilityPipeStorage                        Capability = 60
	CapabilityGroupNonUniform                    Capability = 61
	CapabilityGroupNonUniformVote                Capability = 62
	CapabilityGroupNonUniformArithmetic          Capability = 63
	CapabilityGroupNonUniformBallot              Capability = 64
	CapabilityGroupNonUniformShuffle             Capability = 65
	CapabilityGroupNonUniformShuffleRelative     Capability = 66
	CapabilityGroupNonUniformClustered           Capability = 67
	CapabilityGroupNonUniformQuad                Capability = 68
	CapabilitySubgroupBallotKHR                  Capability = 4423
	CapabilityDrawParameters                     Capability = 4427
	CapabilityStorageBuffer16BitAccess           Capability = 4433
	CapabilityUniformAndStorageBuffer16BitAccess Capability = 4434
	CapabilityStoragePushConstant16              Capability = 4435
	CapabilityStorageInputOutput16               Capability = 4436
	CapabilityDeviceGroup                        Capability = 4437
	CapabilityMultiView                          Capability = 4439
	CapabilityVariablePointersStorageBuffer      Capability = 4441
	CapabilityVariablePointers                   Capability = 4442
)

var capabilityNames = map[Capability]string{
	0: "Matrix", 1: "Shader", 2: "Geometry", 3: "Tessellation",
	4: "Addresses", 5: "Linkage", 6: "Kernel", 7: "Vector16",
	8: "Float16Buffer", 9: "Float16", 10: "Float64", 11: "Int64",
	12: "Int64Atomics", 13: "ImageBasic", 14: "ImageReadWrite", 15: "ImageMipmap",
	17: "Pipes", 18: "Groups", 19: "DeviceEnqueue", 20: "LiteralSampler",
	21: "AtomicStorage", 22: "Int16", 23: "TessellationPointSize",
	24: "GeometryPointSize", 25: "ImageGatherExtended", 27: "StorageImageMultisample",
	28: "UniformBufferArrayDynamicIndexing", 29: "SampledImageArrayDynamicIndexing",
	30: "StorageBufferArrayDynamicIndexing", 31: "StorageImageArrayDynamicIndexing",
	32: "ClipDistance", 33: "CullDistance", 34: "ImageCubeArray",
	35: "SampleRateShading", 36: "ImageRect", 37: "SampledRect",
	38: "GenericPointer", 39: "Int8", 40: "InputAttachment",
	41: "SparseResidency", 42: "MinLod", 43: "Sampled1D", 44: "Image1D",
	45: "SampledCubeArray", 46: "SampledBuffer", 47: "ImageBuffer",
	48: "ImageMSArray", 49: "StorageImageExtendedFormats", 50: "ImageQuery",
	51: "DerivativeControl", 52: "InterpolationFunction", 53: "TransformFeedback",
	54: "GeometryStreams", 55: "StorageImageReadWithoutFormat",
	56: "StorageImageWriteWithoutFormat", 57: "MultiViewport",
	58: "SubgroupDispatch", 59: "NamedBarrier", 60: "PipeStorage",
	61: "GroupNonUniform", 62: "GroupNonUniformVote", 63: "GroupNonUniformArithmetic",
	64: "GroupNonUniformBallot", 65: "GroupNonUniformShuffle",
	66: "GroupNonUniformShuffleRelative", 67: "GroupNonUniformClustered",
	68: "GroupNonUniformQuad", 4423: "SubgroupBallotKHR", 4427: "DrawParameters",
	4433: "StorageBuffer16BitAccess", 4434: "UniformAndStorageBuffer16BitAccess",
	4435: "StoragePushConstant16", 4436: "StorageInputOutput16",
	4437: "DeviceGroup", 4439: "MultiView",
	4441: "VariablePointersStorageBuffer", 4442: "VariablePointers",
}

func (c Capability) String() string { return enumName(capabilityNames, c) }

// Decoration represents a SPIR-V decoration.
type Decoration uint32

// Common decorations
const (
	DecorationRelaxedPrecision     Decoration = 0
	DecorationSpecID               Decoration = 1
	DecorationBlock                Decoration = 2
	DecorationBufferBlock          Decoration = 3
	DecorationRowMajor             Decoration = 4
	DecorationColMajor             Decoration = 5
	DecorationArrayStride          Decoration = 6
	DecorationMatrixStride         Decoration = 7
	DecorationBuiltIn              Decoration = 11
	DecorationNoPerspective        Decoration = 13
	DecorationFlat                 Decoration = 14
	DecorationCentroid             Decoration = 16
	DecorationInvariant            Decoration = 18
	DecorationRestrict             Decoration = 19
	DecorationNonWritable          Decoration = 24
	DecorationNonReadable          Decoration = 25
	DecorationLocation             Decoration = 30
	DecorationComponent            Decoration = 31
	DecorationBinding              Decoration = 33
	DecorationDescriptorSet        Decoration = 34
	DecorationOffset               Decoration = 35
	DecorationInputAttachmentIndex Decoration = 43
	DecorationAlignment            Decoration = 44
	DecorationHlslCounterBuffer    Decoration = 5634
	DecorationUserSemantic         Decoration = 5635
)

var decorationNames = map[Decoration]string{
	0: "RelaxedPrecision", 1: "SpecId", 2: "Block", 3: "BufferBlock",
	4: "RowMajor", 5: "ColMajor", 6: "ArrayStride", 7: "MatrixStride",
	8: "GLSLShared", 9: "GLSLPacked", 10: "CPacked", 11: "BuiltIn",
	13: "NoPerspective", 14: "Flat", 15: "Patch", 16: "Centroid",
	17: "Sample", 18: "Invariant", 19: "Restrict", 20: "Aliased",
	21: "Volatile", 22: "Constant", 23: "Coherent", 24: "NonWritable",
	25: "NonReadable", 26: "Uniform", 28: "SaturatedConversion",
	29: "Stream", 30: "Location", 31: "Component", 32: "Index",
	33: "Binding", 34: "DescriptorSet", 35: "Offset", 36: "XfbBuffer",
	37: "XfbStride", 38: "FuncParamAttr", 39: "FPRoundingMode",
	40: "FPFastMathMode", 41: "LinkageAttributes", 42: "NoContraction",
	43: "InputAttachmentIndex", 44: "Alignment", 45: "MaxByteOffset",
	46: "AlignmentId", 47: "MaxByteOffsetId",
	5634: "HlslCounterBufferGOOGLE", 5635: "UserSemantic",
}

func (d Decoration) String() string { return enumName(decorationNames, d) }

// BuiltIn is the operand of the BuiltIn decoration.
type BuiltIn uint32

var builtinNames = map[BuiltIn]string{
	0: "Position", 1: "PointSize", 3: "ClipDistance", 4: "CullDistance",
	5: "VertexId", 6: "InstanceId", 7: "PrimitiveId", 8: "InvocationId",
	9: "Layer", 10: "ViewportIndex", 11: "TessLevelOuter", 12: "TessLevelInner",
	13: "TessCoord", 14: "PatchVertices", 15: "FragCoord", 16: "PointCoord",
	17: "FrontFacing", 18: "SampleId", 19: "SamplePosition", 20: "SampleMask",
	22: "FragDepth", 23: "HelperInvocation", 24: "NumWorkgroups",
	25: "WorkgroupSize", 26: "WorkgroupId", 27: "LocalInvocationId",
	28: "GlobalInvocationId", 29: "LocalInvocationIndex",
	42: "VertexIndex", 43: "InstanceIndex",
}

func (b BuiltIn) String() string { return enumName(builtinNames, b) }

// ExecutionModel represents a shader stage.
type ExecutionModel uint32

const (
	ExecutionModelVertex                 ExecutionModel = 0
	ExecutionModelTessellationControl    ExecutionModel = 1
	ExecutionModelTessellationEvaluation ExecutionModel = 2
	ExecutionModelGeometry               ExecutionModel = 3
	ExecutionModelFragment               ExecutionModel = 4
	ExecutionModelGLCompute              ExecutionModel = 5
	ExecutionModelKernel                 ExecutionModel = 6
)

var executionModelNames = map[ExecutionModel]string{
	0: "Vertex", 1: "TessellationControl", 2: "TessellationEvaluation",
	3: "Geometry", 4: "Fragment", 5: "GLCompute", 6: "Kernel",
}

func (m ExecutionModel) String() string { return enumName(executionModelNames, m) }

// ParseExecutionModel maps a grammar name (case-sensitive) or one of the
// short stage names "vertex", "fragment" and "compute" to a model.
func ParseExecutionModel(name string) (ExecutionModel, bool) {
	switch name {
	case "vertex":
		return ExecutionModelVertex, true
	case "fragment":
		return ExecutionModelFragment, true
	case "compute":
		return ExecutionModelGLCompute, true
	}
	for m, n := range executionModelNames {
		if n == name {
			return m, true
		}
	}
	return 0, false
}

// ExecutionMode represents an execution mode.
type ExecutionMode uint32

const (
	ExecutionModeOriginUpperLeft    ExecutionMode = 7
	ExecutionModeOriginLowerLeft    ExecutionMode = 8
	ExecutionModeEarlyFragmentTests ExecutionMode = 9
	ExecutionModeDepthReplacing     ExecutionMode = 12
	ExecutionModeLocalSize          ExecutionMode = 17
)

var executionModeNames = map[ExecutionMode]string{
	0: "Invocations", 1: "SpacingEqual", 2: "SpacingFractionalEven",
	3: "SpacingFractionalOdd", 4: "VertexOrderCw", 5: "VertexOrderCcw",
	6: "PixelCenterInteger", 7: "OriginUpperLeft", 8: "OriginLowerLeft",
	9: "EarlyFragmentTests", 10: "PointMode", 11: "Xfb", 12: "DepthReplacing",
	14: "DepthGreater", 15: "DepthLess", 16: "DepthUnchanged",
	17: "LocalSize", 18: "LocalSizeHint", 19: "InputPoints", 20: "InputLines",
	21: "InputLinesAdjacency", 22: "Triangles", 23: "InputTrianglesAdjacency",
	24: "Quads", 25: "Isolines", 26: "OutputVertices", 27: "OutputPoints",
	28: "OutputLineStrip", 29: "OutputTriangleStrip", 30: "VecTypeHint",
	31: "ContractionOff",
}

func (m ExecutionMode) String() string { return enumName(executionModeNames, m) }

// StorageClass represents a pointer storage class.
type StorageClass uint32

const (
	StorageClassUniformConstant StorageClass = 0
	StorageClassInput           StorageClass = 1
	StorageClassUniform         StorageClass = 2
	StorageClassOutput          StorageClass = 3
	StorageClassWorkgroup       StorageClass = 4
	StorageClassCrossWorkgroup  StorageClass = 5
	StorageClassPrivate         StorageClass = 6
	StorageClassFunction        StorageClass = 7
	StorageClassGeneric         StorageClass = 8
	StorageClassPushConstant    StorageClass = 9
	StorageClassAtomicCounter   StorageClass = 10
	StorageClassImage           StorageClass = 11
	StorageClassStorageBuffer   StorageClass = 12
)

var storageClassNames = map[StorageClass]string{
	0: "UniformConstant", 1: "Input", 2: "Uniform", 3: "Output",
	4: "Workgroup", 5: "CrossWorkgroup", 6: "Private", 7: "Function",
	8: "Generic", 9: "PushConstant", 10: "AtomicCounter", 11: "Image",
	12: "StorageBuffer",
}

func (s StorageClass) String() string { return enumName(storageClassNames, s) }

// AddressingModel is the first operand of OpMemoryModel.
type AddressingModel uint32

const (
	AddressingModelLogical    AddressingModel = 0
	AddressingModelPhysical32 AddressingModel = 1
	AddressingModelPhysical64 AddressingModel = 2
)

var addressingModelNames = map[AddressingModel]string{
	0: "Logical", 1: "Physical32", 2: "Physical64", 5348: "PhysicalStorageBuffer64",
}

func (a AddressingModel) String() string { return enumName(addressingModelNames, a) }

// MemoryModel is the second operand of OpMemoryModel.
type MemoryModel uint32

const (
	MemoryModelSimple  MemoryModel = 0
	MemoryModelGLSL450 MemoryModel = 1
	MemoryModelOpenCL  MemoryModel = 2
	MemoryModelVulkan  MemoryModel = 3
)

var memoryModelNames = map[MemoryModel]string{
	0: "Simple", 1: "GLSL450", 2: "OpenCL", 3: "Vulkan",
}

func (m MemoryModel) String() string { return enumName(memoryModelNames, m) }

// SourceLanguage is the first operand of OpSource.
type SourceLanguage uint32

const (
	SourceLanguageUnknown SourceLanguage = 0
	SourceLanguageESSL    SourceLanguage = 1
	SourceLanguageGLSL    SourceLanguage = 2
	SourceLanguageHLSL    SourceLanguage = 5
)

var sourceLanguageNames = map[SourceLanguage]string{
	0: "Unknown", 1: "ESSL", 2: "GLSL", 3: "OpenCL_C", 4: "OpenCL_CPP", 5: "HLSL",
}

func (l SourceLanguage) String() string { return enumName(sourceLanguageNames, l) }

// Dim is the dimensionality operand of OpTypeImage.
type Dim uint32

const (
	Dim1D          Dim = 0
	Dim2D          Dim = 1
	Dim3D          Dim = 2
	DimCube        Dim = 3
	DimRect        Dim = 4
	DimBuffer      Dim = 5
	DimSubpassData Dim = 6
)

var dimNames = map[Dim]string{
	0: "1D", 1: "2D", 2: "3D", 3: "Cube", 4: "Rect", 5: "Buffer", 6: "SubpassData",
}

func (d Dim) String() string { return enumName(dimNames, d) }

// FunctionControl is the control mask of OpFunction.
type FunctionControl uint32

const (
	FunctionControlNone       FunctionControl = 0
	FunctionControlInline     FunctionControl = 1
	FunctionControlDontInline FunctionControl = 2
	FunctionControlPure       FunctionControl = 4
	FunctionControlConst      FunctionControl = 8
)

// SelectionControl is the control mask of OpSelectionMerge.
type SelectionControl uint32

const (
	SelectionControlNone SelectionControl = 0
)

// LoopControl is the control mask of OpLoopMerge.
type LoopControl uint32

const (
	LoopControlNone LoopControl = 0
)
