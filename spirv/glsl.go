package spirv

import "strconv"

// Extended instruction set names accepted by OpExtInstImport.
const (
	ExtInstSetGLSLStd450 = "GLSL.std.450"
	ExtInstSetOpenCLStd  = "OpenCL.std"
)

// GLSLInstruction is an instruction number of the GLSL.std.450 set.
type GLSLInstruction uint32

// GLSLInstructionCount is the highest defined GLSL.std.450 number.
const GLSLInstructionCount = 81

var glslInstructionNames = [GLSLInstructionCount + 1]string{
	"",
	"Round", "RoundEven", "Trunc", "FAbs", "SAbs", "FSign", "SSign", "Floor",
	"Ceil", "Fract", "Radians", "Degrees", "Sin", "Cos", "Tan", "Asin",
	"Acos", "Atan", "Sinh", "Cosh", "Tanh", "Asinh", "Acosh", "Atanh",
	"Atan2", "Pow", "Exp", "Log", "Exp2", "Log2", "Sqrt", "InverseSqrt",
	"Determinant", "MatrixInverse", "Modf", "ModfStruct", "FMin", "UMin", "SMin", "FMax",
	"UMax", "SMax", "FClamp", "UClamp", "SClamp", "FMix", "IMix", "Step",
	"SmoothStep", "Fma", "Frexp", "FrexpStruct", "Ldexp", "PackSnorm4x8", "PackUnorm4x8", "PackSnorm2x16",
	"PackUnorm2x16", "PackHalf2x16", "PackDouble2x32", "UnpackSnorm2x16", "UnpackUnorm2x16", "UnpackHalf2x16", "UnpackSnorm4x8", "UnpackUnorm4x8",
	"UnpackDouble2x32", "Length", "Distance", "Cross", "Normalize", "FaceForward", "Reflect", "Refract",
	"FindILsb", "FindSMsb", "FindUMsb", "InterpolateAtCentroid", "InterpolateAtSample", "InterpolateAtOffset", "NMin", "NMax",
	"NClamp",
}

// Valid reports whether g is a defined GLSL.std.450 instruction.
func (g GLSLInstruction) Valid() bool {
	return g >= 1 && g <= GLSLInstructionCount
}

func (g GLSLInstruction) String() string {
	if !g.Valid() {
		return "GLSLInstruction(" + strconv.FormatUint(uint64(g), 10) + ")"
	}
	return glslInstructionNames[g]
}
