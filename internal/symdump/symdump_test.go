package symdump

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gogpu/spvfront"
	"github.com/gogpu/spvfront/spirv"
)

func TestDump(t *testing.T) {
	b := spirv.NewModuleBuilder(spirv.Version1_3)
	b.AddCapability(spirv.CapabilityShader)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)

	f := b.AddTypeFloat(32)
	st := b.AddTypeStruct(f, f)
	b.AddName(st, "Block")
	b.AddMemberName(st, 1, "color")
	b.AddDecorate(st, spirv.DecorationBlock)
	b.AddMemberDecorate(st, 1, spirv.DecorationOffset, 16)

	v := b.AddTypeVoid()
	fn := b.AddFunction(b.AddTypeFunction(v), v, spirv.FunctionControlNone)
	b.AddName(fn, "main")
	b.AddLabel()
	b.AddReturn()
	b.AddFunctionEnd()
	b.AddEntryPoint(spirv.ExecutionModelFragment, fn, "main")
	b.AddExecutionMode(fn, spirv.ExecutionModeOriginUpperLeft)

	opts := spvfront.DefaultOptions()
	opts.Name = "dump.spv"
	result, err := spvfront.Resolve(b.Build(), opts)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	var buf bytes.Buffer
	Write(&buf, result)
	out := buf.String()

	for _, want := range []string{
		"; dump.spv: SPIR-V 1.3",
		"bound 7\n",
		"\nstage Fragment\n",
		"  memory model: Logical GLSL450\n",
		"  capabilities: Matrix Shader\n",
		"  entry point \"main\": %5(main) OriginUpperLeft\n",
		"  %1     type f32\n",
		"  %2     type struct {%1, %1} \"Block\"\n           Block\n           member 1 \"color\" [Offset 16]\n",
		"  %3     type void\n",
		"  %4     type fn() -> %3\n",
		"  %5     function %4 () -> %3 \"main\"\n",
		"  %6     label in %5(main)\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}
}
