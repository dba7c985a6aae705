// Package symdump prints the resolved symbol tables of a module.
package symdump

import (
	"fmt"
	"io"
	"strings"

	"github.com/gogpu/spvfront"
	"github.com/gogpu/spvfront/resolve"
	"github.com/gogpu/spvfront/spirv"
)

// Write prints the symbol table of every stage in result.
func Write(w io.Writer, result *spvfront.Result) {
	h := result.Module.Header
	fmt.Fprintf(w, "; %s: SPIR-V %s, generator 0x%08x, bound %d\n",
		result.Module.Name, h.Version, h.Generator, h.Bound)

	for _, model := range result.Models() {
		s, _ := result.Stage(model)
		dumpStage(w, s)
	}
}

func dumpStage(w io.Writer, s *resolve.Stage) {
	fmt.Fprintf(w, "\nstage %s\n", s.Model)

	if addressing, memory, ok := s.MemoryModel(); ok {
		fmt.Fprintf(w, "  memory model: %s %s\n", addressing, memory)
	}
	caps := s.Capabilities().List()
	names := make([]string, len(caps))
	for i, c := range caps {
		names[i] = c.String()
	}
	fmt.Fprintf(w, "  capabilities: %s\n", strings.Join(names, " "))

	if src := s.Source(); src.Language != 0 || src.File != 0 {
		fmt.Fprintf(w, "  source: %s %d", src.Language, src.Version)
		if src.File != 0 {
			if file, err := resolve.Get[*resolve.String](s, src.File); err == nil {
				fmt.Fprintf(w, " %q", file.Value)
			}
		}
		fmt.Fprintln(w)
	}

	for _, ep := range s.EntryPoints() {
		fmt.Fprintf(w, "  entry point %q: %s", ep.Name, ref(s, ep.Function))
		for _, m := range ep.Modes {
			fmt.Fprintf(w, " %s", m.Mode)
			for _, op := range m.Operands {
				fmt.Fprintf(w, " %d", op)
			}
		}
		fmt.Fprintln(w)
	}

	s.IDs().Each(func(id resolve.ID, e resolve.Entity) bool {
		fmt.Fprintf(w, "  %-6s %s", fmt.Sprintf("%%%d", id), describe(s, e))
		if name := s.Name(id, ""); name != "" {
			fmt.Fprintf(w, " %q", name)
		}
		fmt.Fprintln(w)
		for _, d := range s.Decorations(id) {
			fmt.Fprintf(w, "           %s\n", d.Decoration)
		}
		if t, ok := e.(*resolve.Type); ok {
			if st, ok := t.Inner.(resolve.StructType); ok {
				dumpMembers(w, s, id, len(st.Members))
			}
		}
		return true
	})
}

func dumpMembers(w io.Writer, s *resolve.Stage, id resolve.ID, count int) {
	for i := range count {
		member := uint32(i)
		ds := s.MemberDecorations(id, member)
		name := s.MemberName(id, member, "")
		if len(ds) == 0 && name == "" {
			continue
		}
		fmt.Fprintf(w, "           member %d", member)
		if name != "" {
			fmt.Fprintf(w, " %q", name)
		}
		for _, d := range ds {
			fmt.Fprintf(w, " [%s]", d.Decoration)
		}
		fmt.Fprintln(w)
	}
}

// ref formats an id with its debug name, if any.
func ref(s *resolve.Stage, id resolve.ID) string {
	if name := s.Name(id, ""); name != "" {
		return fmt.Sprintf("%%%d(%s)", id, name)
	}
	return fmt.Sprintf("%%%d", id)
}

func refs(s *resolve.Stage, ids []resolve.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = ref(s, id)
	}
	return strings.Join(parts, ", ")
}

func describe(s *resolve.Stage, e resolve.Entity) string {
	switch e := e.(type) {
	case *resolve.ExtInstSet:
		return fmt.Sprintf("ext inst set %q", e.Name)
	case *resolve.DecorationGroup:
		return fmt.Sprintf("decoration group (%d decorations)", len(e.Decorations))
	case *resolve.String:
		return fmt.Sprintf("string %q", e.Value)
	case *resolve.Type:
		return "type " + describeType(s, e.Inner)
	case *resolve.Constant:
		if v, ok := e.Bool(); ok {
			return fmt.Sprintf("constant %s %v", ref(s, e.Type), v)
		}
		if len(e.Constituents) > 0 {
			return fmt.Sprintf("constant %s {%s}", ref(s, e.Type), refs(s, e.Constituents))
		}
		if e.Op == spirv.OpConstantNull {
			return fmt.Sprintf("constant %s null", ref(s, e.Type))
		}
		return fmt.Sprintf("constant %s %v", ref(s, e.Type), e.Literal)
	case *resolve.Undef:
		return fmt.Sprintf("undef %s", ref(s, e.Type))
	case *resolve.Variable:
		out := fmt.Sprintf("variable %s %s", e.Storage, ref(s, e.Type))
		if e.Initializer != 0 {
			out += " = " + ref(s, e.Initializer)
		}
		return out
	case *resolve.Function:
		return fmt.Sprintf("function %s (%s) -> %s", ref(s, e.Type), refs(s, e.Params), ref(s, e.Return))
	case *resolve.FunctionParameter:
		return fmt.Sprintf("parameter %s of %s", ref(s, e.Type), ref(s, e.Function))
	case *resolve.Label:
		return fmt.Sprintf("label in %s", ref(s, e.Function))
	case *resolve.Value:
		if e.ExtSet != 0 {
			return fmt.Sprintf("value %s %s %s %d", ref(s, e.Type), e.Op, ref(s, e.ExtSet), e.ExtInstruction)
		}
		return fmt.Sprintf("value %s %s", ref(s, e.Type), e.Op)
	}
	return e.Kind().String()
}

func describeType(s *resolve.Stage, t resolve.TypeInner) string {
	switch t := t.(type) {
	case resolve.VoidType:
		return "void"
	case resolve.BoolType:
		return "bool"
	case resolve.IntType:
		if t.Signed {
			return fmt.Sprintf("i%d", t.Width)
		}
		return fmt.Sprintf("u%d", t.Width)
	case resolve.FloatType:
		return fmt.Sprintf("f%d", t.Width)
	case resolve.VectorType:
		return fmt.Sprintf("vec%d<%s>", t.Count, ref(s, t.Component))
	case resolve.MatrixType:
		return fmt.Sprintf("mat%d<%s>", t.Columns, ref(s, t.Column))
	case resolve.ArrayType:
		return fmt.Sprintf("array<%s, %s>", ref(s, t.Element), ref(s, t.Length))
	case resolve.RuntimeArrayType:
		return fmt.Sprintf("array<%s>", ref(s, t.Element))
	case resolve.StructType:
		return fmt.Sprintf("struct {%s}", refs(s, t.Members))
	case resolve.PointerType:
		return fmt.Sprintf("ptr<%s, %s>", t.Storage, ref(s, t.Pointee))
	case resolve.FunctionType:
		return fmt.Sprintf("fn(%s) -> %s", refs(s, t.Params), ref(s, t.Return))
	case resolve.ImageType:
		out := fmt.Sprintf("image<%s, %s", ref(s, t.SampledType), t.Dim)
		if t.Arrayed {
			out += ", arrayed"
		}
		if t.MS {
			out += ", multisampled"
		}
		return out + ">"
	case resolve.SamplerType:
		return "sampler"
	case resolve.SampledImageType:
		return fmt.Sprintf("sampled_image<%s>", ref(s, t.Image))
	}
	return fmt.Sprintf("%T", t)
}
