package resolve

import (
	"fmt"
	"strings"

	"github.com/gogpu/spvfront/spirv"
)

// EntryPoint is one OpEntryPoint together with its execution modes.
type EntryPoint struct {
	Index     spirv.InstructionIndex
	Model     spirv.ExecutionModel
	Function  ID
	Name      string
	Interface []ID
	Modes     []ExecutionMode
}

// ExecutionMode is one OpExecutionMode or OpExecutionModeId.
type ExecutionMode struct {
	Index    spirv.InstructionIndex
	Mode     spirv.ExecutionMode
	Operands []uint32
}

// SourceInfo collects the OpSource family of debug instructions.
type SourceInfo struct {
	Language   spirv.SourceLanguage
	Version    uint32
	File       ID
	Text       string
	Extensions []string
	Processes  []string // OpModuleProcessed, in order
}

// Stage is the translation state for one execution model. It is built
// by a Dispatcher and frozen once dispatch completes; a frozen stage is
// read-only and safe to share between goroutines.
type Stage struct {
	Model spirv.ExecutionModel

	moduleName string
	version    spirv.Version
	ids        *IDTable
	names      map[ID]string
	members    map[memberKey]string

	decorations  decorations
	capabilities *CapabilitySet
	loc          locationTracker

	source      SourceInfo
	sourceText  strings.Builder
	entryPoints []EntryPoint

	addressing  spirv.AddressingModel
	memory      spirv.MemoryModel
	hasMemModel bool

	function ID // function being defined, zero outside functions
	frozen   bool
}

// NewStage creates empty state for model over the given module header.
func NewStage(name string, header spirv.Header, model spirv.ExecutionModel) *Stage {
	return &Stage{
		Model:        model,
		moduleName:   name,
		version:      header.Version,
		ids:          NewIDTable(header.Bound),
		names:        make(map[ID]string),
		members:      make(map[memberKey]string),
		decorations:  newDecorations(),
		capabilities: NewCapabilitySet(nil),
	}
}

func (s *Stage) mutable() {
	if s.frozen {
		panic(fmt.Sprintf("resolve: %s stage is frozen", s.Model))
	}
}

// freeze finishes the stage. Entry point functions are resolved here
// since OpEntryPoint precedes the functions it names.
func (s *Stage) freeze() error {
	s.source.Text = s.sourceText.String()
	for _, ep := range s.entryPoints {
		if _, err := Get[*Function](s.ids, ep.Function); err != nil {
			return newError(fmt.Errorf("entry point %q: %w", ep.Name, err), ep.Index, s.Location(ep.Index))
		}
	}
	s.frozen = true
	return nil
}

// Frozen reports whether dispatch has completed.
func (s *Stage) Frozen() bool { return s.frozen }

// ModuleName returns the name diagnostics use for the module.
func (s *Stage) ModuleName() string { return s.moduleName }

// Version returns the module's SPIR-V version.
func (s *Stage) Version() spirv.Version { return s.version }

// IDs returns the identifier table.
func (s *Stage) IDs() *IDTable { return s.ids }

// Entity implements EntitySource.
func (s *Stage) Entity(id ID) (Entity, error) {
	return s.ids.Entity(id)
}

// SetID defines id. It fails the same way IDTable.Define does.
func (s *Stage) SetID(id ID, e Entity) error {
	s.mutable()
	return s.ids.Define(id, e)
}

// Name returns the OpName of id, or def if it has none.
func (s *Stage) Name(id ID, def string) string {
	if n, ok := s.names[id]; ok {
		return n
	}
	return def
}

// MemberName returns the OpMemberName of a struct member, or def.
func (s *Stage) MemberName(id ID, member uint32, def string) string {
	if n, ok := s.members[memberKey{id, member}]; ok {
		return n
	}
	return def
}

// Capabilities returns the enabled capability set.
func (s *Stage) Capabilities() *CapabilitySet { return s.capabilities }

// Source returns the recorded OpSource information.
func (s *Stage) Source() SourceInfo { return s.source }

// MemoryModel returns the operands of OpMemoryModel, if present.
func (s *Stage) MemoryModel() (spirv.AddressingModel, spirv.MemoryModel, bool) {
	return s.addressing, s.memory, s.hasMemModel
}

// AllEntryPoints returns every entry point in the module.
func (s *Stage) AllEntryPoints() []EntryPoint { return s.entryPoints }

// EntryPoints returns the entry points of this stage's execution model.
func (s *Stage) EntryPoints() []EntryPoint {
	var eps []EntryPoint
	for _, ep := range s.entryPoints {
		if ep.Model == s.Model {
			eps = append(eps, ep)
		}
	}
	return eps
}

// EntryPoint finds the entry point of this stage's model called name.
func (s *Stage) EntryPoint(name string) (EntryPoint, error) {
	for _, ep := range s.entryPoints {
		if ep.Model == s.Model && ep.Name == name {
			return ep, nil
		}
	}
	return EntryPoint{}, fmt.Errorf("%w: %s %q", ErrEntryPointNotFound, s.Model, name)
}

// requireType resolves id as a type and returns its inner kind.
func (s *Stage) requireType(id ID) (TypeInner, error) {
	t, err := Get[*Type](s.ids, id)
	if err != nil {
		return nil, err
	}
	return t.Inner, nil
}
