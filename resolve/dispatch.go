package resolve

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/spvfront/spirv"
)

// Handler processes one decoded instruction against the active stage.
type Handler func(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error

// HandlerGroup is a family of opcodes handled together. Groups passed to
// NewDispatcher must claim disjoint opcodes.
type HandlerGroup interface {
	Name() string
	Handlers() map[spirv.OpCode]Handler
}

// Dispatcher routes instructions to handlers by opcode.
type Dispatcher struct {
	handlers map[spirv.OpCode]Handler
	owners   map[spirv.OpCode]string
	groups   []string
}

// NewDispatcher builds the opcode table from groups. It panics if two
// groups claim the same opcode.
func NewDispatcher(groups ...HandlerGroup) *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[spirv.OpCode]Handler),
		owners:   make(map[spirv.OpCode]string),
	}
	for _, g := range groups {
		name := g.Name()
		d.groups = append(d.groups, name)
		for op, h := range g.Handlers() {
			if owner, dup := d.owners[op]; dup {
				panic(fmt.Sprintf("resolve: %s claimed by both %s and %s handler groups", op, owner, name))
			}
			d.handlers[op] = h
			d.owners[op] = name
		}
	}
	return d
}

// Groups returns the default handler groups in dispatch-table order.
func Groups() []HandlerGroup {
	return []HandlerGroup{
		headerGroup{},
		capabilityGroup{},
		extensionGroup{},
		debugGroup{},
		annotationGroup{},
		typeGroup{},
		constantGroup{},
		functionGroup{},
		valueGroup{},
	}
}

var defaultDispatcher = sync.OnceValue(func() *Dispatcher {
	return NewDispatcher(Groups()...)
})

// DefaultDispatcher returns the shared dispatcher built from Groups.
func DefaultDispatcher() *Dispatcher {
	return defaultDispatcher()
}

// Owner returns the name of the group handling op.
func (d *Dispatcher) Owner(op spirv.OpCode) (string, bool) {
	name, ok := d.owners[op]
	return name, ok
}

// GroupNames returns the names of the composed groups.
func (d *Dispatcher) GroupNames() []string {
	return slices.Clone(d.groups)
}

// Dispatch runs the handler for inst. Opcodes outside the grammar fail
// with ErrUnknownOpcode, known opcodes without a handler with
// ErrUnimplementedOpcode.
func (d *Dispatcher) Dispatch(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	s.mutable()
	h, ok := d.handlers[inst.Opcode]
	if !ok {
		if inst.Opcode.Known() {
			return fmt.Errorf("%w: %s", ErrUnimplementedOpcode, inst.Opcode)
		}
		return fmt.Errorf("%w: %d", ErrUnknownOpcode, uint32(inst.Opcode))
	}
	return h(s, inst, index)
}

// Translate builds and freezes the stage for model. On failure the
// partial stage is discarded and the error is an *Error.
func (d *Dispatcher) Translate(m *spirv.Module, model spirv.ExecutionModel) (*Stage, error) {
	s := NewStage(m.Name, m.Header, model)
	dec := spirv.NewDecoder(m)
	for dec.More() {
		inst, index, err := dec.Next()
		if err != nil {
			return nil, newError(err, index, s.Location(index))
		}
		if err := d.Dispatch(s, inst, index); err != nil {
			return nil, newError(err, index, s.Location(index))
		}
	}
	if err := s.freeze(); err != nil {
		return nil, err
	}
	return s, nil
}

// Translate builds the stage for model with the default dispatcher.
func Translate(m *spirv.Module, model spirv.ExecutionModel) (*Stage, error) {
	return DefaultDispatcher().Translate(m, model)
}

// EntryPointModels scans m for OpEntryPoint and returns the distinct
// execution models in first-seen order.
func EntryPointModels(m *spirv.Module) ([]spirv.ExecutionModel, error) {
	var models []spirv.ExecutionModel
	dec := spirv.NewDecoder(m)
	for dec.More() {
		inst, index, err := dec.Next()
		if err != nil {
			return nil, newError(err, index, Location{Module: m.Name, Index: index})
		}
		if inst.Opcode != spirv.OpEntryPoint {
			continue
		}
		ops := inst.Operands()
		model := spirv.ExecutionModel(ops.Word())
		if err := ops.Err(); err != nil {
			return nil, newError(err, index, Location{Module: m.Name, Index: index})
		}
		if !slices.Contains(models, model) {
			models = append(models, model)
		}
	}
	return models, nil
}
