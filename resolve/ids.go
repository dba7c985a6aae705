package resolve

import (
	"fmt"

	"github.com/gogpu/spvfront/spirv"
)

// IDTable maps identifiers to entities. Identifiers are valid in
// [1, bound); storage grows on demand rather than up front, so a huge
// declared bound costs nothing until identifiers are actually defined.
type IDTable struct {
	bound   uint32
	entries []Entity
	count   int
}

// NewIDTable creates an empty table for identifiers below bound.
func NewIDTable(bound uint32) *IDTable {
	return &IDTable{bound: bound}
}

// Bound returns the exclusive upper bound on identifiers.
func (t *IDTable) Bound() uint32 { return t.bound }

// Len returns the number of defined identifiers.
func (t *IDTable) Len() int { return t.count }

func (t *IDTable) check(id ID) error {
	if id == 0 || uint32(id) >= t.bound {
		return fmt.Errorf("%w: %%%d (bound %d)", ErrIDOutOfRange, id, t.bound)
	}
	return nil
}

// Define binds id to e. Redefining an id at the instruction that already
// defined it is a no-op; any other redefinition fails.
func (t *IDTable) Define(id ID, e Entity) error {
	if err := t.check(id); err != nil {
		return err
	}
	if int(id) < len(t.entries) {
		if prev := t.entries[id]; prev != nil {
			if prev.Index() == e.Index() {
				return nil
			}
			return fmt.Errorf("%w: %%%d already defined as %s at %s",
				ErrDuplicateDefinition, id, prev.Kind(), prev.Index())
		}
	} else {
		grow := int(id) + 1
		if grow < 2*len(t.entries) {
			grow = 2 * len(t.entries)
		}
		if grow > int(t.bound) {
			grow = int(t.bound)
		}
		entries := make([]Entity, grow)
		copy(entries, t.entries)
		t.entries = entries
	}
	t.entries[id] = e
	t.count++
	return nil
}

// Entity returns the entity bound to id, or nil if id is undefined.
func (t *IDTable) Entity(id ID) (Entity, error) {
	if err := t.check(id); err != nil {
		return nil, err
	}
	if int(id) >= len(t.entries) {
		return nil, nil
	}
	return t.entries[id], nil
}

// IsDefinedAt reports whether id is defined by the instruction at index.
func (t *IDTable) IsDefinedAt(id ID, index spirv.InstructionIndex) bool {
	e, err := t.Entity(id)
	return err == nil && e != nil && e.Index() == index
}

// Each calls fn for every defined identifier in ascending order until fn
// returns false.
func (t *IDTable) Each(fn func(ID, Entity) bool) {
	for i, e := range t.entries {
		if e == nil {
			continue
		}
		if !fn(ID(i), e) {
			return
		}
	}
}

// EntitySource is anything that resolves identifiers to entities.
// *IDTable and *Stage implement it.
type EntitySource interface {
	Entity(id ID) (Entity, error)
}

// Lookup returns the entity at id narrowed to E. ok is false if id is
// undefined; a defined entity of another kind is an error.
func Lookup[E Entity](src EntitySource, id ID) (e E, ok bool, err error) {
	stored, err := src.Entity(id)
	if err != nil || stored == nil {
		return e, false, err
	}
	e, ok = stored.(E)
	if !ok {
		return e, false, fmt.Errorf("%w: %%%d is a %s, want %s",
			ErrWrongEntityKind, id, stored.Kind(), kindName[E]())
	}
	return e, true, nil
}

// Get returns the entity at id narrowed to E, failing if it is undefined.
func Get[E Entity](src EntitySource, id ID) (E, error) {
	e, ok, err := Lookup[E](src, id)
	if err != nil {
		return e, err
	}
	if !ok {
		return e, fmt.Errorf("%w: %%%d", ErrUndefinedID, id)
	}
	return e, nil
}

func kindName[E Entity]() string {
	var zero E
	if any(zero) == nil {
		return "entity"
	}
	return zero.Kind().String()
}
