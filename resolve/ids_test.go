package resolve

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/spvfront/spirv"
)

func TestIDTable_Define(t *testing.T) {
	tbl := NewIDTable(8)

	if err := tbl.Define(3, &String{Defined: Defined{5}, Value: "a"}); err != nil {
		t.Fatalf("Define: %v", err)
	}
	if tbl.Len() != 1 {
		t.Errorf("Len: got %d, want 1", tbl.Len())
	}

	e, err := tbl.Entity(3)
	if err != nil {
		t.Fatalf("Entity: %v", err)
	}
	if e.Kind() != KindString || e.Index() != 5 {
		t.Errorf("got %s at %s, want string at word 5", e.Kind(), e.Index())
	}

	e, err = tbl.Entity(4)
	if err != nil || e != nil {
		t.Errorf("undefined id: got (%v, %v), want (nil, nil)", e, err)
	}

	if !tbl.IsDefinedAt(3, 5) {
		t.Errorf("IsDefinedAt(%%3, %s) = false", spirv.InstructionIndex(5))
	}
	for _, c := range []struct {
		id    ID
		index spirv.InstructionIndex
	}{{3, 6}, {4, 5}, {0, 5}, {9, 5}} {
		if tbl.IsDefinedAt(c.id, c.index) {
			t.Errorf("IsDefinedAt(%%%d, %s) = true", c.id, c.index)
		}
	}
}

func TestIDTable_Range(t *testing.T) {
	tbl := NewIDTable(4)

	tests := []struct {
		id   ID
		fail bool
	}{
		{0, true},
		{1, false},
		{3, false},
		{4, true},
		{1 << 20, true},
	}
	for _, tt := range tests {
		err := tbl.Define(tt.id, &Label{Defined: Defined{10}})
		if got := errors.Is(err, ErrIDOutOfRange); got != tt.fail {
			t.Errorf("Define(%%%d): got %v, want out of range %v", tt.id, err, tt.fail)
		}
		if _, err := tbl.Entity(tt.id); errors.Is(err, ErrIDOutOfRange) != tt.fail {
			t.Errorf("Entity(%%%d): got %v, want out of range %v", tt.id, err, tt.fail)
		}
	}
}

func TestIDTable_Redefine(t *testing.T) {
	tbl := NewIDTable(8)
	first := &Type{Defined: Defined{7}, Inner: VoidType{}}
	if err := tbl.Define(2, first); err != nil {
		t.Fatalf("Define: %v", err)
	}

	// Same defining instruction: no-op.
	if err := tbl.Define(2, &Type{Defined: Defined{7}, Inner: BoolType{}}); err != nil {
		t.Errorf("redefinition at same index: %v", err)
	}
	if tbl.Len() != 1 {
		t.Errorf("Len: got %d, want 1", tbl.Len())
	}
	if e, _ := tbl.Entity(2); e != first {
		t.Error("redefinition at same index replaced the entity")
	}

	err := tbl.Define(2, &Type{Defined: Defined{9}, Inner: BoolType{}})
	if !errors.Is(err, ErrDuplicateDefinition) {
		t.Fatalf("got %v, want ErrDuplicateDefinition", err)
	}
	if !strings.Contains(err.Error(), "word 7") {
		t.Errorf("message %q does not name the first definition", err)
	}
}

func TestIDTable_LazyStorage(t *testing.T) {
	tbl := NewIDTable(1 << 30)
	if err := tbl.Define(5, &Label{Defined: Defined{5}}); err != nil {
		t.Fatalf("Define: %v", err)
	}
	if n := len(tbl.entries); n > 16 {
		t.Errorf("storage grew to %d entries for id 5", n)
	}
	if tbl.Bound() != 1<<30 {
		t.Errorf("Bound: got %d", tbl.Bound())
	}
}

func TestIDTable_Each(t *testing.T) {
	tbl := NewIDTable(16)
	for i, id := range []ID{9, 2, 5} {
		if err := tbl.Define(id, &Label{Defined: Defined{spirv.InstructionIndex(100 + i)}}); err != nil {
			t.Fatal(err)
		}
	}

	var got []ID
	tbl.Each(func(id ID, _ Entity) bool {
		got = append(got, id)
		return true
	})
	if len(got) != 3 || got[0] != 2 || got[1] != 5 || got[2] != 9 {
		t.Errorf("Each order: got %v, want [2 5 9]", got)
	}

	calls := 0
	tbl.Each(func(ID, Entity) bool {
		calls++
		return false
	})
	if calls != 1 {
		t.Errorf("Each did not stop early: %d calls", calls)
	}
}

func TestLookup(t *testing.T) {
	tbl := NewIDTable(8)
	if err := tbl.Define(1, &Type{Defined: Defined{5}, Inner: FloatType{Width: 32}}); err != nil {
		t.Fatal(err)
	}

	typ, ok, err := Lookup[*Type](tbl, 1)
	if err != nil || !ok {
		t.Fatalf("Lookup type: ok=%v err=%v", ok, err)
	}
	if ft, isFloat := typ.Inner.(FloatType); !isFloat || ft.Width != 32 {
		t.Errorf("Inner: got %#v", typ.Inner)
	}

	_, ok, err = Lookup[*Type](tbl, 2)
	if ok || err != nil {
		t.Errorf("undefined: got ok=%v err=%v, want false, nil", ok, err)
	}

	_, _, err = Lookup[*Function](tbl, 1)
	if !errors.Is(err, ErrWrongEntityKind) {
		t.Fatalf("got %v, want ErrWrongEntityKind", err)
	}
	if !strings.Contains(err.Error(), "is a type, want function") {
		t.Errorf("message: %q", err)
	}

	e, ok, err := Lookup[Entity](tbl, 1)
	if err != nil || !ok || e.Kind() != KindType {
		t.Errorf("Lookup[Entity]: got (%v, %v, %v)", e, ok, err)
	}
}

func TestGet(t *testing.T) {
	tbl := NewIDTable(8)
	if err := tbl.Define(1, &Constant{Defined: Defined{5}}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		get  func() error
		want error
	}{
		{"defined", func() error { _, err := Get[*Constant](tbl, 1); return err }, nil},
		{"undefined", func() error { _, err := Get[*Constant](tbl, 2); return err }, ErrUndefinedID},
		{"wrong kind", func() error { _, err := Get[*Variable](tbl, 1); return err }, ErrWrongEntityKind},
		{"out of range", func() error { _, err := Get[*Constant](tbl, 8); return err }, ErrIDOutOfRange},
		{"zero", func() error { _, err := Get[*Constant](tbl, 0); return err }, ErrIDOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.get()
			if tt.want == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}
