package symtab

import (
	"testing"

	"github.com/hassandahiru/minic/internal/lexer"
	"github.com/hassandahiru/minic/internal/semantic/types"
)

func TestSymbol_String(t *testing.T) {
	symbol := &Symbol{
		Name:    "x",
		Type:    types.Int,
		Storage: Local,
		Pos:     lexer.Position{Filename: "test.go", Line: 1, Column: 5},
	}

	expected := "local x: int at test.go:1:5"
	result := symbol.String()
	if result != expected {
		t.Errorf("Symbol.String() = %q, want %q", result, expected)
	}
}

func TestTable_PushPopScope(t *testing.T) {
	tab := New()
	if tab.Depth() != 0 {
		t.Fatalf("expected depth 0, got %d", tab.Depth())
	}

	tab.PushScope()
	if tab.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", tab.Depth())
	}

	if _, err := tab.PopScope(); err != nil {
		t.Fatalf("unexpected error popping non-empty table: %v", err)
	}
	if tab.Depth() != 0 {
		t.Fatalf("expected depth 0 after pop, got %d", tab.Depth())
	}

	if _, err := tab.PopScope(); err != ErrEmptyTable {
		t.Fatalf("expected ErrEmptyTable popping an empty table, got %v", err)
	}
}

func TestTable_InsertLocalRejectsDuplicateInInnermost(t *testing.T) {
	tab := New()
	tab.PushScope()

	sym := &Symbol{Name: "x", Type: types.Int}
	if err := tab.InsertLocal("x", sym); err != nil {
		t.Fatalf("expected no error on first insert, got %v", err)
	}

	dup := &Symbol{Name: "x", Type: types.Bool}
	if err := tab.InsertLocal("x", dup); err != ErrDuplicate {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestTable_InsertLocalDoesNotShadowCheckOuterScopes(t *testing.T) {
	tab := New()
	tab.PushScope() // outer
	if err := tab.InsertLocal("x", &Symbol{Name: "x", Type: types.Int}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tab.PushScope() // inner

	// Re-declaring "x" in the inner scope must succeed — only the
	// innermost scope's own duplicates are rejected.
	if err := tab.InsertLocal("x", &Symbol{Name: "x", Type: types.Bool}); err != nil {
		t.Fatalf("expected shadowing to be allowed, got %v", err)
	}
}

func TestTable_LookupLocalOnlyChecksInnermost(t *testing.T) {
	tab := New()
	tab.PushScope()
	tab.InsertLocal("x", &Symbol{Name: "x", Type: types.Int})
	tab.PushScope()
	tab.InsertLocal("y", &Symbol{Name: "y", Type: types.Bool})

	if _, ok := tab.LookupLocal("y"); !ok {
		t.Error("expected to find y in innermost scope")
	}
	if _, ok := tab.LookupLocal("x"); ok {
		t.Error("expected LookupLocal to not find x declared in an outer scope")
	}
}

func TestTable_LookupGlobalScansInnermostOutward(t *testing.T) {
	tab := New()
	tab.PushScope()
	tab.InsertLocal("x", &Symbol{Name: "x", Type: types.Int})
	tab.PushScope()
	tab.InsertLocal("y", &Symbol{Name: "y", Type: types.Bool})

	if sym, ok := tab.LookupGlobal("y"); !ok || sym.Name != "y" {
		t.Error("expected to find y via LookupGlobal")
	}
	if sym, ok := tab.LookupGlobal("x"); !ok || sym.Name != "x" {
		t.Error("expected to find outer-scope x via LookupGlobal")
	}
	if _, ok := tab.LookupGlobal("z"); ok {
		t.Error("expected LookupGlobal to miss an undeclared name")
	}
}

func TestTable_LookupGlobalPrefersInnermostOnShadow(t *testing.T) {
	tab := New()
	tab.PushScope()
	tab.InsertLocal("x", &Symbol{Name: "x", Type: types.Int})
	tab.PushScope()
	tab.InsertLocal("x", &Symbol{Name: "x", Type: types.Bool})

	sym, ok := tab.LookupGlobal("x")
	if !ok {
		t.Fatal("expected to find x")
	}
	if !types.IsBool(sym.Type) {
		t.Errorf("expected the innermost x (bool) to shadow the outer one, got %s", sym.Type)
	}
}

func TestTable_InnermostNamesPreservesInsertionOrder(t *testing.T) {
	tab := New()
	tab.PushScope()
	tab.InsertLocal("b", &Symbol{Name: "b", Type: types.Int})
	tab.InsertLocal("a", &Symbol{Name: "a", Type: types.Int})
	tab.InsertLocal("c", &Symbol{Name: "c", Type: types.Int})

	names := tab.InnermostNames()
	expected := []string{"b", "a", "c"}
	if len(names) != len(expected) {
		t.Fatalf("expected %d names, got %d", len(expected), len(names))
	}
	for i, n := range expected {
		if names[i] != n {
			t.Errorf("names[%d] = %q, want %q", i, names[i], n)
		}
	}
}

func TestDefArena_AddAndGet(t *testing.T) {
	arena := NewDefArena()
	def1 := &StructDefSymbol{Name: "Foo"}
	def2 := &StructDefSymbol{Name: "Bar"}

	i1 := arena.Add(def1)
	i2 := arena.Add(def2)

	if i1 == i2 {
		t.Fatal("expected distinct indices")
	}
	if arena.Get(i1) != def1 {
		t.Error("expected Get(i1) to return def1")
	}
	if arena.Get(i2) != def2 {
		t.Error("expected Get(i2) to return def2")
	}
}

func TestStorage_String(t *testing.T) {
	tests := []struct {
		storage  Storage
		expected string
	}{
		{Global, "global"},
		{Local, "local"},
		{Param, "param"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.storage.String(); got != tt.expected {
				t.Errorf("Storage.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}
