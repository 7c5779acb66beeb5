package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimitiveEquals(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Type
		expected bool
	}{
		{"int equals int", Int, Int, true},
		{"bool equals bool", Bool, Bool, true},
		{"string equals string", String, String, true},
		{"void equals void", Void, Void, true},
		{"int not equal bool", Int, Bool, false},
		{"int not equal string", Int, String, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Equals(tt.b))
		})
	}
}

func TestErrorIsUnequalToEverything(t *testing.T) {
	others := []Type{Int, Bool, Void, String, Error, NewStructValue("Foo", 1), NewStructDef("Foo", 1), NewFn(nil, Void)}
	for _, o := range others {
		assert.False(t, Error.Equals(o), "Error must not equal %s", o)
	}
}

func TestStructValueEqualsByIdentity(t *testing.T) {
	idA := new(int)
	idB := new(int)

	a1 := NewStructValue("Foo", idA)
	a2 := NewStructValue("Foo", idA)
	b := NewStructValue("Foo", idB)

	assert.True(t, a1.Equals(a2), "same identity should be equal even with same name")
	assert.False(t, a1.Equals(b), "different identity must not be equal despite identical name")
}

func TestStructValueAndStructDefAreDistinctKinds(t *testing.T) {
	id := new(int)
	value := NewStructValue("Foo", id)
	def := NewStructDef("Foo", id)

	assert.False(t, value.Equals(def))
	assert.False(t, def.Equals(value))
}

func TestFnEqualsStructural(t *testing.T) {
	f1 := NewFn([]Type{Int, Bool}, Void)
	f2 := NewFn([]Type{Int, Bool}, Void)
	f3 := NewFn([]Type{Int}, Void)

	assert.True(t, f1.Equals(f2))
	assert.False(t, f1.Equals(f3))
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsInt(Int))
	assert.True(t, IsBool(Bool))
	assert.True(t, IsString(String))
	assert.True(t, IsVoid(Void))
	assert.True(t, IsError(Error))
	assert.True(t, IsStructValue(NewStructValue("Foo", 1)))
	assert.True(t, IsStructDef(NewStructDef("Foo", 1)))
	assert.True(t, IsFn(NewFn(nil, Int)))

	assert.False(t, IsInt(Bool))
	assert.False(t, IsFn(Int))
}

func TestFnString(t *testing.T) {
	f := NewFn([]Type{Int, String}, Bool)
	assert.Equal(t, "fn(int, string) bool", f.String())
}
