package types

import "testing"

func TestBaseType_String(t *testing.T) {
	tests := []struct {
		typ      Type
		expected string
	}{
		{Int, "int"},
		{Bool, "bool"},
		{String, "string"},
		{Void, "void"},
		{Null, "null"},
		{Error, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestArray_String(t *testing.T) {
	arr := NewArray(NewArray(Int))
	if got, want := arr.String(), "int[][]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestFunction_String(t *testing.T) {
	fn := NewFunction(Bool, []Type{Int, String})
	if got, want := fn.String(), "(int, string) => bool"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestEq(t *testing.T) {
	animal := NewClass("Animal", nil)
	dog := NewClass("Dog", animal)
	dog2 := NewClass("Dog", animal)

	tests := []struct {
		name     string
		a, b     Type
		expected bool
	}{
		{"same base singleton", Int, Int, true},
		{"different base", Int, Bool, false},
		{"equal array elem", NewArray(Int), NewArray(Int), true},
		{"unequal array elem", NewArray(Int), NewArray(Bool), false},
		{"same class name, different instance", dog, dog2, true},
		{"different class name", dog, animal, false},
		{"equal function", NewFunction(Int, []Type{Bool}), NewFunction(Int, []Type{Bool}), true},
		{"unequal function arity", NewFunction(Int, []Type{Bool}), NewFunction(Int, nil), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Eq(tt.a, tt.b); got != tt.expected {
				t.Errorf("Eq(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestSubtype_Classes(t *testing.T) {
	animal := NewClass("Animal", nil)
	dog := NewClass("Dog", animal)
	cat := NewClass("Cat", animal)

	tests := []struct {
		name     string
		a, b     Type
		expected bool
	}{
		{"dog is-a animal", dog, animal, true},
		{"animal is-a dog", animal, dog, false},
		{"dog is-a dog", dog, dog, true},
		{"cat is-a dog", cat, dog, false},
		{"null is-a animal", Null, animal, true},
		{"null is-a int", Null, Int, false},
		{"error is-a anything", Error, animal, true},
		{"anything is-a error", animal, Error, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Subtype(tt.a, tt.b); got != tt.expected {
				t.Errorf("Subtype(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestSubtype_Functions_Contravariant(t *testing.T) {
	animal := NewClass("Animal", nil)
	dog := NewClass("Dog", animal)

	// A function accepting Animal can be used where one accepting Dog is
	// expected (wider parameter accepts everything the narrower one does).
	wide := NewFunction(Void, []Type{animal})
	narrow := NewFunction(Void, []Type{dog})
	if !Subtype(wide, narrow) {
		t.Error("expected wide (Animal-param) function to be a subtype of narrow (Dog-param)")
	}
	if Subtype(narrow, wide) {
		t.Error("expected narrow (Dog-param) function NOT to be a subtype of wide (Animal-param)")
	}
}

func TestJoin_Classes(t *testing.T) {
	animal := NewClass("Animal", nil)
	dog := NewClass("Dog", animal)
	cat := NewClass("Cat", animal)

	tests := []struct {
		name     string
		ts       []Type
		expected Type
	}{
		{"dog join dog", []Type{dog, dog}, dog},
		{"dog join cat", []Type{dog, cat}, animal},
		{"dog join null", []Type{dog, Null}, dog},
		{"all null", []Type{Null, Null}, Null},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Join(tt.ts); !Eq(got, tt.expected) {
				t.Errorf("Join(%v) = %s, want %s", tt.ts, got, tt.expected)
			}
		})
	}
}

func TestJoin_BaseTypesMismatchIsError(t *testing.T) {
	if got := Join([]Type{Int, Bool}); got != Error {
		t.Errorf("Join(int, bool) = %s, want error", got)
	}
}

func TestMeet_Classes(t *testing.T) {
	animal := NewClass("Animal", nil)
	dog := NewClass("Dog", animal)

	if got := Meet([]Type{animal, dog}); !Eq(got, dog) {
		t.Errorf("Meet(Animal, Dog) = %s, want Dog", got)
	}
}

func TestIsBase(t *testing.T) {
	tests := []struct {
		typ      Type
		expected bool
	}{
		{Int, true},
		{Bool, true},
		{String, true},
		{Void, false},
		{Null, false},
		{Error, false},
		{NewClass("Foo", nil), false},
	}
	for _, tt := range tests {
		if got := IsBase(tt.typ); got != tt.expected {
			t.Errorf("IsBase(%s) = %v, want %v", tt.typ, got, tt.expected)
		}
	}
}
