package set

import (
	"slices"
	"testing"
)

func TestAlgebra(t *testing.T) {
	t.Parallel()

	a := Of[uint](1, 2, 3, 4)
	b := Of[uint](3, 4, 5)

	tests := []struct {
		name string
		got  Set[uint]
		want []uint
	}{
		{"intersection", Intersection(a, b), []uint{3, 4}},
		{"intersection is symmetric", Intersection(b, a), []uint{3, 4}},
		{"difference", Difference(a, b), []uint{1, 2}},
		{"reverse difference", Difference(b, a), []uint{5}},
		{"union", Union(a, b), []uint{1, 2, 3, 4, 5}},
		{"empty intersection", Intersection(a, Of[uint]()), []uint{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Sorted(tt.got); !slices.Equal(got, tt.want) {
				t.Fatalf("%s = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestAddAndHas(t *testing.T) {
	t.Parallel()

	s := Of[string]()
	if s.Has("salt") {
		t.Fatal("expected empty set to report no members")
	}
	s.Add("salt")
	s.Add("salt")
	if !s.Has("salt") || s.Len() != 1 {
		t.Fatalf("expected one member after duplicate adds, got %v", Sorted(s))
	}
}
