// Package set provides a small generic hash set with the algebra used by the
// feasibility checks.
package set

import (
	"cmp"
	"slices"
)

type Set[T comparable] map[T]struct{}

func Of[T comparable](values ...T) Set[T] {
	s := make(Set[T], len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s Set[T]) Add(v T) { s[v] = struct{}{} }

func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

func (s Set[T]) Len() int { return len(s) }

// Intersection returns the elements present in both sets. It walks the
// smaller of the two.
func Intersection[T comparable](a, b Set[T]) Set[T] {
	if len(a) > len(b) {
		a, b = b, a
	}
	out := make(Set[T], len(a))
	for v := range a {
		if b.Has(v) {
			out[v] = struct{}{}
		}
	}
	return out
}

// Difference returns the elements of a that are not in b.
func Difference[T comparable](a, b Set[T]) Set[T] {
	out := make(Set[T])
	for v := range a {
		if !b.Has(v) {
			out[v] = struct{}{}
		}
	}
	return out
}

func Union[T comparable](a, b Set[T]) Set[T] {
	out := make(Set[T], len(a)+len(b))
	for v := range a {
		out[v] = struct{}{}
	}
	for v := range b {
		out[v] = struct{}{}
	}
	return out
}

// Sorted returns the elements of s in ascending order.
func Sorted[T cmp.Ordered](s Set[T]) []T {
	out := make([]T, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
