package path

import (
	"testing"
)

func TestEdgeIterCyclic(t *testing.T) {
	edges := CollectEdges(4)

	expected := []Edge{
		{Prev: 3, Cur: 0}, // wrap-around edge comes first
		{Prev: 0, Cur: 1},
		{Prev: 1, Cur: 2},
		{Prev: 2, Cur: 3},
	}

	if len(edges) != len(expected) {
		t.Fatalf("len(edges) = %d, want %d", len(edges), len(expected))
	}
	for i, e := range edges {
		if e != expected[i] {
			t.Errorf("edge %d = %+v, want %+v", i, e, expected[i])
		}
	}
}

func TestEdgeIterInterior(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  []Edge
	}{
		{"two points", 2, nil},
		{"three points", 3, []Edge{{0, 1}}},
		{"five points", 5, []Edge{{0, 1}, {1, 2}, {2, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := NewInteriorEdgeIter(tt.count)
			var got []Edge
			for {
				e, ok := it.Next()
				if !ok {
					break
				}
				got = append(got, e)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("edge %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEdgeIterDegenerate(t *testing.T) {
	for _, n := range []int{-1, 0, 1} {
		if edges := CollectEdges(n); len(edges) != 0 {
			t.Errorf("CollectEdges(%d) = %v, want none", n, edges)
		}
		it := NewInteriorEdgeIter(n)
		if _, ok := it.Next(); ok {
			t.Errorf("NewInteriorEdgeIter(%d) yielded an edge", n)
		}
	}
}
