// Package spatial answers proximity queries over a set of 2-D points.
// An Index is built from a snapshot of positions and is never updated:
// when positions move, build a new one.
package spatial

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/lao-tseu-is-alive/go-swarm-contagion/pkg/geometry"
)

// Kind selects the data structure backing an Index.
type Kind string

const (
	KindKDTree Kind = "kdtree"
	KindRTree  Kind = "rtree"
)

var ErrUnknownKind = errors.New("unknown spatial index kind")

// Pair is an unordered pair of point indexes, normalised so that A < B.
type Pair struct {
	A, B int
}

// Index finds every pair of points within a given Euclidean distance.
type Index interface {
	// PairsWithin returns each unordered pair whose distance is <= radius
	// exactly once. Fewer than two points yield no pairs.
	PairsWithin(radius float64) []Pair
	Len() int
}

// Builder creates an Index over points. Point i of the slice is reported
// as index i in the resulting pairs.
type Builder func(points []geometry.Vector2D) Index

// BuilderFor returns the Builder registered for kind.
func BuilderFor(kind Kind) (Builder, error) {
	switch kind {
	case KindKDTree, "":
		return func(points []geometry.Vector2D) Index { return NewKDTree(points) }, nil
	case KindRTree:
		return func(points []geometry.Vector2D) Index { return NewRTree(points) }, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Neighbors expands pairs into per-point adjacency lists for n points.
func Neighbors(pairs []Pair, n int) [][]int {
	adj := make([][]int, n)
	for _, p := range pairs {
		adj[p.A] = append(adj[p.A], p.B)
		adj[p.B] = append(adj[p.B], p.A)
	}
	return adj
}

// sortPairs gives query results a stable order so that downstream float
// accumulation does not depend on tree traversal order.
func sortPairs(pairs []Pair) {
	slices.SortFunc(pairs, func(p, q Pair) int {
		if c := cmp.Compare(p.A, q.A); c != 0 {
			return c
		}
		return cmp.Compare(p.B, q.B)
	})
}
