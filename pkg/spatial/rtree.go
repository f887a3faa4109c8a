package spatial

import (
	"github.com/dhconnelly/rtreego"
	"github.com/lao-tseu-is-alive/go-swarm-contagion/pkg/geometry"
)

const (
	rtreeMinChildren = 25
	rtreeMaxChildren = 50
	// side of the degenerate box stored for each point
	pointTolerance = 0.005
)

type rtreeEntry struct {
	id     int
	pos    geometry.Vector2D
	bounds rtreego.Rect
}

func (e *rtreeEntry) Bounds() rtreego.Rect { return e.bounds }

// RTree answers the same queries as KDTree with an R-tree broad phase
// followed by an exact distance check.
type RTree struct {
	entries []*rtreeEntry
	tree    *rtreego.Rtree
}

// NewRTree bulk-loads the positions into an R-tree.
func NewRTree(positions []geometry.Vector2D) *RTree {
	entries := make([]*rtreeEntry, len(positions))
	spatials := make([]rtreego.Spatial, len(positions))
	for i, pos := range positions {
		e := &rtreeEntry{
			id:     i,
			pos:    pos,
			bounds: rtreego.Point{pos.X, pos.Y}.ToRect(pointTolerance),
		}
		entries[i] = e
		spatials[i] = e
	}
	return &RTree{
		entries: entries,
		tree:    rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren, spatials...),
	}
}

func (t *RTree) Len() int { return len(t.entries) }

func (t *RTree) PairsWithin(radius float64) []Pair {
	if len(t.entries) < 2 {
		return nil
	}
	radiusSq := radius * radius
	var pairs []Pair
	for _, e := range t.entries {
		bb, err := rtreego.NewRect(
			rtreego.Point{e.pos.X - radius, e.pos.Y - radius},
			[]float64{2 * radius, 2 * radius},
		)
		if err != nil {
			// only a non-positive radius gets here, and that matches nothing but
			// exact duplicates; fall back to a linear scan for them
			pairs = append(pairs, t.duplicatesOf(e)...)
			continue
		}
		for _, s := range t.tree.SearchIntersect(bb) {
			other := s.(*rtreeEntry)
			if other.id <= e.id {
				continue
			}
			if e.pos.DistanceSquaredTo(other.pos) <= radiusSq {
				pairs = append(pairs, Pair{A: e.id, B: other.id})
			}
		}
	}
	sortPairs(pairs)
	return pairs
}

func (t *RTree) duplicatesOf(e *rtreeEntry) []Pair {
	var pairs []Pair
	for _, other := range t.entries {
		if other.id > e.id && other.pos == e.pos {
			pairs = append(pairs, Pair{A: e.id, B: other.id})
		}
	}
	return pairs
}
