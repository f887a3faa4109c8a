package spatial

import (
	"github.com/lao-tseu-is-alive/go-swarm-contagion/pkg/geometry"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// kdPoint is a position tagged with the index it was built from.
type kdPoint struct {
	id  int
	pos geometry.Vector2D
}

func (p kdPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(kdPoint)
	if d == 0 {
		return p.pos.X - q.pos.X
	}
	return p.pos.Y - q.pos.Y
}

func (p kdPoint) Dims() int { return 2 }

// Distance is the squared Euclidean distance, as kdtree keepers expect.
func (p kdPoint) Distance(c kdtree.Comparable) float64 {
	return p.pos.DistanceSquaredTo(c.(kdPoint).pos)
}

type kdPoints []kdPoint

func (p kdPoints) Index(i int) kdtree.Comparable         { return p[i] }
func (p kdPoints) Len() int                              { return len(p) }
func (p kdPoints) Pivot(d kdtree.Dim) int                { return kdPlane{dim: d, points: p}.Pivot() }
func (p kdPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

// kdPlane sorts points along one dimension while the tree is built.
type kdPlane struct {
	dim    kdtree.Dim
	points kdPoints
}

func (p kdPlane) Len() int { return len(p.points) }
func (p kdPlane) Less(i, j int) bool {
	return p.points[i].Compare(p.points[j], p.dim) < 0
}
func (p kdPlane) Swap(i, j int) { p.points[i], p.points[j] = p.points[j], p.points[i] }
func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	return kdPlane{dim: p.dim, points: p.points[start:end]}
}
func (p kdPlane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }

// KDTree is a balanced k-d tree over a fixed set of positions.
type KDTree struct {
	points kdPoints
	tree   *kdtree.Tree
}

// NewKDTree builds the tree. The input slice is copied and left untouched.
func NewKDTree(positions []geometry.Vector2D) *KDTree {
	points := make(kdPoints, len(positions))
	for i, pos := range positions {
		points[i] = kdPoint{id: i, pos: pos}
	}
	t := &KDTree{points: make(kdPoints, len(points))}
	copy(t.points, points)
	if len(points) > 0 {
		// kdtree.New reorders its input while partitioning
		t.tree = kdtree.New(points, false)
	}
	return t
}

func (t *KDTree) Len() int { return len(t.points) }

// PairsWithin runs one bounded nearest-set query per point and keeps the
// half of each symmetric result where the neighbour has the larger index.
func (t *KDTree) PairsWithin(radius float64) []Pair {
	if len(t.points) < 2 {
		return nil
	}
	var pairs []Pair
	for _, p := range t.points {
		keep := kdtree.NewDistKeeper(radius * radius)
		t.tree.NearestSet(keep, p)
		for _, c := range keep.Heap {
			// the keeper may retain its sentinel when a real point ties with it
			q, ok := c.Comparable.(kdPoint)
			if !ok || q.id <= p.id {
				continue
			}
			pairs = append(pairs, Pair{A: p.id, B: q.id})
		}
	}
	sortPairs(pairs)
	return pairs
}
