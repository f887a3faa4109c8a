package simulation

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/lao-tseu-is-alive/go-swarm-contagion/pkg/geometry"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// defaultKMeansTolerance bounds the summed squared centre shift that ends
// Lloyd iterations early.
const defaultKMeansTolerance = 1e-8

// KMeans partitions 2-D points into K groups with k-means++ seeding and
// Lloyd iterations. All randomness comes from src, so a seeded source gives
// reproducible labels.
type KMeans struct {
	K             int
	Restarts      int
	MaxIterations int
	Tolerance     float64
	src           *rand.Rand
}

func NewKMeans(k, restarts, maxIterations int, src *rand.Rand) *KMeans {
	return &KMeans{
		K:             k,
		Restarts:      max(restarts, 1),
		MaxIterations: max(maxIterations, 1),
		Tolerance:     defaultKMeansTolerance,
		src:           src,
	}
}

// Fit returns a label in [0, K) for every point, keeping the restart with
// the lowest inertia. Callers must not pass fewer points than K.
func (km *KMeans) Fit(points []geometry.Vector2D) []int {
	if len(points) == 0 {
		return nil
	}
	var best []int
	bestInertia := math.Inf(1)
	for r := 0; r < km.Restarts; r++ {
		labels, inertia := km.run(points)
		if inertia < bestInertia {
			best, bestInertia = labels, inertia
		}
	}
	return best
}

func (km *KMeans) run(points []geometry.Vector2D) ([]int, float64) {
	centers := km.seed(points)
	labels := make([]int, len(points))
	for iter := 0; iter < km.MaxIterations; iter++ {
		assignNearest(points, centers, labels)
		if shift := km.recenter(points, centers, labels); shift <= km.Tolerance {
			break
		}
	}
	assignNearest(points, centers, labels)
	return labels, inertia(points, centers, labels)
}

// seed picks initial centres with k-means++: each new centre is drawn with
// probability proportional to its squared distance to the closest centre so far.
func (km *KMeans) seed(points []geometry.Vector2D) []geometry.Vector2D {
	k := min(km.K, len(points))
	centers := make([]geometry.Vector2D, 0, k)
	centers = append(centers, points[km.src.IntN(len(points))])

	nearest := make([]float64, len(points))
	for i, p := range points {
		nearest[i] = p.DistanceSquaredTo(centers[0])
	}
	for len(centers) < k {
		var next int
		if floats.Sum(nearest) > 0 {
			next = int(distuv.NewCategorical(slices.Clone(nearest), km.src).Rand())
		} else {
			// every point sits on a centre already
			next = km.src.IntN(len(points))
		}
		c := points[next]
		centers = append(centers, c)
		for i, p := range points {
			nearest[i] = math.Min(nearest[i], p.DistanceSquaredTo(c))
		}
	}
	return centers
}

// recenter moves each centre to the mean of its members and returns the
// summed squared displacement. An empty cluster takes over the point that
// is currently worst served by its own centre.
func (km *KMeans) recenter(points []geometry.Vector2D, centers []geometry.Vector2D, labels []int) float64 {
	members := make([][]geometry.Vector2D, len(centers))
	for i, p := range points {
		members[labels[i]] = append(members[labels[i]], p)
	}
	shift := 0.0
	for c := range centers {
		var next geometry.Vector2D
		if len(members[c]) > 0 {
			next = geometry.Mean(members[c])
		} else {
			far := farthestPoint(points, centers, labels)
			labels[far] = c
			next = points[far]
		}
		shift += next.DistanceSquaredTo(centers[c])
		centers[c] = next
	}
	return shift
}

func assignNearest(points []geometry.Vector2D, centers []geometry.Vector2D, labels []int) {
	for i, p := range points {
		best, bestDist := 0, math.Inf(1)
		for c, center := range centers {
			if d := p.DistanceSquaredTo(center); d < bestDist {
				best, bestDist = c, d
			}
		}
		labels[i] = best
	}
}

func farthestPoint(points []geometry.Vector2D, centers []geometry.Vector2D, labels []int) int {
	far, farDist := 0, -1.0
	for i, p := range points {
		if d := p.DistanceSquaredTo(centers[labels[i]]); d > farDist {
			far, farDist = i, d
		}
	}
	return far
}

func inertia(points []geometry.Vector2D, centers []geometry.Vector2D, labels []int) float64 {
	dists := make([]float64, len(points))
	for i, p := range points {
		dists[i] = p.DistanceSquaredTo(centers[labels[i]])
	}
	return floats.Sum(dists)
}
