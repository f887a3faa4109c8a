package simulation

import (
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-swarm-contagion/pkg/geometry"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// clusterStats holds the member means of one cluster for the current tick.
type clusterStats struct {
	pos   geometry.Vector2D
	vel   geometry.Vector2D
	drive float64
}

// ClusterFlock groups agents with k-means on their positions each tick and
// steers every member towards its cluster's centre and mean velocity, plus a
// random push shared by the whole cluster.
type ClusterFlock struct {
	NClusters       int
	CohesionFactor  float64
	AlignmentFactor float64
	DriveSigma      float64
	kmeans          *KMeans
	src             *rand.Rand
}

func NewClusterFlock(cfg *Config, src *rand.Rand) *ClusterFlock {
	return &ClusterFlock{
		NClusters:       cfg.NClusters,
		CohesionFactor:  cfg.ClusterCohesionFactor,
		AlignmentFactor: cfg.ClusterAlignmentFactor,
		DriveSigma:      cfg.ClusterDriveSigma,
		kmeans:          NewKMeans(cfg.NClusters, cfg.KMeansRestarts, cfg.KMeansMaxIterations, src),
		src:             src,
	}
}

func (f *ClusterFlock) Name() string { return "cluster_flock" }

func (f *ClusterFlock) Apply(pop *Population, _ uint64) {
	if pop.Len() == 0 {
		return
	}
	labels := f.kmeans.Fit(pop.Positions())
	stats := f.summarize(pop, labels)

	for i := range pop.Agents {
		a := &pop.Agents[i]
		c := stats[labels[i]]
		cohesion := c.pos.Sub(a.Pos).Mul(f.CohesionFactor)
		alignment := c.vel.Mul(f.AlignmentFactor)
		a.Vel = a.Vel.Add(cohesion).Add(alignment).AddScalar(c.drive)
		a.Cluster = labels[i]
	}
}

// summarize computes per-cluster means from the population before any agent
// is updated, and draws one drive value per cluster in label order.
func (f *ClusterFlock) summarize(pop *Population, labels []int) []clusterStats {
	type columns struct{ x, y, vx, vy []float64 }
	cols := make([]columns, f.NClusters)
	for i, label := range labels {
		a := &pop.Agents[i]
		cols[label].x = append(cols[label].x, a.Pos.X)
		cols[label].y = append(cols[label].y, a.Pos.Y)
		cols[label].vx = append(cols[label].vx, a.Vel.X)
		cols[label].vy = append(cols[label].vy, a.Vel.Y)
	}

	drive := distuv.Normal{Mu: 0, Sigma: f.DriveSigma, Src: f.src}
	stats := make([]clusterStats, f.NClusters)
	for c := range stats {
		if f.DriveSigma > 0 {
			stats[c].drive = drive.Rand()
		}
		if len(cols[c].x) == 0 {
			continue
		}
		stats[c].pos = geometry.Vector2D{X: stat.Mean(cols[c].x, nil), Y: stat.Mean(cols[c].y, nil)}
		stats[c].vel = geometry.Vector2D{X: stat.Mean(cols[c].vx, nil), Y: stat.Mean(cols[c].vy, nil)}
	}
	return stats
}
