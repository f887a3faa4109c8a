package simulation

import (
	"time"

	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// WorldActor owns the authoritative population and the simulation that
// advances it. Nothing else reads or writes the population while a tick runs;
// consumers only ever see copies pushed on the snapshot channel.
//
// Messages:
//   - *wrapperspb.UInt64Value{n}: advance n ticks, reply with the tick reached
//   - *emptypb.Empty: publish the current snapshot, reply with the current tick
type WorldActor struct {
	cfg        *Config
	seed       uint64
	sim        *Simulation
	population *Population
	snapshotCh chan<- *Snapshot
	// --- Benchmark Stats ---
	ticksCount  int
	lastLogTime time.Time
}

var _ actor.Actor = (*WorldActor)(nil)

// NewWorldActor creates the world logic unit
func NewWorldActor(snapshotCh chan<- *Snapshot, cfg *Config, seed uint64) *WorldActor {
	return &WorldActor{
		cfg:         cfg,
		seed:        seed,
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}
}

func (w *WorldActor) PreStart(ctx *actor.Context) error {
	sim, pop, err := Initialize(w.cfg, w.seed, WithLogger(ctx.ActorSystem().Logger()))
	if err != nil {
		return err
	}
	w.sim = sim
	w.population = pop
	w.pushSnapshot()
	return nil
}

func (w *WorldActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {

	case *goaktpb.PostStart:
		ctx.Logger().Infof("World started with %d agents (%s flocking)", w.population.Len(), w.cfg.FlockStrategy)

	case *wrapperspb.UInt64Value:
		for range msg.GetValue() {
			if _, err := w.sim.Advance(w.population); err != nil {
				ctx.Err(err)
				return
			}
			w.ticksCount++
			w.pushSnapshot()
		}
		w.logBenchmarks(ctx)
		ctx.Response(wrapperspb.UInt64(w.sim.Tick()))

	case *emptypb.Empty:
		w.pushSnapshot()
		ctx.Response(wrapperspb.UInt64(w.sim.Tick()))

	default:
		ctx.Unhandled()
	}
}

func (w *WorldActor) logBenchmarks(ctx *actor.ReceiveContext) {
	if time.Since(w.lastLogTime) >= time.Second {
		ctx.Logger().Infof("📊 TICK RATE: %d/sec | Tick: %d | Infected: %d/%d",
			w.ticksCount, w.sim.Tick(), w.population.InfectedCount(), w.population.Len())
		w.ticksCount = 0
		w.lastLogTime = time.Now()
	}
}

func (w *WorldActor) pushSnapshot() {
	if w.snapshotCh == nil {
		return
	}
	select {
	case w.snapshotCh <- NewSnapshot(w.population):
	default:
		// consumer busy, skip frame
	}
}

func (w *WorldActor) PostStop(ctx *actor.Context) error {
	if w.sim == nil {
		return nil
	}
	ctx.ActorSystem().Logger().Infof("World is shutdown at tick %d", w.sim.Tick())
	return nil
}
