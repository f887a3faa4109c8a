package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func receiveSnapshot(t *testing.T, ch <-chan *Snapshot) *Snapshot {
	t.Helper()
	select {
	case snap := <-ch:
		return snap
	case <-time.After(5 * time.Second):
		t.Fatal("no snapshot published")
		return nil
	}
}

func startWorld(t *testing.T, cfg *Config, seed uint64) (*actor.PID, <-chan *Snapshot) {
	t.Helper()
	ctx := context.Background()
	system, err := actor.NewActorSystem("WorldTest", actor.WithLogger(golog.DiscardLogger))
	require.NoError(t, err)
	require.NoError(t, system.Start(ctx))
	t.Cleanup(func() { _ = system.Stop(ctx) })

	ch := make(chan *Snapshot, 16)
	pid, err := system.Spawn(ctx, "world", NewWorldActor(ch, cfg, seed))
	require.NoError(t, err)
	return pid, ch
}

func TestWorldActor_AdvancesAndPublishes(t *testing.T) {
	cfg := DefaultConfig()
	pid, ch := startWorld(t, cfg, 8)

	initial := receiveSnapshot(t, ch)
	assert.Equal(t, uint64(0), initial.Tick)
	assert.Equal(t, cfg.PopulationSize, initial.Population.Len())
	assert.Equal(t, cfg.NStartInfected, initial.InfectedCount)

	reply, err := actor.Ask(context.Background(), pid, wrapperspb.UInt64(3), 5*time.Second)
	require.NoError(t, err)
	require.IsType(t, &wrapperspb.UInt64Value{}, reply)
	assert.Equal(t, uint64(3), reply.(*wrapperspb.UInt64Value).GetValue())

	// the actor's frames match a simulation driven directly with the same seed
	sim, pop, err := Initialize(cfg, 8)
	require.NoError(t, err)
	for want := uint64(1); want <= 3; want++ {
		_, err := sim.Advance(pop)
		require.NoError(t, err)
		snap := receiveSnapshot(t, ch)
		assert.Equal(t, want, snap.Tick)
		assert.Equal(t, pop, snap.Population)
		assert.Equal(t, cfg.PopulationSize, snap.InfectedCount+snap.SusceptibleCount)
	}
}

func TestWorldActor_StateQuery(t *testing.T) {
	pid, ch := startWorld(t, DefaultConfig(), 1)
	receiveSnapshot(t, ch)

	reply, err := actor.Ask(context.Background(), pid, &emptypb.Empty{}, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), reply.(*wrapperspb.UInt64Value).GetValue())
	assert.Equal(t, uint64(0), receiveSnapshot(t, ch).Tick)
}
