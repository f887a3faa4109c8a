package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/lao-tseu-is-alive/go-swarm-contagion/pkg/simulation"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const askTimeout = 5 * time.Second

func main() {
	var (
		configFile = flag.String("config", "", "JSON configuration file (defaults are used when empty)")
		schemaFile = flag.String("schema", "configs/config.schema.json", "JSON schema for the configuration file")
		steps      = flag.Uint64("steps", 10, "number of ticks to run")
		clusters   = flag.Int("clusters", 0, "override n_clusters when > 0")
		strategy   = flag.String("strategy", "", "override flock_strategy (radius|cluster)")
		seed       = flag.Uint64("seed", 0, "random seed")
		debug      = flag.Bool("debug", false, "log every rule of every tick")
	)
	flag.Parse()

	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		loaded, err := simulation.LoadConfig(*configFile, *schemaFile)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if *clusters > 0 {
		cfg.NClusters = *clusters
	}
	if *strategy != "" {
		cfg.FlockStrategy = simulation.FlockStrategy(*strategy)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	level := golog.InfoLevel
	if *debug {
		level = golog.DebugLevel
	}

	ctx := context.Background()
	system, err := actor.NewActorSystem("SwarmContagion",
		actor.WithLogger(golog.New(level, os.Stderr)),
		actor.WithActorInitMaxRetries(1))
	if err != nil {
		log.Fatal(err)
	}
	if err := system.Start(ctx); err != nil {
		log.Fatal(err)
	}
	defer func() { _ = system.Stop(ctx) }()

	// one slot per tick we ask for, plus the initial frame
	snapshotCh := make(chan *simulation.Snapshot, 2)
	worldPID, err := system.Spawn(ctx, "world", simulation.NewWorldActor(snapshotCh, cfg, *seed))
	if err != nil {
		log.Fatalf("Failed to spawn world: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(<-snapshotCh); err != nil {
		log.Fatal(err)
	}
	for range *steps {
		if _, err := actor.Ask(ctx, worldPID, wrapperspb.UInt64(1), askTimeout); err != nil {
			log.Fatalf("tick failed: %v", err)
		}
		if err := enc.Encode(<-snapshotCh); err != nil {
			log.Fatal(err)
		}
	}
}
