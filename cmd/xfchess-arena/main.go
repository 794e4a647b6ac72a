package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"time"

	"github.com/trilltino/xfchess/internal/arena"
	"github.com/trilltino/xfchess/internal/engine"
	"github.com/trilltino/xfchess/internal/storage"
)

type Config struct {
	Concurrency int
	Games       int
	MoveTime    time.Duration
	MaxPlies    int
	HashMB      int
	DepthA      int
	DepthB      int
	Save        bool
}

var (
	config     Config
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	flag.IntVar(&config.Concurrency, "concurrency", arena.DefaultConcurrency, "games played at once")
	flag.IntVar(&config.Games, "games", 0, "number of games, 0 plays every opening with both colors")
	flag.DurationVar(&config.MoveTime, "movetime", arena.DefaultMoveTime, "think time per move")
	flag.IntVar(&config.MaxPlies, "maxplies", arena.DefaultMaxPlies, "adjudicate a draw after this many plies")
	flag.IntVar(&config.HashMB, "hash", 16, "transposition table size per engine in MB (env XFCHESS_HASH_MB)")
	flag.IntVar(&config.DepthA, "depth-a", 0, "depth limit of engine A, 0 for none")
	flag.IntVar(&config.DepthB, "depth-b", 0, "depth limit of engine B, 0 for none")
	flag.BoolVar(&config.Save, "save", false, "store finished games in the data directory")
	flag.Parse()

	if v := os.Getenv("XFCHESS_HASH_MB"); v != "" && !isFlagSet("hash") {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		config.HashMB = n
	}
	log.Printf("%+v", config)

	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	cfg := arena.Config{
		Concurrency: config.Concurrency,
		Games:       config.Games,
		MoveTime:    config.MoveTime,
		MaxPlies:    config.MaxPlies,
		EngineA:     engine.Options{HashMB: config.HashMB, MaxDepth: config.DepthA},
		EngineB:     engine.Options{HashMB: config.HashMB, MaxDepth: config.DepthB},
	}
	if config.Save {
		store, err := storage.NewStorage()
		if err != nil {
			return err
		}
		defer store.Close()
		cfg.Store = store
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := arena.Run(ctx, cfg)
	log.Printf("%+v", summary)
	return err
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
