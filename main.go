// xfchess - play chess against the engine from a terminal
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"

	"github.com/trilltino/xfchess/internal/console"
	"github.com/trilltino/xfchess/internal/engine"
	"github.com/trilltino/xfchess/internal/storage"
)

var (
	hashMB    = flag.Int("hash", 0, "transposition table size in MB (env XFCHESS_HASH_MB)")
	ephemeral = flag.Bool("ephemeral", false, "keep preferences and games in memory only")
	manual    = flag.Bool("manual", false, "do not answer moves automatically, use go")
)

func main() {
	flag.Parse()
	log.SetPrefix("xfchess: ")

	hash := *hashMB
	if hash == 0 {
		if v := os.Getenv("XFCHESS_HASH_MB"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				log.Fatalf("bad XFCHESS_HASH_MB %q: %v", v, err)
			}
			hash = n
		}
	}

	var (
		store *storage.Storage
		err   error
	)
	if *ephemeral {
		store, err = storage.Open("")
	} else {
		store, err = storage.NewStorage()
	}
	if err != nil {
		log.Fatal("could not open storage: ", err)
	}
	defer store.Close()

	if first, err := store.IsFirstLaunch(); err == nil && first {
		log.Print("welcome, type help for the list of commands")
		if err := store.MarkFirstLaunchComplete(); err != nil {
			log.Print(err)
		}
	}

	c, err := console.New(os.Stdout, console.Config{
		Engine:    engine.Options{HashMB: hash},
		Store:     store,
		AutoReply: !*manual,
	})
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := c.Run(ctx, os.Stdin); err != nil {
		log.Fatal(err)
	}
}
