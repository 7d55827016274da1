package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"time"

	"github.com/shurlinet/zaddr/internal/addrbook"
	"github.com/shurlinet/zaddr/pkg/meta"
)

func runGossip(args []string) {
	fs := flag.NewFlagSet("gossip", flag.ContinueOnError)
	path := fs.String("book", "", "path to a persisted address book file")
	max := fs.Int("max", int(meta.GetAddrFanout), "maximum number of records in the batch")
	if err := fs.Parse(args); err != nil {
		osExit(2)
	}
	if *path == "" {
		fatal("gossip: --book is required")
	}

	b := addrbook.New()
	if err := b.Load(*path); err != nil {
		fatal("gossip: %v", err)
	}

	batch, err := b.GossipBatch(time.Now(), *max)
	if err != nil {
		fatal("gossip: %v", err)
	}

	fmt.Println(hex.EncodeToString(meta.EncodeGossipList(batch)))
}
