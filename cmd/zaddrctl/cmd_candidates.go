package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/shurlinet/zaddr/internal/addrbook"
)

func runCandidates(args []string) {
	fs := flag.NewFlagSet("candidates", flag.ContinueOnError)
	path := fs.String("book", "", "path to a persisted address book file")
	max := fs.Int("max", 20, "maximum number of candidates to print")
	if err := fs.Parse(args); err != nil {
		osExit(2)
	}
	if *path == "" {
		fatal("candidates: --book is required")
	}

	b := addrbook.New()
	if err := b.Load(*path); err != nil {
		fatal("candidates: %v", err)
	}

	now := time.Now()
	candidates := b.Candidates(now)
	if len(candidates) > *max {
		candidates = candidates[:*max]
	}

	for _, r := range candidates {
		fmt.Printf("%-24s  %-10s  services=%#x\n", fmt.Sprintf("%s:%d", r.Endpoint.IP, r.Endpoint.Port), r.State, uint64(r.Services))
	}
}
