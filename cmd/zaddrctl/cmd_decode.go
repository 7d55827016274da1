package main

import (
	"encoding/hex"
	"flag"
	"fmt"

	"github.com/shurlinet/zaddr/pkg/meta"
)

func runDecode(args []string) {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		osExit(2)
	}
	if fs.NArg() != 1 {
		fatal("decode: expected exactly one hex-encoded record")
	}

	buf, err := hex.DecodeString(fs.Arg(0))
	if err != nil {
		fatal("decode: invalid hex: %v", err)
	}

	r, err := meta.Decode(buf)
	if err != nil {
		fatal("decode: %v", err)
	}

	fmt.Printf("endpoint:            %s:%d\n", r.Endpoint.IP, r.Endpoint.Port)
	fmt.Printf("services:            %#x\n", uint64(r.Services))
	fmt.Printf("state:               %s\n", r.State)
	if r.UntrustedLastSeen != nil {
		fmt.Printf("untrusted_last_seen: %d\n", *r.UntrustedLastSeen)
	}
}
