// Command zaddrctl is a small operator tool for inspecting and
// exercising the peer address book from the command line: decoding and
// encoding single wire records, and listing reconnection candidates or
// a gossip batch out of a persisted address book file.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if len(os.Args) < 2 {
		printUsage()
		osExit(1)
	}

	switch os.Args[1] {
	case "decode":
		runDecode(os.Args[2:])
	case "encode":
		runEncode(os.Args[2:])
	case "candidates":
		runCandidates(os.Args[2:])
	case "gossip":
		runGossip(os.Args[2:])
	case "version", "--version":
		printVersion()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		osExit(1)
	}
}

func printVersion() {
	fmt.Printf("zaddrctl %s (%s)\n", version, commit)
	fmt.Printf("Go %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

func printUsage() {
	fmt.Println("Usage: zaddrctl <command> [options]")
	fmt.Println()
	fmt.Println("  decode <hex>                         Decode one 30-byte wire record")
	fmt.Println("  encode --ip <ip> --port <p> --services <n> --last-seen <unix>")
	fmt.Println("                                        Encode one wire record")
	fmt.Println("  candidates --book <path> [--max N]   List reconnection candidates")
	fmt.Println("  gossip --book <path> [--max N]       Print a sanitized gossip batch (hex)")
	fmt.Println("  version                               Print version information")
}
