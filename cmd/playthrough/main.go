// Package main provides a CLI for running Lua playthrough scripts.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/NickTran11/masterbait/internal/platform/config"

	playthroughcmd "github.com/NickTran11/masterbait/internal/cmd/playthrough"
)

func main() {
	cfg, err := playthroughcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.ExitCodef(config.ExitUsage, "Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := playthroughcmd.Run(ctx, cfg, os.Stderr); err != nil {
		config.Exitf("Error: %v", err)
	}
}
