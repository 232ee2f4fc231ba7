package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/adanyl0v/notebook-todo/internal/cli"
	"github.com/adanyl0v/notebook-todo/internal/config"
)

func main() {
	cfg, err := config.ReadClientEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to read env: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = cli.NewRootCommand(cfg).Execute(ctx, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
