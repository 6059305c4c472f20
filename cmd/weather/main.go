package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/i474232898/weather-lookup/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.New().ExecuteContext(ctx); err != nil {
		log.Printf("weather: %s", err)
		stop()
		os.Exit(1)
	}
}
