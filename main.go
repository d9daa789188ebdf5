package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"novel-binder/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := cmd.RootCmd.ExecuteContext(ctx); err != nil {
		stop()
		log.Fatalf("Error executing command: %v", err)
	}
}
