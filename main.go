package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"trustlens/adscan"
	"trustlens/config"
	"trustlens/dropship"
	"trustlens/httpapi"
	"trustlens/socialscan"
	"trustlens/tokenscan"
	"trustlens/urlscan"
)

func main() {
	cfg := config.Load()

	server := httpapi.New(
		urlscan.New(cfg),
		socialscan.New(),
		dropship.New(),
		tokenscan.New(cfg),
		adscan.New(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("[main] trustlens starting on :%s", cfg.Port)
	err := httpapi.ListenAndServe(ctx, ":"+cfg.Port, server.Routes())
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("[main] bye")
}
