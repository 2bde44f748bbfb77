package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hironha/nina/internal/config"
	"github.com/hironha/nina/internal/discord"
	"github.com/hironha/nina/internal/storage"
	v "github.com/hironha/nina/internal/version"
)

func main() {
	log.Printf("[INFO] Starting %s bot...", v.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		log.Fatal(err)
	}

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	bot, err := discord.NewBot(cfg, store)
	if err != nil {
		log.Fatal(err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := bot.Run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...", s)
		cancel()
		if err := <-errCh; err != nil {
			log.Println("[ERR] Discord bot error:", err)
		}
	case err := <-errCh:
		if err != nil {
			log.Println("[ERR] Discord bot error:", err)
		}
		cancel()
	}

	log.Println("[INFO] Discord bot exited cleanly")
}
