// Command main imports news items from RSS or Atom feeds.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newsdesk/internal/config"
	"newsdesk/internal/database"
	"newsdesk/internal/importer"
	"newsdesk/internal/middleware"
	"newsdesk/internal/repository"
)

func main() {
	timeout := flag.Duration("timeout", 30*time.Second, "Timeout per feed")
	flag.Parse()

	urls := flag.Args()
	if len(urls) == 0 {
		log.Fatal("usage: import [-timeout 30s] FEED_URL...")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	middleware.Logger = middleware.NewLogger(cfg.Env)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	im := importer.New(repository.NewNewsRepository(db))
	failed := 0
	for _, url := range urls {
		feedCtx, cancel := context.WithTimeout(ctx, *timeout)
		res, err := im.ImportURL(feedCtx, url)
		cancel()
		if err != nil {
			log.Printf("%s: %v", url, err)
			failed++
			continue
		}
		log.Printf("%s: %d fetched, %d imported, %d skipped", url, res.Fetched, res.Imported, res.Skipped)
	}

	if failed > 0 {
		stop()
		os.Exit(1)
	}
}
