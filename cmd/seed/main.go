// Command main fills the database with demo users, news and comments.
package main

import (
	"flag"
	"log"

	"newsdesk/internal/config"
	"newsdesk/internal/database"
	"newsdesk/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 5, "Number of users to create")
	numNews := flag.Int("news", 20, "Number of news items to create")
	perNews := flag.Int("comments", 3, "Comments per news item")
	shouldClean := flag.Bool("clean", false, "Clean database before seeding")
	flag.Parse()

	log.Printf("Target: %d users, %d news, %d comments each, clean=%v",
		*numUsers, *numNews, *perNews, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = seed.Demo(db, seed.DemoOptions{
		NumUsers:        *numUsers,
		NumNews:         *numNews,
		CommentsPerNews: *perNews,
		ShouldClean:     *shouldClean,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Done. All demo users have the password: %s", seed.DefaultPassword)
}
