// Command seed populates the chirp database with demo data.
package main

import (
	"context"
	"flag"
	"log"

	"chirp/internal/config"
	"chirp/internal/database"
	"chirp/internal/seed"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.NumAccounts, "accounts", opts.NumAccounts, "Number of random accounts to create")
	flag.IntVar(&opts.NumPosts, "posts", opts.NumPosts, "Number of posts to create")
	flag.IntVar(&opts.NumLikes, "likes", opts.NumLikes, "Number of likes to create")
	flag.IntVar(&opts.NumFollows, "follows", opts.NumFollows, "Number of follow edges to create")
	flag.BoolVar(&opts.Clean, "clean", true, "Clean database before seeding")
	flag.Int64Var(&opts.RandSeed, "rand-seed", 0, "Seed for reproducible data (0 = random)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	ctx := context.Background()
	if err := database.ApplySchema(ctx, db, cfg); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	res, err := seed.NewSeeder(db).Seed(ctx, opts)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d accounts, %d follows, %d posts, %d likes", res.Accounts, res.Follows, res.Posts, res.Likes)
	log.Printf("Use api-key %q to browse the demo feed", seed.TestHandle)
}
