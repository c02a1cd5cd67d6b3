// Package main provides a tool to seed the database with starter posts.
//
// Usage:
//
//	DATABASE_PATH=~/PostDesk/postdesk.db go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/postdeskapp/postdesk-server/internal/domain"
	"github.com/postdeskapp/postdesk-server/internal/store/sqlite"
)

func main() {
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		dbPath = filepath.Join(home, "PostDesk", "postdesk.db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	st, err := sqlite.Open(dbPath, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	ctx := context.Background()

	existing, err := st.ListPosts(ctx)
	if err != nil {
		log.Fatalf("Failed to list posts: %v", err)
	}
	if len(existing) > 0 {
		fmt.Printf("Database already has %d posts, nothing to do\n", len(existing))
		return
	}

	for i := 1; i <= 3; i++ {
		rec := &domain.PostRecord{
			Title:    fmt.Sprintf("Title%d", i),
			Content:  fmt.Sprintf("Content%d", i),
			TagsJSON: "[]",
		}
		if err := st.CreatePost(ctx, rec); err != nil {
			log.Fatalf("Failed to seed post %d: %v", i, err)
		}
		fmt.Printf("Created post %d: %s\n", rec.ID, rec.Title)
	}

	fmt.Println("Seeding complete")
}
