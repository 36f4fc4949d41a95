//go:build ignore

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"easyblog/internal/config"
	"easyblog/internal/models"
	"easyblog/internal/repository"
	"easyblog/internal/utils"
)

const seedContent = `
This is a generated post used for load testing the blog.

## Lists

- item one
- item two
- item three

## A quote

> "Load testing is the key step that keeps an application stable under pressure."

## Code

` + "```go" + `
package main

import "fmt"

func main() {
	fmt.Println("Hello, World!")
}
` + "```" + `

## Filler

Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed non risus.
Suspendisse lectus tortor, dignissim sit amet, adipiscing nec, ultricies sed,
dolor. Cras elementum ultrices diam. Maecenas ligula massa, varius a, semper
congue, euismod non, mi. Proin porttitor, orci nec nonummy molestie, enim est
eleifend mi, non fermentum diam nisl sit amet erat.
`

func main() {
	total := flag.Int("n", 1000, "number of posts to generate")
	wipe := flag.Bool("wipe", false, "drop existing posts before seeding")
	flag.Parse()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Println("Connecting to MongoDB...")
	client, err := repository.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	if *wipe {
		log.Println("Dropping existing posts...")
		if err := client.Database(cfg.MongoDB).Collection("posts").Drop(ctx); err != nil {
			log.Fatalf("Failed to drop posts collection: %v", err)
		}
	}

	store := repository.NewMongoStore(client, cfg.MongoDB)

	log.Printf("Generating %d posts...", *total)
	for i := 1; i <= *total; i++ {
		content := fmt.Sprintf("This is the body of post %d.\n%s", i, seedContent)
		post := models.Post{
			Title:   fmt.Sprintf("Load Test Post %d", i),
			Author:  "Seed Script",
			Content: content,
			Excerpt: utils.DeriveExcerpt(content),
			Date:    time.Now().UTC(),
		}

		if _, err := store.Insert(context.Background(), &post); err != nil {
			log.Printf("Failed to insert post %d: %v", i, err)
			continue
		}

		if i%100 == 0 {
			log.Printf("Inserted %d/%d posts...", i, *total)
		}
	}

	log.Printf("Done. Seeded %d posts.", *total)
}
