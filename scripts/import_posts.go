//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"easyblog/internal/config"
	"easyblog/internal/models"
	"easyblog/internal/repository"

	"github.com/yeka/zip"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// readBackup loads the posts array from either a raw posts.json export or a
// backup zip archive produced by the backup scheduler.
func readBackup(path, password string) ([]models.Post, error) {
	if strings.HasSuffix(path, ".zip") {
		return readArchive(path, password)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decodePosts(data)
}

func readArchive(path, password string) ([]models.Post, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "posts.json" {
			continue
		}
		if f.IsEncrypted() {
			f.SetPassword(password)
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		return decodePosts(data)
	}
	log.Fatalf("posts.json not found in archive %s", path)
	return nil, nil
}

func decodePosts(data []byte) ([]models.Post, error) {
	var posts []models.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func main() {
	file := flag.String("file", "backup.json", "posts.json export or backup .zip archive")
	password := flag.String("password", "", "archive password, if encrypted")
	flag.Parse()

	posts, err := readBackup(*file, *password)
	if err != nil {
		log.Fatalf("Failed to read backup %s: %v", *file, err)
	}
	log.Printf("Loaded %d posts from %s.", len(posts), *file)

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := repository.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	store := repository.NewMongoStore(client, cfg.MongoDB)

	imported := 0
	for i := range posts {
		post := posts[i]
		post.ID = primitive.NilObjectID // let the store assign fresh ids
		if post.Date.IsZero() {
			post.Date = time.Now().UTC()
		}
		if _, err := store.Insert(context.Background(), &post); err != nil {
			log.Printf("Failed to import %q: %v", post.Title, err)
			continue
		}
		imported++
	}

	log.Printf("Imported %d/%d posts.", imported, len(posts))
}
