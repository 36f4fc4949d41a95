package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/yeka/zip"
)

// ErrBackupNoChange is returned when the posts collection has not changed
// since the last archive was written.
var ErrBackupNoChange = errors.New("backup: no change since last archive")

// BackupService writes zip archives of the full posts collection to a local
// directory. Archives are optionally password-protected. A content hash
// suppresses archives when nothing changed.
type BackupService struct {
	postService *PostService
	dir         string
	password    string

	mu       sync.Mutex
	lastHash string
}

func NewBackupService(postService *PostService, dir, password string) *BackupService {
	return &BackupService{
		postService: postService,
		dir:         dir,
		password:    password,
	}
}

// Run exports all posts and returns the path of the written archive, or
// ErrBackupNoChange when the collection hash matches the previous run.
func (s *BackupService) Run(ctx context.Context) (string, error) {
	posts, err := s.postService.ListPosts(ctx)
	if err != nil {
		return "", fmt.Errorf("load posts for backup: %w", err)
	}

	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal backup: %w", err)
	}

	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	s.mu.Lock()
	defer s.mu.Unlock()
	if hash == s.lastHash {
		return "", ErrBackupNoChange
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	name := fmt.Sprintf("posts-%s.zip", time.Now().UTC().Format("20060102-150405"))
	path := filepath.Join(s.dir, name)
	if err := s.writeArchive(path, data); err != nil {
		return "", err
	}

	s.lastHash = hash
	return path, nil
}

func (s *BackupService) writeArchive(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create backup archive: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	var w io.Writer
	if s.password != "" {
		w, err = zw.Encrypt("posts.json", s.password, zip.AES256Encryption)
	} else {
		w, err = zw.Create("posts.json")
	}
	if err != nil {
		return fmt.Errorf("create archive entry: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write archive entry: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	return nil
}
