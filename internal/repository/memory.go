package repository

import (
	"context"
	"reflect"
	"sync"

	"easyblog/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is a mutex-guarded in-memory PostStore. It backs tests and
// lets the service run without a database for local experiments. Natural
// order is insertion order, matching an unindexed collection scan.
type MemoryStore struct {
	mu    sync.RWMutex
	order []primitive.ObjectID
	posts map[primitive.ObjectID]models.Post
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{posts: make(map[primitive.ObjectID]models.Post)}
}

func (s *MemoryStore) FindAll(ctx context.Context) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]models.Post, 0, len(s.order))
	for _, id := range s.order {
		posts = append(posts, s.posts[id])
	}
	return posts, nil
}

func (s *MemoryStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) Insert(ctx context.Context, post *models.Post) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *post
	if stored.ID.IsZero() {
		stored.ID = primitive.NewObjectID()
	}
	s.posts[stored.ID] = stored
	s.order = append(s.order, stored.ID)
	return stored.ID, nil
}

func (s *MemoryStore) UpdateByID(ctx context.Context, id primitive.ObjectID, patch PostPatch) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return 0, ErrNotFound
	}

	updated := p
	if patch.Title != nil {
		updated.Title = *patch.Title
	}
	if patch.Author != nil {
		updated.Author = *patch.Author
	}
	if patch.Content != nil {
		updated.Content = *patch.Content
	}
	if patch.Excerpt != nil {
		updated.Excerpt = *patch.Excerpt
	}
	switch {
	case patch.Cover != nil:
		cover := *patch.Cover
		updated.Cover = &cover
	case patch.RemoveCover:
		updated.Cover = nil
	}

	// Mirror the document store: an update that changes nothing reports a
	// modified count of zero.
	if reflect.DeepEqual(p, updated) {
		return 0, nil
	}
	s.posts[id] = updated
	return 1, nil
}

func (s *MemoryStore) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return 0, ErrNotFound
	}
	delete(s.posts, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return 1, nil
}
