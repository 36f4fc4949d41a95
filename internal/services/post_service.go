package services

import (
	"context"
	"log"
	"strings"
	"time"

	"easyblog/internal/cache"
	"easyblog/internal/constants"
	"easyblog/internal/media"
	"easyblog/internal/models"
	"easyblog/internal/repository"
	"easyblog/internal/utils"
)

// PostInput is the explicit partial-Post schema accepted at the API
// boundary. Nil fields were absent from the request body. The id and date
// fields are accepted but never written: the store assigns the id and the
// server stamps the date.
type PostInput struct {
	ID         *string          `json:"_id"`
	Title      *string          `json:"title"`
	Author     *string          `json:"author"`
	Content    *string          `json:"content"`
	Excerpt    *string          `json:"excerpt"`
	Date       *time.Time       `json:"date"`
	CoverImage *models.MediaRef `json:"coverImage"`
	CoverVideo *models.MediaRef `json:"coverVideo"`
}

type PostService struct {
	store repository.PostStore
	cache *cache.RedisClient // nil disables caching
}

func NewPostService(store repository.PostStore, cache *cache.RedisClient) *PostService {
	return &PostService{store: store, cache: cache}
}

// ListPosts returns all posts in store order.
func (s *PostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	var cached []models.Post
	if found, err := s.cache.GetJSON(ctx, constants.CacheKeyAllPosts, &cached); err == nil && found {
		return cached, nil
	}

	posts, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetJSON(ctx, constants.CacheKeyAllPosts, posts); err != nil {
		log.Printf("cache posts list: %v", err)
	}
	return posts, nil
}

// GetPost fetches a single post by its string id. repository.ErrInvalidID is
// returned for a malformed id, repository.ErrNotFound for a well-formed but
// absent one.
func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return nil, err
	}

	key := constants.CacheKeyPostPrefix + id
	var cached models.Post
	if found, err := s.cache.GetJSON(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	post, err := s.store.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetJSON(ctx, key, post); err != nil {
		log.Printf("cache post %s: %v", id, err)
	}
	return post, nil
}

// CreatePost normalizes the input and inserts a new post: text fields are
// trimmed, cover URLs are trimmed, and the date is stamped with the current
// server time regardless of what the client sent. Any id in the input is
// discarded. Returns the newly assigned id.
func (s *PostService) CreatePost(ctx context.Context, in PostInput) (string, error) {
	post := models.Post{
		Title:   strings.TrimSpace(deref(in.Title)),
		Author:  strings.TrimSpace(deref(in.Author)),
		Content: strings.TrimSpace(deref(in.Content)),
		Excerpt: strings.TrimSpace(deref(in.Excerpt)),
		Date:    time.Now().UTC(),
		Cover:   models.CoverFromRefs(trimRef(in.CoverImage), trimRef(in.CoverVideo)),
	}

	id, err := s.store.Insert(ctx, &post)
	if err != nil {
		return "", err
	}
	s.invalidate(ctx, "")
	return id.Hex(), nil
}

// UpdatePost merges the present fields of the input into an existing post.
// Fields absent from the input are left untouched; the id and date in the
// body are stripped before the write. Returns the modified-document count.
func (s *PostService) UpdatePost(ctx context.Context, id string, in PostInput) (int64, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return 0, err
	}

	patch := repository.PostPatch{
		Title:   trimmed(in.Title),
		Author:  trimmed(in.Author),
		Content: trimmed(in.Content),
		Excerpt: trimmed(in.Excerpt),
		Cover:   models.CoverFromRefs(trimRef(in.CoverImage), trimRef(in.CoverVideo)),
	}

	modified, err := s.store.UpdateByID(ctx, oid, patch)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, id)
	return modified, nil
}

// SavePost is the editor-side write path: it persists a fully normalized
// draft. With an empty id a new post is created; otherwise every field of
// the existing post is replaced, including removing the cover when the
// draft has none. Returns the id of the saved post.
func (s *PostService) SavePost(ctx context.Context, id string, draft models.Post) (string, error) {
	if id == "" {
		return s.CreatePost(ctx, PostInput{
			Title:      &draft.Title,
			Author:     &draft.Author,
			Content:    &draft.Content,
			Excerpt:    &draft.Excerpt,
			CoverImage: draft.Cover.ImageRef(),
			CoverVideo: draft.Cover.VideoRef(),
		})
	}

	oid, err := repository.ParseID(id)
	if err != nil {
		return "", err
	}
	patch := repository.PostPatch{
		Title:       &draft.Title,
		Author:      &draft.Author,
		Content:     &draft.Content,
		Excerpt:     &draft.Excerpt,
		Cover:       draft.Cover,
		RemoveCover: draft.Cover == nil,
	}
	if _, err := s.store.UpdateByID(ctx, oid, patch); err != nil {
		return "", err
	}
	s.invalidate(ctx, id)
	return id, nil
}

// DeletePost removes a post irreversibly, returning the deleted-document
// count.
func (s *PostService) DeletePost(ctx context.Context, id string) (int64, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return 0, err
	}
	deleted, err := s.store.DeleteByID(ctx, oid)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, id)
	return deleted, nil
}

// RenderPost prepares a post for HTML display: content through the markdown
// renderer, cover classified for rendering without any network probe.
func (s *PostService) RenderPost(p *models.Post) *models.RenderedPost {
	html, err := utils.RenderMarkdown(p.Content)
	if err != nil {
		log.Printf("render post %s: %v", p.ID.Hex(), err)
	}

	rendered := &models.RenderedPost{
		ID:      p.ID.Hex(),
		Title:   p.Title,
		Author:  p.Author,
		Date:    p.Date,
		Excerpt: p.Excerpt,
		Content: html,
	}
	if p.Cover != nil {
		rendered.CoverURL = p.Cover.URL
		if media.IsYouTubeURL(p.Cover.URL) {
			rendered.CoverMode = "youtube"
		} else {
			rendered.CoverMode = string(p.Cover.Kind)
		}
	}
	return rendered
}

func (s *PostService) invalidate(ctx context.Context, id string) {
	keys := []string{constants.CacheKeyAllPosts}
	if id != "" {
		keys = append(keys, constants.CacheKeyPostPrefix+id)
	}
	if err := s.cache.Del(ctx, keys...); err != nil {
		log.Printf("invalidate post cache: %v", err)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// trimmed returns a pointer to the trimmed value, or nil when the field was
// absent.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// trimRef strips surrounding whitespace from a cover reference URL.
func trimRef(ref *models.MediaRef) *models.MediaRef {
	if ref == nil {
		return nil
	}
	url := strings.TrimSpace(ref.URL)
	if url == "" {
		return nil
	}
	return &models.MediaRef{URL: url}
}
