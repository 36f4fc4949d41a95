package models

import (
	"encoding/json"
	"fmt"
	"html/template"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CoverKind string

const (
	CoverImage CoverKind = "image"
	CoverVideo CoverKind = "video"
)

// MediaRef is the wire shape of a cover reference ({"url": "..."}), kept for
// compatibility with the stored document format.
type MediaRef struct {
	URL string `bson:"url" json:"url"`
}

// Cover is a post's optional lead media reference. It is a tagged value: a
// post has either an image cover or a video cover, never both. The two wire
// fields coverImage/coverVideo collapse into this single type so the
// exclusivity is enforced by construction rather than by convention.
type Cover struct {
	Kind CoverKind
	URL  string
}

type Post struct {
	ID      primitive.ObjectID
	Title   string
	Author  string
	Content string
	Excerpt string
	Date    time.Time
	Cover   *Cover
}

// postJSON mirrors the JSON document shape consumed and produced by the API.
type postJSON struct {
	ID         string    `json:"_id,omitempty"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	Content    string    `json:"content"`
	Excerpt    string    `json:"excerpt"`
	Date       time.Time `json:"date"`
	CoverImage *MediaRef `json:"coverImage,omitempty"`
	CoverVideo *MediaRef `json:"coverVideo,omitempty"`
}

func (p Post) MarshalJSON() ([]byte, error) {
	doc := postJSON{
		Title:   p.Title,
		Author:  p.Author,
		Content: p.Content,
		Excerpt: p.Excerpt,
		Date:    p.Date,
	}
	if !p.ID.IsZero() {
		doc.ID = p.ID.Hex()
	}
	if p.Cover != nil {
		switch p.Cover.Kind {
		case CoverImage:
			doc.CoverImage = &MediaRef{URL: p.Cover.URL}
		case CoverVideo:
			doc.CoverVideo = &MediaRef{URL: p.Cover.URL}
		}
	}
	return json.Marshal(doc)
}

func (p *Post) UnmarshalJSON(data []byte) error {
	var doc postJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	*p = Post{
		Title:   doc.Title,
		Author:  doc.Author,
		Content: doc.Content,
		Excerpt: doc.Excerpt,
		Date:    doc.Date,
	}
	if doc.ID != "" {
		id, err := primitive.ObjectIDFromHex(doc.ID)
		if err != nil {
			return fmt.Errorf("parse post _id: %w", err)
		}
		p.ID = id
	}
	p.Cover = CoverFromRefs(doc.CoverImage, doc.CoverVideo)
	return nil
}

// CoverFromRefs collapses the two optional wire fields into a tagged Cover.
// The image reference wins when a document carries both, matching the
// precedence the views have always used when rendering legacy documents.
func CoverFromRefs(image, video *MediaRef) *Cover {
	if image != nil && image.URL != "" {
		return &Cover{Kind: CoverImage, URL: image.URL}
	}
	if video != nil && video.URL != "" {
		return &Cover{Kind: CoverVideo, URL: video.URL}
	}
	return nil
}

// ImageRef returns the coverImage wire field for this cover, or nil.
func (c *Cover) ImageRef() *MediaRef {
	if c == nil || c.Kind != CoverImage {
		return nil
	}
	return &MediaRef{URL: c.URL}
}

// VideoRef returns the coverVideo wire field for this cover, or nil.
func (c *Cover) VideoRef() *MediaRef {
	if c == nil || c.Kind != CoverVideo {
		return nil
	}
	return &MediaRef{URL: c.URL}
}

// RenderedPost is a view model for displaying a post with rendered HTML content.
type RenderedPost struct {
	ID        string
	Title     string
	Author    string
	Date      time.Time
	Excerpt   string
	Content   template.HTML // Use template.HTML to prevent escaping
	CoverMode string        // "image", "video", "youtube" or "" for no cover
	CoverURL  string
}
