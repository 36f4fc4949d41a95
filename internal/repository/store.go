package repository

import (
	"context"
	"errors"

	"easyblog/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when no post exists under the given id.
	ErrNotFound = errors.New("repository: post not found")
	// ErrInvalidID is returned when an id cannot be parsed as a store
	// identifier.
	ErrInvalidID = errors.New("repository: invalid post id")
)

// PostPatch describes a partial update. Nil fields are left untouched;
// present fields overwrite. Setting a cover always clears the other variant
// so a document can never hold both.
type PostPatch struct {
	Title   *string
	Author  *string
	Content *string
	Excerpt *string

	Cover       *models.Cover // replace the cover, whichever variant it was
	RemoveCover bool          // clear both cover variants
}

// IsEmpty reports whether the patch would touch no field.
func (p PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Author == nil && p.Content == nil &&
		p.Excerpt == nil && p.Cover == nil && !p.RemoveCover
}

// PostStore is the document collection holding posts. List order is the
// store's natural order.
type PostStore interface {
	FindAll(ctx context.Context) ([]models.Post, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	Insert(ctx context.Context, post *models.Post) (primitive.ObjectID, error)
	// UpdateByID merges the patch into an existing document and returns the
	// number of documents actually modified (0 or 1). ErrNotFound when no
	// document matched.
	UpdateByID(ctx context.Context, id primitive.ObjectID, patch PostPatch) (int64, error)
	// DeleteByID returns the number of documents deleted (always 1 on
	// success); ErrNotFound when nothing was deleted.
	DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// ParseID converts a client-supplied id string into a store identifier.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}
