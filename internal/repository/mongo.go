package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"easyblog/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const postsCollection = "posts"

// postDocument is the stored shape of a post. The tagged cover of the domain
// model splits back into the two optional wire fields here.
type postDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Title      string             `bson:"title"`
	Author     string             `bson:"author"`
	Content    string             `bson:"content"`
	Excerpt    string             `bson:"excerpt"`
	Date       time.Time          `bson:"date"`
	CoverImage *models.MediaRef   `bson:"coverImage,omitempty"`
	CoverVideo *models.MediaRef   `bson:"coverVideo,omitempty"`
}

func newPostDocument(p *models.Post) postDocument {
	return postDocument{
		ID:         p.ID,
		Title:      p.Title,
		Author:     p.Author,
		Content:    p.Content,
		Excerpt:    p.Excerpt,
		Date:       p.Date,
		CoverImage: p.Cover.ImageRef(),
		CoverVideo: p.Cover.VideoRef(),
	}
}

func (d postDocument) post() models.Post {
	return models.Post{
		ID:      d.ID,
		Title:   d.Title,
		Author:  d.Author,
		Content: d.Content,
		Excerpt: d.Excerpt,
		Date:    d.Date,
		Cover:   models.CoverFromRefs(d.CoverImage, d.CoverVideo),
	}
}

// Connect establishes the process-wide MongoDB client. The driver maintains
// its own connection pool, so a single client acquired at process start
// serves the whole service lifetime with no explicit teardown.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}

// MongoStore is the PostStore implementation over a MongoDB collection.
type MongoStore struct {
	posts *mongo.Collection
}

func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	return &MongoStore{posts: client.Database(dbName).Collection(postsCollection)}
}

func (s *MongoStore) FindAll(ctx context.Context) ([]models.Post, error) {
	cursor, err := s.posts.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	posts := make([]models.Post, len(docs))
	for i, d := range docs {
		posts[i] = d.post()
	}
	return posts, nil
}

func (s *MongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var doc postDocument
	err := s.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find post %s: %w", id.Hex(), err)
	}
	post := doc.post()
	return &post, nil
}

func (s *MongoStore) Insert(ctx context.Context, post *models.Post) (primitive.ObjectID, error) {
	res, err := s.posts.InsertOne(ctx, newPostDocument(post))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert post: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid, nil
}

func (s *MongoStore) UpdateByID(ctx context.Context, id primitive.ObjectID, patch PostPatch) (int64, error) {
	if patch.IsEmpty() {
		// Nothing to merge; still distinguish a missing document.
		if _, err := s.FindByID(ctx, id); err != nil {
			return 0, err
		}
		return 0, nil
	}

	set := bson.M{}
	unset := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Author != nil {
		set["author"] = *patch.Author
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Excerpt != nil {
		set["excerpt"] = *patch.Excerpt
	}
	switch {
	case patch.Cover != nil:
		if ref := patch.Cover.ImageRef(); ref != nil {
			set["coverImage"] = ref
			unset["coverVideo"] = ""
		} else if ref := patch.Cover.VideoRef(); ref != nil {
			set["coverVideo"] = ref
			unset["coverImage"] = ""
		}
	case patch.RemoveCover:
		unset["coverImage"] = ""
		unset["coverVideo"] = ""
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res, err := s.posts.UpdateByID(ctx, id, update)
	if err != nil {
		return 0, fmt.Errorf("update post %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return 0, ErrNotFound
	}
	return res.ModifiedCount, nil
}

func (s *MongoStore) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.posts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete post %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return 0, ErrNotFound
	}
	return res.DeletedCount, nil
}
