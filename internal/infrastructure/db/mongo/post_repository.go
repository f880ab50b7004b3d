package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sandeep2351/linkedin-clone/internal/core/domain"
)

const (
	postsCollection = "posts"

	authorCreatedIndex = "author_created"
)

// PostRepository implements ports.PostRepository using MongoDB. Comments are
// embedded in the post document.
type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(postsCollection)}
}

type mongoPost struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Author    primitive.ObjectID   `bson:"author"`
	Content   string               `bson:"content"`
	Image     string               `bson:"image,omitempty"`
	Likes     []primitive.ObjectID `bson:"likes"`
	Comments  []mongoComment       `bson:"comments"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

type mongoComment struct {
	ID        primitive.ObjectID `bson:"_id"`
	User      primitive.ObjectID `bson:"user"`
	Content   string             `bson:"content"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	author, err := primitive.ObjectIDFromHex(post.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("post author %q: %w", post.AuthorID, err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := &mongoPost{
		Author:    author,
		Content:   post.Content,
		Image:     post.Image,
		Likes:     []primitive.ObjectID{},
		Comments:  []mongoComment{},
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return postToDomain(doc), nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoPost
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return postToDomain(&doc), nil
}

// FindByAuthors returns the newest posts written by any of authorIDs.
func (r *PostRepository) FindByAuthors(ctx context.Context, authorIDs []string, limit int) ([]*domain.Post, error) {
	authors := make([]primitive.ObjectID, 0, len(authorIDs))
	for _, id := range authorIDs {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			authors = append(authors, oid)
		}
	}
	if len(authors) == 0 {
		return []*domain.Post{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.coll.Find(ctx, bson.M{"author": bson.M{"$in": authors}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find feed: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoPost
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	out := make([]*domain.Post, 0, len(docs))
	for i := range docs {
		out = append(out, postToDomain(&docs[i]))
	}
	return out, nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) AddComment(ctx context.Context, postID string, c domain.Comment) (*domain.Post, error) {
	user, err := primitive.ObjectIDFromHex(c.UserID)
	if err != nil {
		return nil, fmt.Errorf("comment user %q: %w", c.UserID, err)
	}
	doc := mongoComment{
		ID:        primitive.NewObjectID(),
		User:      user,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
	return r.update(ctx, postID, nil, bson.M{
		"$push": bson.M{"comments": doc},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *PostRepository) RemoveComment(ctx context.Context, postID, commentID string) (*domain.Post, error) {
	cid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, domain.ErrCommentNotFound
	}

	post, err := r.update(ctx, postID, bson.M{"comments._id": cid}, bson.M{
		"$pull": bson.M{"comments": bson.M{"_id": cid}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if errors.Is(err, domain.ErrPostNotFound) {
		// Tell a missing post apart from a missing comment.
		if _, findErr := r.FindByID(ctx, postID); findErr == nil {
			return nil, domain.ErrCommentNotFound
		}
	}
	return post, err
}

func (r *PostRepository) SetLike(ctx context.Context, postID, userID string, liked bool) (*domain.Post, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("like user %q: %w", userID, err)
	}

	op := "$pull"
	if liked {
		op = "$addToSet"
	}
	return r.update(ctx, postID, nil, bson.M{
		op:     bson.M{"likes": uid},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	})
}

// update applies change to the post matching postID and extra, returning the
// post after the update. No match is ErrPostNotFound.
func (r *PostRepository) update(ctx context.Context, postID string, extra bson.M, change bson.M) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid}
	for k, v := range extra {
		filter[k] = v
	}

	var doc mongoPost
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.coll.FindOneAndUpdate(ctx, filter, change, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return postToDomain(&doc), nil
}

// EnsureIndexes creates the index that serves the feed query.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "author", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName(authorCreatedIndex),
	})
	return err
}

func postToDomain(doc *mongoPost) *domain.Post {
	likes := make([]string, 0, len(doc.Likes))
	for _, l := range doc.Likes {
		likes = append(likes, l.Hex())
	}
	comments := make([]domain.Comment, 0, len(doc.Comments))
	for _, c := range doc.Comments {
		comments = append(comments, domain.Comment{
			ID:        c.ID.Hex(),
			UserID:    c.User.Hex(),
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		})
	}
	return &domain.Post{
		ID:        doc.ID.Hex(),
		AuthorID:  doc.Author.Hex(),
		Content:   doc.Content,
		Image:     doc.Image,
		Likes:     likes,
		Comments:  comments,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
