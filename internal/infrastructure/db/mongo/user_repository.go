package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sandeep2351/linkedin-clone/internal/core/domain"
)

const (
	usersCollection = "users"

	emailIndex    = "uniq_email"
	usernameIndex = "uniq_username"
)

// UserRepository implements ports.UserRepository using MongoDB.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty"`
	Name           string               `bson:"name"`
	Username       string               `bson:"username"`
	Email          string               `bson:"email"`
	Password       string               `bson:"password,omitempty"`
	Theme          string               `bson:"theme"`
	Headline       string               `bson:"headline"`
	About          string               `bson:"about"`
	Location       string               `bson:"location"`
	ProfilePicture string               `bson:"profilePicture"`
	BannerImg      string               `bson:"bannerImg"`
	Skills         []string             `bson:"skills"`
	Experience     []mongoExperience    `bson:"experience"`
	Education      []mongoEducation     `bson:"education"`
	Connections    []primitive.ObjectID `bson:"connections"`
	CreatedAt      time.Time            `bson:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt"`
}

type mongoExperience struct {
	Title       string     `bson:"title"`
	Company     string     `bson:"company"`
	StartDate   time.Time  `bson:"startDate"`
	EndDate     *time.Time `bson:"endDate,omitempty"`
	Description string     `bson:"description"`
}

type mongoEducation struct {
	School       string `bson:"school"`
	FieldOfStudy string `bson:"fieldOfStudy"`
	StartYear    int    `bson:"startYear,omitempty"`
	EndYear      int    `bson:"endYear,omitempty"`
}

// cardProjection selects the fields shown on suggestion and post cards.
var cardProjection = bson.M{"name": 1, "username": 1, "profilePicture": 1, "headline": 1}

// withoutPassword is the projection used by every read that is not a login.
var withoutPassword = bson.M{"password": 0}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := fromDomain(user)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateKeyError(err)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return toDomain(doc), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid}, options.FindOne().SetProjection(withoutPassword))
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter, opts...).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toDomain(&mu), nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, bson.M{"email": email})
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, bson.M{"username": username})
}

func (r *UserRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n > 0, nil
}

// UpdateProfile sets only the fields present in p and returns the updated document.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, p domain.ProfileUpdate) (*domain.User, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	setIf(set, "name", p.Name)
	setIf(set, "username", p.Username)
	setIf(set, "headline", p.Headline)
	setIf(set, "about", p.About)
	setIf(set, "location", p.Location)
	setIf(set, "profilePicture", p.ProfilePicture)
	setIf(set, "bannerImg", p.BannerImg)
	if p.Skills != nil {
		set["skills"] = p.Skills
	}
	if p.Experience != nil {
		set["experience"] = experienceToMongo(p.Experience)
	}
	if p.Education != nil {
		set["education"] = educationToMongo(p.Education)
	}
	return r.updateOne(ctx, id, bson.M{"$set": set})
}

func (r *UserRepository) UpdateTheme(ctx context.Context, id string, theme domain.Theme) (*domain.User, error) {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"theme": string(theme), "updatedAt": time.Now().UTC()}})
}

func (r *UserRepository) updateOne(ctx context.Context, id string, update bson.M) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutPassword)

	var mu mongoUser
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateKeyError(err)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return toDomain(&mu), nil
}

// Suggest returns up to limit users other than id that are not in exclude.
func (r *UserRepository) Suggest(ctx context.Context, id string, exclude []string, limit int) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	nin := make([]primitive.ObjectID, 0, len(exclude))
	for _, e := range exclude {
		if oid, err := primitive.ObjectIDFromHex(e); err == nil {
			nin = append(nin, oid)
		}
	}
	idFilter := bson.M{"$nin": nin}
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		idFilter["$ne"] = oid
	}

	opts := options.Find().
		SetLimit(int64(limit)).
		SetProjection(cardProjection)

	return r.findCards(ctx, bson.M{"_id": idFilter}, opts)
}

// FindCards returns the card fields of the existing users among ids.
func (r *UserRepository) FindCards(ctx context.Context, ids []string) ([]*domain.User, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []*domain.User{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.findCards(ctx, bson.M{"_id": bson.M{"$in": oids}}, options.Find().SetProjection(cardProjection))
}

func (r *UserRepository) findCards(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.User, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find user cards: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode user cards: %w", err)
	}

	out := make([]*domain.User, 0, len(docs))
	for i := range docs {
		out = append(out, toDomain(&docs[i]))
	}
	return out, nil
}

// EnsureIndexes creates the unique indexes that back username and email
// uniqueness.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(emailIndex),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(usernameIndex),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// duplicateKeyError picks the conflict that matches the violated index.
func duplicateKeyError(err error) error {
	if strings.Contains(err.Error(), emailIndex) {
		return domain.ErrEmailExists
	}
	return domain.ErrUsernameExists
}

func setIf(set bson.M, key string, v *string) {
	if v != nil {
		set[key] = *v
	}
}

func fromDomain(u *domain.User) *mongoUser {
	conns := make([]primitive.ObjectID, 0, len(u.Connections))
	for _, c := range u.Connections {
		if oid, err := primitive.ObjectIDFromHex(c); err == nil {
			conns = append(conns, oid)
		}
	}
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return &mongoUser{
		Name:           u.Name,
		Username:       u.Username,
		Email:          u.Email,
		Password:       u.PasswordHash,
		Theme:          string(u.Theme),
		Headline:       u.Headline,
		About:          u.About,
		Location:       u.Location,
		ProfilePicture: u.ProfilePicture,
		BannerImg:      u.BannerImg,
		Skills:         skills,
		Experience:     experienceToMongo(u.Experience),
		Education:      educationToMongo(u.Education),
		Connections:    conns,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func toDomain(mu *mongoUser) *domain.User {
	theme := domain.Theme(mu.Theme)
	if !theme.Valid() {
		// documents written before the theme field existed
		theme = domain.DefaultTheme
	}
	conns := make([]string, 0, len(mu.Connections))
	for _, c := range mu.Connections {
		conns = append(conns, c.Hex())
	}
	return &domain.User{
		ID:             mu.ID.Hex(),
		Name:           mu.Name,
		Username:       mu.Username,
		Email:          mu.Email,
		PasswordHash:   mu.Password,
		Theme:          theme,
		Headline:       mu.Headline,
		About:          mu.About,
		Location:       mu.Location,
		ProfilePicture: mu.ProfilePicture,
		BannerImg:      mu.BannerImg,
		Skills:         mu.Skills,
		Experience:     experienceToDomain(mu.Experience),
		Education:      educationToDomain(mu.Education),
		Connections:    conns,
		CreatedAt:      mu.CreatedAt,
		UpdatedAt:      mu.UpdatedAt,
	}
}

func experienceToMongo(in []domain.Experience) []mongoExperience {
	out := make([]mongoExperience, len(in))
	for i, e := range in {
		out[i] = mongoExperience(e)
	}
	return out
}

func experienceToDomain(in []mongoExperience) []domain.Experience {
	out := make([]domain.Experience, len(in))
	for i, e := range in {
		out[i] = domain.Experience(e)
	}
	return out
}

func educationToMongo(in []domain.Education) []mongoEducation {
	out := make([]mongoEducation, len(in))
	for i, e := range in {
		out[i] = mongoEducation(e)
	}
	return out
}

func educationToDomain(in []mongoEducation) []domain.Education {
	out := make([]domain.Education, len(in))
	for i, e := range in {
		out[i] = domain.Education(e)
	}
	return out
}
