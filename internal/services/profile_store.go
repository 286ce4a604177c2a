package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/AnshRaj112/biography-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProfilesCollection holds one ProfileRecord per user.
const ProfilesCollection = "profiles"

// ProfileMatch is a search hit: the owner's id and their document.
type ProfileMatch struct {
	ID      string
	Profile models.ProfileDocument
}

// ProfileStore is the remote document store. Documents are always replaced
// whole; there is no version check, so the last writer wins.
type ProfileStore interface {
	// Fetch returns ErrProfileNotFound when the user has no document.
	Fetch(ctx context.Context, userID string) (*models.ProfileDocument, error)
	Upsert(ctx context.Context, userID string, doc *models.ProfileDocument) error
	// FindByFriendCode returns ErrProfileNotFound when no document carries code.
	FindByFriendCode(ctx context.Context, code string) (*ProfileMatch, error)
	SearchByName(ctx context.Context, query string, limit int) ([]ProfileMatch, error)
}

type MongoProfileStore struct {
	coll *mongo.Collection
}

func NewMongoProfileStore(db *mongo.Database) *MongoProfileStore {
	return &MongoProfileStore{coll: db.Collection(ProfilesCollection)}
}

func (s *MongoProfileStore) Fetch(ctx context.Context, userID string) (*models.ProfileDocument, error) {
	var rec models.ProfileRecord
	err := s.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch profile %s: %w", userID, err)
	}
	return &rec.Data, nil
}

func (s *MongoProfileStore) Upsert(ctx context.Context, userID string, doc *models.ProfileDocument) error {
	rec := models.ProfileRecord{
		ID:        userID,
		Data:      *doc,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": userID}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert profile %s: %w", userID, err)
	}
	return nil
}

func (s *MongoProfileStore) FindByFriendCode(ctx context.Context, code string) (*ProfileMatch, error) {
	var rec models.ProfileRecord
	err := s.coll.FindOne(ctx, bson.M{"data.friendCode": strings.ToUpper(code)}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find by friend code: %w", err)
	}
	return &ProfileMatch{ID: rec.ID, Profile: rec.Data}, nil
}

// SearchByName does a case-insensitive substring match on the display name.
func (s *MongoProfileStore) SearchByName(ctx context.Context, query string, limit int) ([]ProfileMatch, error) {
	filter := bson.M{"data.name": bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}}
	cursor, err := s.coll.Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("search by name: %w", err)
	}
	defer cursor.Close(ctx)

	var recs []models.ProfileRecord
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("search by name: %w", err)
	}
	matches := make([]ProfileMatch, 0, len(recs))
	for _, rec := range recs {
		matches = append(matches, ProfileMatch{ID: rec.ID, Profile: rec.Data})
	}
	return matches, nil
}
