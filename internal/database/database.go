package database

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Client *mongo.Client
var DB *mongo.Database

const defaultDatabase = "biography"

// Connect opens the Mongo client. dbName overrides the database named in the
// URI path; with neither, "biography" is used.
func Connect(mongoURI, dbName string) error {
	// Use longer timeout for Atlas connections
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(mongoURI)
	clientOptions.SetServerSelectionTimeout(10 * time.Second)

	log.Info().Msg("connecting to MongoDB")
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return err
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return err
	}

	if dbName == "" {
		dbName = databaseFromURI(mongoURI)
	}
	Client = client
	DB = client.Database(dbName)

	log.Info().Str("database", dbName).Msg("connected to MongoDB")
	return nil
}

// databaseFromURI extracts the path segment of mongodb://host/<db>?opts.
func databaseFromURI(mongoURI string) string {
	parts := strings.Split(mongoURI, "/")
	if len(parts) > 3 {
		if dbPart := strings.Split(parts[len(parts)-1], "?")[0]; dbPart != "" {
			return dbPart
		}
	}
	return defaultDatabase
}

// EnsureProfileIndexes creates the indexes friend search relies on.
func EnsureProfileIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("profiles").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "data.friendCode", Value: 1}}, Options: options.Index().SetName("idx_friend_code")},
		{Keys: bson.D{{Key: "data.name", Value: 1}}, Options: options.Index().SetName("idx_name")},
		{Keys: bson.D{{Key: "updated_at", Value: -1}}, Options: options.Index().SetName("idx_updated_at")},
	})
	return err
}

func Disconnect() error {
	if Client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return Client.Disconnect(ctx)
}
