// Package mongodb stores cloud backups for the syncserver binary: one
// snapshot document per user, replaced wholesale on every upload.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hamrofarm/kukhura/internal/domain/models"
)

// ErrBackupNotFound reports that a user has never uploaded a backup.
var ErrBackupNotFound = errors.New("backup not found")

// BackupRepository defines the interface for backup storage.
type BackupRepository interface {
	Upsert(ctx context.Context, backup models.CloudBackup) error
	Get(ctx context.Context, userID string) (*models.CloudBackup, error)
}

// MongoBackupRepository implements BackupRepository on MongoDB.
type MongoBackupRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoBackupRepository connects to MongoDB and ensures the user_id
// uniqueness index exists.
func NewMongoBackupRepository(ctx context.Context, uri string, dbName string) (*MongoBackupRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	repo := &MongoBackupRepository{
		client:   client,
		dbName:   dbName,
		collName: "user_backups",
	}

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := repo.collection().Indexes().CreateOne(ctx, indexModel); err != nil {
		return nil, fmt.Errorf("failed to ensure user_id index: %w", err)
	}

	return repo, nil
}

func (r *MongoBackupRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// Upsert replaces the user's backup document, creating it when absent.
// Last write wins; there is no merge between devices.
func (r *MongoBackupRepository) Upsert(ctx context.Context, backup models.CloudBackup) error {
	filter := bson.M{"user_id": backup.UserID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection().ReplaceOne(ctx, filter, backup, opts); err != nil {
		return fmt.Errorf("failed to upsert backup for %s: %w", backup.UserID, err)
	}
	return nil
}

// Get returns the user's latest backup document.
func (r *MongoBackupRepository) Get(ctx context.Context, userID string) (*models.CloudBackup, error) {
	var backup models.CloudBackup
	err := r.collection().FindOne(ctx, bson.M{"user_id": userID}).Decode(&backup)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("%w: %s", ErrBackupNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch backup for %s: %w", userID, err)
	}
	return &backup, nil
}

// Close closes the MongoDB connection.
func (r *MongoBackupRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
