package storage

import (
	"context"
	"fmt"

	"babylon/courseloader/appcontext"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// datalakeDB holds the course_subjects documents and the dataSync log.
const datalakeDB = "datalake"

// DataStore is the subset of a collection the course repository writes through: a bulk
// upsert of course documents and a single sync log insert. Tests replace it with a fake.
type DataStore interface {
	BulkWrite(
		ctx context.Context,
		models []mongo.WriteModel,
		opts ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error)
	InsertOne(
		ctx context.Context,
		document interface{},
		opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// CollectionProvider hands out the datalake collections by name.
type CollectionProvider interface {
	Collection(name string) DataStore
}

// MongoCollection is a live datalake collection. Driver errors are wrapped with the
// collection name so a failed persist says whether course_subjects or dataSync broke.
type MongoCollection struct {
	*mongo.Collection
}

// BulkWrite applies the course upserts.
func (c *MongoCollection) BulkWrite(
	ctx context.Context,
	models []mongo.WriteModel,
	opts ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error) {
	result, err := c.Collection.BulkWrite(ctx, models, opts...)
	if err != nil {
		return nil, fmt.Errorf("bulk write to %s failed: %w", c.Name(), err)
	}

	return result, nil
}

// InsertOne records one document, used for the sync log entry.
func (c *MongoCollection) InsertOne(
	ctx context.Context,
	document interface{},
	opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	result, err := c.Collection.InsertOne(ctx, document, opts...)
	if err != nil {
		return nil, fmt.Errorf("insert into %s failed: %w", c.Name(), err)
	}

	return result, nil
}

// MongoProvider serves collections from the datalake database of a connected client.
type MongoProvider struct {
	client MongoClient
}

func NewMongoProvider(client MongoClient) *MongoProvider {
	return &MongoProvider{client: client}
}

// Collection returns the named datalake collection.
func (p *MongoProvider) Collection(name string) DataStore {
	return &MongoCollection{p.client.Database(datalakeDB).Collection(name)}
}

// ConnectToMongoDB connects to uri and pings the server before persist writes anything.
// The client is disconnected again if the ping fails.
func ConnectToMongoDB(ctx context.Context, uri string) (*mongo.Client, error) {
	logger := appcontext.LoggerFromContext(ctx)
	logger.DebugContext(ctx, "Attempting to connect to MongoDB", "uri", uri)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		if deferErr := client.Disconnect(ctx); deferErr != nil {
			logger.ErrorContext(ctx, "Error disconnecting from MongoDB", "error", deferErr)
		}
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.InfoContext(ctx, "Successfully established connection to MongoDB")
	return client, nil
}
