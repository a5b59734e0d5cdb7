package storage

import (
	"context"
	"fmt"
	"time"

	"babylon/courseloader/datalake/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CourseSubjectsCollection = "course_subjects"
	syncTableName            = "dataSync"
)

// MongoRepository implements the repository.Repository interface for MongoDB.
type MongoRepository struct {
	provider CollectionProvider
	now      func() time.Time
}

// NewMongoRepository creates a new MongoRepository.
func NewMongoRepository(provider CollectionProvider) *MongoRepository {
	return &MongoRepository{
		provider: provider,
		now:      time.Now,
	}
}

// BulkUpsertCourseSubjects upserts one document per course into the course_subjects collection
// and records the sync in dataSync. Re-running the same document replaces the earlier subject lists.
func (r *MongoRepository) BulkUpsertCourseSubjects(ctx context.Context, courses []model.CourseSubjects) error {
	if len(courses) == 0 {
		return nil
	}

	// All courses in a batch come from the same report.
	sourceDocument := courses[0].SourceDocument

	models := make([]mongo.WriteModel, 0, len(courses))
	for _, doc := range courses {
		filter := bson.M{
			"course_name":     doc.CourseName,
			"source_document": doc.SourceDocument,
		}
		update := bson.M{"$set": doc}
		models = append(models, mongo.NewUpdateOneModel().SetFilter(filter).SetUpdate(update).SetUpsert(true))
	}

	collection := r.provider.Collection(CourseSubjectsCollection)
	_, err := collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return fmt.Errorf("failed to perform bulk write for collection %s: %w", CourseSubjectsCollection, err)
	}

	syncCollection := r.provider.Collection(syncTableName)
	syncLog := model.SyncLog{
		CollectionName:  CourseSubjectsCollection,
		SourceDocument:  sourceDocument,
		SyncTimestamp:   r.now(),
		RecordsUploaded: int64(len(courses)),
	}
	_, err = syncCollection.InsertOne(ctx, syncLog)
	if err != nil {
		return fmt.Errorf("failed to insert into dataSync collection: %w", err)
	}

	return nil
}
