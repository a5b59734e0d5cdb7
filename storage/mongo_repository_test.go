package storage_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"babylon/courseloader/datalake/model"
	"babylon/courseloader/storage"
	"babylon/courseloader/subject"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mock for DataStore interface.
type mockDataStore struct {
	bulkWriteFunc func(ctx context.Context, models []mongo.WriteModel, opts ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error)
	insertOneFunc func(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

func (m *mockDataStore) BulkWrite(ctx context.Context, models []mongo.WriteModel, opts ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error) {
	if m.bulkWriteFunc != nil {
		return m.bulkWriteFunc(ctx, models, opts...)
	}
	return &mongo.BulkWriteResult{}, nil
}

func (m *mockDataStore) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	if m.insertOneFunc != nil {
		return m.insertOneFunc(ctx, document, opts...)
	}
	return &mongo.InsertOneResult{}, nil
}

// Mock for CollectionProvider interface.
type mockCollectionProvider struct {
	collectionFunc func(name string) storage.DataStore
}

func (m *mockCollectionProvider) Collection(name string) storage.DataStore {
	if m.collectionFunc != nil {
		return m.collectionFunc(name)
	}
	return &mockDataStore{}
}

func testCourses() []model.CourseSubjects {
	return []model.CourseSubjects{
		{
			CourseName:     "Bachelor of Business",
			SourceDocument: "course_and_subject_list.md",
			SubjectList:    []subject.Subject{{Code: "BU1001", Name: "Introduction to Business"}},
			SubjectCount:   1,
		},
		{
			CourseName:     "Master of Business Administration",
			SourceDocument: "course_and_subject_list.md",
			SubjectList:    []subject.Subject{{Code: "LB5202", Name: "Managing People"}},
			SubjectCount:   1,
		},
	}
}

func TestNewMongoRepository(t *testing.T) {
	repo := storage.NewMongoRepository(&mockCollectionProvider{})
	if repo == nil {
		t.Error("NewMongoRepository returned nil")
	}
}

func TestBulkUpsertCourseSubjects_Success(t *testing.T) {
	ctx := context.Background()
	courses := testCourses()

	mockDS := &mockDataStore{
		bulkWriteFunc: func(ctx context.Context, models []mongo.WriteModel, opts ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error) {
			if len(models) != 2 {
				t.Errorf("Expected 2 write models, got %d", len(models))
			}
			return &mongo.BulkWriteResult{UpsertedCount: 2}, nil
		},
		insertOneFunc: func(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
			syncLog, ok := document.(model.SyncLog)
			if !ok {
				t.Fatalf("Expected SyncLog document, got %T", document)
			}
			if syncLog.CollectionName != storage.CourseSubjectsCollection {
				t.Errorf("Expected CollectionName %s, got %s", storage.CourseSubjectsCollection, syncLog.CollectionName)
			}
			if syncLog.SourceDocument != "course_and_subject_list.md" {
				t.Errorf("Expected SourceDocument course_and_subject_list.md, got %s", syncLog.SourceDocument)
			}
			if syncLog.RecordsUploaded != int64(len(courses)) {
				t.Errorf("Expected RecordsUploaded %d, got %d", len(courses), syncLog.RecordsUploaded)
			}
			return &mongo.InsertOneResult{}, nil
		},
	}

	provider := &mockCollectionProvider{
		collectionFunc: func(name string) storage.DataStore {
			if name != storage.CourseSubjectsCollection && name != "dataSync" {
				t.Errorf("Expected collection name %s or dataSync, got %s", storage.CourseSubjectsCollection, name)
			}
			return mockDS
		},
	}

	repo := storage.NewMongoRepository(provider)
	if err := repo.BulkUpsertCourseSubjects(ctx, courses); err != nil {
		t.Errorf("BulkUpsertCourseSubjects failed: %v", err)
	}
}

func TestBulkUpsertCourseSubjects_Empty(t *testing.T) {
	provider := &mockCollectionProvider{
		collectionFunc: func(name string) storage.DataStore {
			t.Errorf("Collection %s should not be requested for an empty batch", name)
			return &mockDataStore{}
		},
	}

	repo := storage.NewMongoRepository(provider)
	if err := repo.BulkUpsertCourseSubjects(context.Background(), nil); err != nil {
		t.Errorf("BulkUpsertCourseSubjects failed for empty batch: %v", err)
	}
}

func TestBulkUpsertCourseSubjects_BulkWriteError(t *testing.T) {
	expectedErr := errors.New("bulk write error")
	insertCalled := false

	mockDS := &mockDataStore{
		bulkWriteFunc: func(ctx context.Context, models []mongo.WriteModel, opts ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error) {
			return nil, expectedErr
		},
		insertOneFunc: func(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
			insertCalled = true
			return &mongo.InsertOneResult{}, nil
		},
	}

	provider := &mockCollectionProvider{
		collectionFunc: func(name string) storage.DataStore {
			return mockDS
		},
	}

	repo := storage.NewMongoRepository(provider)
	err := repo.BulkUpsertCourseSubjects(context.Background(), testCourses())
	if err == nil || !strings.Contains(err.Error(), expectedErr.Error()) {
		t.Errorf("Expected bulk write error, got: %v", err)
	}
	if insertCalled {
		t.Error("Sync log should not be written when the bulk write fails")
	}
}

func TestBulkUpsertCourseSubjects_SyncLogError(t *testing.T) {
	expectedErr := errors.New("sync log error")

	mockDS := &mockDataStore{
		insertOneFunc: func(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
			return nil, expectedErr
		},
	}

	provider := &mockCollectionProvider{
		collectionFunc: func(name string) storage.DataStore {
			return mockDS
		},
	}

	repo := storage.NewMongoRepository(provider)
	err := repo.BulkUpsertCourseSubjects(context.Background(), testCourses())
	if err == nil || !strings.Contains(err.Error(), expectedErr.Error()) {
		t.Errorf("Expected sync log error, got: %v", err)
	}
}
