package model

import "time"

// SyncLog represents a record in the dataSync collection, written once per stored report.
type SyncLog struct {
	CollectionName  string    `bson:"collection_name"`
	SourceDocument  string    `bson:"source_document"`
	SyncTimestamp   time.Time `bson:"sync_timestamp"`
	RecordsUploaded int64     `bson:"records_uploaded"`
}
