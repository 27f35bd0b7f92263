package model

import "time"

const CollectionOperationLog = "operation_logs"

type OperationLog struct {
	ID        string         `bson:"_id" json:"id"`
	Table     string         `bson:"table" json:"table"`
	Operation string         `bson:"operation" json:"operation"`
	RecordID  string         `bson:"record_id" json:"record_id"`
	UserID    string         `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Details   map[string]any `bson:"details,omitempty" json:"details,omitempty"`
	CreatedAt time.Time      `bson:"created_at" json:"created_at"`
}
