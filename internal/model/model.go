package model

import (
	"time"

	"gorm.io/datatypes"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// SchemaVersion is bumped whenever the key-value schema changes
const SchemaVersion = 1

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&AppInfo{},
	&KVEntry{},
}

// AppInfo records which schema version created the database
type AppInfo struct {
	ID            uint `gorm:"primarykey"`
	SchemaVersion int
	CreatedAt     time.Time
}

func (*AppInfo) TableName() string {
	return "app_infos"
}

// KVEntry is one key of the local key-value store. Values are JSON documents.
type KVEntry struct {
	Key       string         `json:"key" gorm:"column:entry_key;primaryKey;size:191"`
	Value     datatypes.JSON `json:"value" gorm:"column:value"`
	UpdatedAt time.Time      `json:"updatedAt" gorm:"column:updated_at"`
}

func (*KVEntry) TableName() string {
	return "kv_entries"
}
