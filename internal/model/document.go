package model

import "time"

// Document is a file uploaded for a client. The bytes live in object
// storage under StoragePath; this row is the metadata.
type Document struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	FileName    string    `json:"file_name"`
	StoragePath string    `json:"storage_path"`
	FileType    string    `json:"file_type"`
	FileSize    int64     `json:"file_size"`
	CreatedAt   time.Time `json:"created_at"`
}
