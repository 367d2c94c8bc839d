package models

import "time"

// Snapshot is a full serialized copy of every record collection plus
// settings. It is the backup file format, the restore payload and the body
// round-tripped through cloud sync. Settings is nil when the app was never
// configured.
type Snapshot struct {
	Flocks    []Flock       `json:"flocks"`
	Feed      []Feed        `json:"feed"`
	Medicine  []Medicine    `json:"medicine"`
	Expenses  []Expense     `json:"expenses"`
	Mortality []Mortality   `json:"mortality"`
	Sales     []Sale        `json:"sales"`
	Vaccines  []Vaccine     `json:"vaccines"`
	Gallery   []GalleryItem `json:"gallery"`
	Settings  *AppSettings  `json:"settings"`
}

// CloudBackup wraps a snapshot for storage on the sync server, one document
// per user. Upserts are last-write-wins at whole-snapshot granularity.
type CloudBackup struct {
	UserID    string    `bson:"user_id" json:"user_id"`
	Data      Snapshot  `bson:"data" json:"data"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
