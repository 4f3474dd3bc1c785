package models

import "time"

// DocMeta is a lightweight representation of a document returned by
// tree listings.
type DocMeta struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
