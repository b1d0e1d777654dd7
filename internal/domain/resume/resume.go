// Package resume defines the stored résumé record.
package resume

import "time"

// Record is a tailored résumé held by the store.
type Record struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   []byte    `json:"content"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultFilename is used when a save request does not name the file.
const DefaultFilename = "tailored_resume.md"
