package models

import "time"

type ClientDocument struct {
	ID          string    `json:"id"`
	ItemID      string    `json:"itemId"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	BlobKey     string    `json:"-"`
	UploadedBy  *string   `json:"uploadedBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
