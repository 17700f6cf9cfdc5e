package model

import (
	"time"

	"github.com/google/uuid"
)

// Folder groups products for presentation. Deleting a folder detaches its
// products rather than deleting them.
type Folder struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// FolderRequest is the payload for creating or renaming a folder. The ID is
// optional on create; one is generated server-side when absent.
type FolderRequest struct {
	ID   *uuid.UUID `json:"id,omitempty"`
	Name string     `json:"name"`
}
