package model

import (
	"encoding/base64"
	"time"

	"github.com/google/uuid"
)

// Product represents one catalogue entry. Image bytes live in the store and
// are never serialised raw; callers receive a data URL instead.
type Product struct {
	ID               int64      `json:"id" db:"id"`
	Title            string     `json:"title" db:"title"`
	Description      string     `json:"description" db:"description"`
	Category         string     `json:"category" db:"category"`
	Type             string     `json:"type" db:"type"`
	Subcategory      string     `json:"subcategory" db:"subcategory"`
	Hours            int        `json:"hours" db:"hours"`
	ImageData        []byte     `json:"-" db:"image_data"`
	ImageName        string     `json:"imageName" db:"image_name"`
	ImageContentType string     `json:"imageContentType" db:"image_content_type"`
	HoursVisible     bool       `json:"hoursVisible" db:"hours_visible"`
	FolderID         *uuid.UUID `json:"folderId" db:"folder_id"`
	FolderName       *string    `json:"folderName" db:"folder_name"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	ImageURL         *string    `json:"imageUrl"`
}

// ProductUpload carries the fields of a multipart product upload.
type ProductUpload struct {
	Title            string
	Description      string
	Category         string
	Type             string
	Subcategory      string
	Hours            int
	FolderID         *uuid.UUID
	ImageData        []byte
	ImageName        string
	ImageContentType string
}

// ProductUpdate is the payload for PUT /api/product/{id}. HoursVisible is a
// pointer because the contract distinguishes "absent" from "false".
type ProductUpdate struct {
	Title        string  `json:"Title"`
	Description  string  `json:"Description"`
	Hours        *int    `json:"Hours"`
	HoursVisible *bool   `json:"hoursVisible"`
	FolderID     *string `json:"FolderId"`
}

// BulkProduct is one entry of the products array in a bulk upload request.
type BulkProduct struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Hours       int    `json:"hours"`
}

// ImageDataURL renders stored image bytes as an embeddable data URL.
// Returns nil when there is no image, which serialises as JSON null.
func ImageDataURL(data []byte, contentType string) *string {
	if len(data) == 0 {
		return nil
	}
	url := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
	return &url
}
