package storage

import (
	"context"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
)

// UploadAuthorization is a short-lived grant the client uses to upload
// directly to the object store; the service itself never sees the bytes.
type UploadAuthorization struct {
	UploadURL string `json:"uploadUrl"`
	APIKey    string `json:"apiKey"`
	PublicID  string `json:"publicId"`
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
	Folder    string `json:"folder"`
}

// StorageService mediates with the external object store.
type StorageService interface {
	// AuthorizeUpload issues signed parameters for a direct client upload
	// of the given content type and size.
	AuthorizeUpload(ctx context.Context, contentType string, size int64) (*UploadAuthorization, error)
	// SecureDownloadURL generates a signed, short-lived URL for a stored
	// object.
	SecureDownloadURL(ctx context.Context, resourceType, publicID string, expires time.Duration) (string, error)
	DeleteFile(ctx context.Context, publicID string) error
}

// StorageServiceImpl is the Cloudinary-backed implementation.
type StorageServiceImpl struct {
	cld       *cloudinary.Cloudinary
	cloudName string
	apiKey    string
	apiSecret string
}
