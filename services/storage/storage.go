package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const (
	uploadFolder  = "patients"
	maxUploadSize = 20 << 20 // 20 MiB
)

var allowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// NewStorageService creates a new StorageServiceImpl instance.
func NewStorageService(cld *cloudinary.Cloudinary, cloudName, apiKey, apiSecret string) StorageService {
	return &StorageServiceImpl{
		cld:       cld,
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
	}
}

// AuthorizeUpload validates the declared content type and size, then signs
// the upload parameters so the client can POST the file straight to the
// object store.
func (s *StorageServiceImpl) AuthorizeUpload(ctx context.Context, contentType string, size int64) (*UploadAuthorization, error) {
	if !allowedContentTypes[contentType] {
		return nil, fmt.Errorf("content type %q is not allowed", contentType)
	}
	if size <= 0 || size > maxUploadSize {
		return nil, fmt.Errorf("file size %d is out of range", size)
	}

	ext := "bin"
	if parts := strings.SplitN(contentType, "/", 2); len(parts) == 2 {
		ext = parts[1]
	}
	publicID := fmt.Sprintf("%s-%d.%s", uuid.New().String(), time.Now().UnixNano(), ext)
	timestamp := time.Now().Unix()

	// Cloudinary signed uploads: SHA-1 over the sorted parameter string
	// concatenated with the API secret.
	stringToSign := fmt.Sprintf("folder=%s&public_id=%s&timestamp=%d%s", uploadFolder, publicID, timestamp, s.apiSecret)
	signature := computeSHA1(stringToSign)

	return &UploadAuthorization{
		UploadURL: fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/auto/upload", s.cloudName),
		APIKey:    s.apiKey,
		PublicID:  publicID,
		Timestamp: timestamp,
		Signature: signature,
		Folder:    uploadFolder,
	}, nil
}

// SecureDownloadURL generates a signed, short-lived URL for an
// authenticated resource.
func (s *StorageServiceImpl) SecureDownloadURL(ctx context.Context, resourceType, publicID string, expires time.Duration) (string, error) {
	expiresAt := time.Now().Add(expires).Unix()
	stringToSign := fmt.Sprintf("expires_at=%d&public_id=%s%s", expiresAt, publicID, s.apiSecret)
	signature := computeSHA1(stringToSign)
	url := fmt.Sprintf("https://res.cloudinary.com/%s/%s/authenticated/s--%s--/expires_%d/%s",
		s.cloudName, resourceType, signature, expiresAt, publicID)
	return url, nil
}

// DeleteFile deletes a file from the object store given its public ID.
func (s *StorageServiceImpl) DeleteFile(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", publicID, err)
	}
	return nil
}

func computeSHA1(input string) string {
	h := sha1.New()
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil))
}
