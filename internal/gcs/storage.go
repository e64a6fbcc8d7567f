package gcs

import (
	"context"
	"fmt"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// URIScheme is the prefix of the storage-URI locator form required by the
// Vision and Gemini calls.
const URIScheme = "gs://"

const publicHost = "https://storage.googleapis.com/"

// Locator identifies an uploaded object in both of its resolvable forms.
// The two forms encode the same bucket and object key and convert into each
// other by substring replacement (see PublicURLToURI / URIToPublicURL).
type Locator struct {
	PublicURL string
	URI       string
}

type StorageClient struct {
	client *storage.Client
	bucket string
}

func NewStorageClient(client *storage.Client, bucket string) *StorageClient {
	return &StorageClient{
		client: client,
		bucket: bucket,
	}
}

// ObjectName composes a unique storage key for one upload:
// submissions/{owner_id}/{uuid}.{ext}. The UUID makes concurrent uploads,
// including repeated uploads of the same filename, collision-free without
// any coordination.
func ObjectName(ownerID, filename string) string {
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("submissions/%s/%s.%s", ownerID, uuid.New().String(), ext)
}

// Upload stores an image buffer in the bucket and returns its locator.
// Failures are returned as values; the caller decides how to surface them.
func (s *StorageClient) Upload(ctx context.Context, data []byte, contentType, filename, ownerID string) (Locator, error) {
	object := ObjectName(ownerID, filename)

	w := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return Locator{}, fmt.Errorf("failed to write object %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return Locator{}, fmt.Errorf("failed to upload object %s: %w", object, err)
	}

	publicURL := publicHost + s.bucket + "/" + object
	return Locator{
		PublicURL: publicURL,
		URI:       PublicURLToURI(publicURL, s.bucket),
	}, nil
}

func PublicURLToURI(publicURL, bucket string) string {
	return strings.Replace(publicURL, publicHost+bucket+"/", URIScheme+bucket+"/", 1)
}

func URIToPublicURL(uri, bucket string) string {
	return strings.Replace(uri, URIScheme+bucket+"/", publicHost+bucket+"/", 1)
}
