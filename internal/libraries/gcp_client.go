package libraries

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"

	aiplatform "cloud.google.com/go/aiplatform/apiv1"
	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type Clients struct {
	GCS          *storage.Client
	Vertex       *aiplatform.PredictionClient
	ProjectID    string
	VertexRegion string
	Bucket       string
}

var clients *Clients

func GetClients() *Clients {
	return clients
}

func NewClients(ctx context.Context) (*Clients, error) {
	// base64-encoded service account JSON
	encoded := os.Getenv("GCP_SERVICE_ACCOUNT_CREDENTIALS")
	if encoded == "" {
		return nil, fmt.Errorf("GCP_SERVICE_ACCOUNT_CREDENTIALS not set")
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode service account json: %w", err)
	}

	credOpt := option.WithCredentialsJSON(decoded)

	gcsClient, err := storage.NewClient(ctx, credOpt)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}

	vertexClient, err := aiplatform.NewPredictionClient(ctx, credOpt)
	if err != nil {
		return nil, fmt.Errorf("vertex.NewPredictionClient: %w", err)
	}

	clients = &Clients{
		GCS:          gcsClient,
		Vertex:       vertexClient,
		ProjectID:    os.Getenv("GOOGLE_CLOUD_PROJECT_ID"),
		VertexRegion: os.Getenv("GOOGLE_CLOUD_VERTEXAI_LOCATION"),
		Bucket:       os.Getenv("GCS_THUMBNAIL_BUCKET"),
	}

	return clients, nil
}

// UploadBoardThumbnail stores a board snapshot PNG under thumbnails/<boardID>.png
// and returns the public object URL.
func (c *Clients) UploadBoardThumbnail(ctx context.Context, boardID string, png io.Reader) (string, error) {
	if c.Bucket == "" {
		return "", fmt.Errorf("GCS_THUMBNAIL_BUCKET not set")
	}

	objectName := fmt.Sprintf("thumbnails/%s.png", boardID)
	w := c.GCS.Bucket(c.Bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = "image/png"
	w.CacheControl = "no-cache, max-age=0"

	if _, err := io.Copy(w, png); err != nil {
		w.Close()
		return "", fmt.Errorf("write thumbnail: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close thumbnail writer: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.Bucket, objectName), nil
}

func (c *Clients) Close() {
	c.GCS.Close()
	c.Vertex.Close()
}
