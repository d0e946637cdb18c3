package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"catalog-reconciler/core/storage"

	"github.com/minio/minio-go/v7"
)

// Opener resolves source locations to byte streams.
//
// Supported locations:
//   - s3://bucket/key        object storage through Storage
//   - http://... https://... HTTP GET through HTTP
//   - file:///path or a path local file
type Opener struct {
	// Storage serves s3:// locations. Optional.
	Storage storage.Client

	// HTTP serves http(s) locations. Nil means http.DefaultClient.
	HTTP *http.Client
}

// Open returns a stream for location. The caller closes it.
func (o *Opener) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(location, "s3://"):
		return o.openObject(ctx, location)
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return o.openHTTP(ctx, location)
	case strings.HasPrefix(location, "file://"):
		u, err := url.Parse(location)
		if err != nil {
			return nil, fmt.Errorf("invalid location %q: %w", location, err)
		}
		return openFile(u.Path)
	default:
		return openFile(location)
	}
}

func (o *Opener) openObject(ctx context.Context, location string) (io.ReadCloser, error) {
	if o.Storage == nil {
		return nil, fmt.Errorf("cannot open %q: storage client not configured", location)
	}

	bucket, key, err := ParseObjectLocation(location)
	if err != nil {
		return nil, err
	}

	reader, err := o.Storage.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", location, err)
	}
	return reader, nil
}

func (o *Opener) openHTTP(ctx context.Context, location string) (io.ReadCloser, error) {
	client := o.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid location %q: %w", location, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", location, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", location, resp.Status)
	}
	return resp.Body, nil
}

func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	return f, nil
}

// ParseObjectLocation splits s3://bucket/key into bucket and key.
func ParseObjectLocation(location string) (bucket, key string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("invalid object location %q: %w", location, err)
	}
	if u.Scheme != "s3" {
		return "", "", fmt.Errorf("invalid object location %q: scheme must be s3", location)
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid object location %q: want s3://bucket/key", location)
	}
	return bucket, key, nil
}
