package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fhuszti/cameraroll-ms-go/internal/usecase/gallery"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type objectGetter interface {
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

type minioGetter struct {
	client *minio.Client
}

func (g *minioGetter) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	obj, err := g.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// Source resolves export source URIs into byte streams. Plain paths and
// file:// URIs come from the local filesystem, s3://bucket/key from the
// object store when one is configured.
type Source struct {
	objects objectGetter
}

// compile-time check: *Source must satisfy gallery.SourceOpener
var _ gallery.SourceOpener = (*Source)(nil)

// NewSource returns a source opener with no object store attached; s3://
// URIs will be rejected.
func NewSource() *Source {
	return &Source{}
}

// NewSourceWithMinio wires an object store so s3:// URIs resolve too.
func NewSourceWithMinio(endpoint, accessKey, secretKey string, useSSL bool) (*Source, error) {
	log.Println("initialising minio client...")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &Source{objects: &minioGetter{client: client}}, nil
}

func (s *Source) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(uri, "s3://"):
		if s.objects == nil {
			return nil, fmt.Errorf("no object store configured for %q", uri)
		}
		bucket, key, ok := strings.Cut(strings.TrimPrefix(uri, "s3://"), "/")
		if !ok || bucket == "" || key == "" {
			return nil, fmt.Errorf("malformed object uri %q, expected s3://bucket/key", uri)
		}
		return s.objects.GetObject(ctx, bucket, key)
	case strings.HasPrefix(uri, "file://"):
		f, err := os.Open(strings.TrimPrefix(uri, "file://"))
		if err != nil {
			return nil, mapFsErr(err)
		}
		return f, nil
	default:
		f, err := os.Open(uri)
		if err != nil {
			return nil, mapFsErr(err)
		}
		return f, nil
	}
}
