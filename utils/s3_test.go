package utils

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	mu   sync.Mutex
	keys map[string]string
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, _ := io.ReadAll(params.Body)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.keys == nil {
		f.keys = map[string]string{}
	}
	f.keys[*params.Key] = string(body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3ExporterExport(t *testing.T) {
	putter := &fakePutter{}
	exporter := &S3Exporter{
		Client: putter,
		Bucket: "fitly-exports",
		Fetch: func(ctx context.Context, url string) ([]byte, string, error) {
			if strings.Contains(url, "broken") {
				return nil, "", errors.New("404")
			}
			return []byte("img:" + url), "image/jpeg", nil
		},
	}

	urls := []string{"https://cdn.test/a.jpg", "", "https://cdn.test/broken.jpg", "https://cdn.test/b.png?sig=1"}
	got, err := exporter.Export(context.Background(), urls, "studio/u1")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.True(t, strings.HasPrefix(got["https://cdn.test/a.jpg"], "studio/u1/"))
	assert.True(t, strings.HasSuffix(got["https://cdn.test/b.png?sig=1"], "_b.png"))
	assert.Equal(t, "img:https://cdn.test/a.jpg", putter.keys[got["https://cdn.test/a.jpg"]])
}

func TestS3ExporterExportAllFailed(t *testing.T) {
	exporter := &S3Exporter{
		Client: &fakePutter{},
		Bucket: "fitly-exports",
		Fetch: func(ctx context.Context, url string) ([]byte, string, error) {
			return nil, "", errors.New("offline")
		},
	}

	_, err := exporter.Export(context.Background(), []string{"https://cdn.test/a.jpg"}, "studio")
	assert.Error(t, err)
}
