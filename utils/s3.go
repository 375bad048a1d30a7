package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// ObjectPutter is the part of the S3 client the exporter needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Exporter copies remote images (studio renders, saved images) into an S3 bucket.
type S3Exporter struct {
	Client      ObjectPutter
	Bucket      string
	Concurrency int
	Fetch       func(ctx context.Context, pathOrURL string) ([]byte, string, error)
}

// NewS3Exporter loads the default AWS config for region and targets bucket.
func NewS3Exporter(ctx context.Context, region, bucket string) (*S3Exporter, error) {
	if bucket == "" {
		return nil, fmt.Errorf("export bucket is not set")
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	Logger.Debug("S3 client initialized", zap.String("region", region), zap.String("bucket", bucket))
	return &S3Exporter{Client: s3.NewFromConfig(cfg), Bucket: bucket}, nil
}

// UploadObject puts a single object and returns its key.
func (e *S3Exporter) UploadObject(ctx context.Context, body io.Reader, objectKey, contentType string) (string, error) {
	_, err := e.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.Bucket),
		Key:         aws.String(objectKey),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return objectKey, nil
}

// Export downloads each URL and uploads it under prefix.
// It returns a map of original URL to object key; failed URLs are logged and left out.
func (e *S3Exporter) Export(ctx context.Context, urls []string, prefix string) (map[string]string, error) {
	fetch := e.Fetch
	if fetch == nil {
		fetch = FetchImage
	}
	limit := e.Concurrency
	if limit <= 0 {
		limit = 5
	}

	urlToKey := make(map[string]string)
	var mu sync.Mutex
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, limit)

	attempted := 0
	for i, url := range urls {
		if url == "" {
			continue
		}
		attempted++
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			objectKey := fmt.Sprintf("%s/%s", prefix, ImageFileName(url, i))

			data, contentType, err := fetch(ctx, url)
			if err != nil {
				Logger.Warn("export download failed", zap.String("url", url), zap.Error(err))
				return
			}
			if _, err := e.UploadObject(ctx, bytes.NewReader(data), objectKey, contentType); err != nil {
				Logger.Warn("export upload failed", zap.String("url", url), zap.Error(err))
				return
			}

			mu.Lock()
			urlToKey[url] = objectKey
			mu.Unlock()
		}(i, url)
	}

	wg.Wait()
	if attempted > 0 && len(urlToKey) == 0 {
		return urlToKey, fmt.Errorf("export failed for all %d images", attempted)
	}
	return urlToKey, nil
}
