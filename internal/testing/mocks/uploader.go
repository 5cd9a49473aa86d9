// Package mocks provides shared test doubles for testlogs packages.
package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Object is an upload captured by Uploader.
type Object struct {
	Bucket      string
	Key         string
	ContentType string
	Body        []byte
}

// Uploader implements the S3 PutObject call for testing.
// Use NewUploader() to create instances with a fluent builder API.
type Uploader struct {
	// PutFunc is called before an upload is recorded. If it returns an
	// error the upload is not recorded.
	PutFunc func(ctx context.Context, key string) error

	mu      sync.Mutex
	objects []Object
}

// NewUploader creates a new mock uploader that accepts every object.
func NewUploader() *Uploader {
	return &Uploader{}
}

// WithPutFunc sets the function called for every upload.
func (m *Uploader) WithPutFunc(fn func(ctx context.Context, key string) error) *Uploader {
	m.PutFunc = fn
	return m
}

// PutObject records the object and returns an empty output.
func (m *Uploader) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	key := aws.ToString(params.Key)
	if m.PutFunc != nil {
		if err := m.PutFunc(ctx, key); err != nil {
			return nil, err
		}
	}

	var body []byte
	if params.Body != nil {
		data, err := io.ReadAll(params.Body)
		if err != nil {
			return nil, err
		}
		body = data
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects = append(m.objects, Object{
		Bucket:      aws.ToString(params.Bucket),
		Key:         key,
		ContentType: aws.ToString(params.ContentType),
		Body:        body,
	})
	return &s3.PutObjectOutput{}, nil
}

// Objects returns a copy of the recorded uploads in call order.
func (m *Uploader) Objects() []Object {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]Object, len(m.objects))
	copy(result, m.objects)
	return result
}
